package handlers

import (
	"log/slog"
	"net/http"

	"github.com/muqabla/sportshub/live"
)

type WebSocketHandler struct {
	hub    *live.Hub
	logger *slog.Logger
}

func NewWebSocketHandler(hub *live.Hub, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, logger: logger}
}

// ServeEventFeed subscribes the connection to the event's live room.
func (h *WebSocketHandler) ServeEventFeed(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseIDParam(r, "eventID")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.hub.ServeEvent(w, r, eventID); err != nil {
		h.logger.Error("websocket upgrade failed",
			slog.Int("event_id", eventID),
			slog.Any("error", err))
	}
}
