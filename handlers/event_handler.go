package handlers

import (
	"log/slog"
	"net/http"

	"github.com/muqabla/sportshub/models"
	"github.com/muqabla/sportshub/services"
)

type EventHandler struct {
	eventService    services.EventService
	standingService services.StandingService
	logger          *slog.Logger
}

func NewEventHandler(eventService services.EventService, standingService services.StandingService, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		eventService:    eventService,
		standingService: standingService,
		logger:          logger,
	}
}

func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	input := services.ListEventsInput{
		Page:  queryIntDefault(r, "page", 1),
		Limit: queryIntDefault(r, "limit", 10),
	}
	sportID, err := queryInt(r, "sportId")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	input.SportID = sportID
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.EventStatus(raw)
		input.Status = &status
	}

	page, err := h.eventService.ListEvents(r.Context(), input)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusOK, "Events retrieved successfully", page)
}

func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var input services.CreateEventInput
	if err := readJSON(w, r, &input); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := h.eventService.CreateEvent(r.Context(), input)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusCreated, "Event created successfully", event)
}

func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := h.eventService.GetEventByID(r.Context(), id)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusOK, "Event retrieved successfully", event)
}

func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var input services.UpdateEventInput
	if err := readJSON(w, r, &input); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := h.eventService.UpdateEvent(r.Context(), id, input)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusOK, "Event updated successfully", event)
}

func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.eventService.DeleteEvent(r.Context(), id); err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusOK, "Event deleted successfully", nil)
}

func (h *EventHandler) UploadBanner(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	file, header, err := formFile(r)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	defer file.Close()

	event, err := h.eventService.UploadBanner(r.Context(), id, file, header.Header.Get("Content-Type"))
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusOK, "Event banner uploaded successfully", event)
}

func (h *EventHandler) ListStandings(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	standings, err := h.standingService.ListByEvent(r.Context(), id)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusOK, "Standings retrieved successfully", standings)
}

func (h *EventHandler) RecalculateStandings(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	standings, err := h.standingService.RecalculateForEvent(r.Context(), id)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusOK, "Standings recalculated successfully", standings)
}
