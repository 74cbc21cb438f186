package handlers

import (
	"log/slog"
	"net/http"

	"github.com/muqabla/sportshub/services"
)

type SportHandler struct {
	sportService services.SportService
	logger       *slog.Logger
}

func NewSportHandler(sportService services.SportService, logger *slog.Logger) *SportHandler {
	return &SportHandler{sportService: sportService, logger: logger}
}

func (h *SportHandler) ListSports(w http.ResponseWriter, r *http.Request) {
	sports, err := h.sportService.ListSports(r.Context())
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusOK, "Sports retrieved successfully", sports)
}

func (h *SportHandler) CreateSport(w http.ResponseWriter, r *http.Request) {
	var input services.CreateSportInput
	if err := readJSON(w, r, &input); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	sport, err := h.sportService.CreateSport(r.Context(), input)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusCreated, "Sport created successfully", sport)
}

func (h *SportHandler) GetSport(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	sport, err := h.sportService.GetSportByID(r.Context(), id)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusOK, "Sport retrieved successfully", sport)
}

func (h *SportHandler) UpdateSport(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var input services.UpdateSportInput
	if err := readJSON(w, r, &input); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	sport, err := h.sportService.UpdateSport(r.Context(), id, input)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusOK, "Sport updated successfully", sport)
}

func (h *SportHandler) DeleteSport(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.sportService.DeleteSport(r.Context(), id); err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusOK, "Sport deleted successfully", nil)
}
