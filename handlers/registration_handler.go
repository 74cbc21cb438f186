package handlers

import (
	"log/slog"
	"net/http"

	"github.com/muqabla/sportshub/services"
)

type RegistrationHandler struct {
	registrationService services.RegistrationService
	logger              *slog.Logger
}

func NewRegistrationHandler(registrationService services.RegistrationService, logger *slog.Logger) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService, logger: logger}
}

func (h *RegistrationHandler) RegisterTeam(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var input services.RegisterTeamInput
	if err := readJSON(w, r, &input); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	registration, err := h.registrationService.RegisterTeam(r.Context(), eventID, input)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusCreated, "Team registered successfully", registration)
}

func (h *RegistrationHandler) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	registrations, err := h.registrationService.ListByEvent(r.Context(), eventID)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusOK, "Registrations retrieved successfully", registrations)
}

func (h *RegistrationHandler) UpdateRegistration(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var input services.UpdateRegistrationInput
	if err := readJSON(w, r, &input); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	registration, err := h.registrationService.UpdateRegistration(r.Context(), id, input)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusOK, "Registration updated successfully", registration)
}

func (h *RegistrationHandler) DeleteRegistration(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.registrationService.DeleteRegistration(r.Context(), id); err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusOK, "Registration deleted successfully", nil)
}
