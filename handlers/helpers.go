package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/muqabla/sportshub/services"
)

const (
	maxRequestBodySize = 1 << 20
	maxUploadSize      = 10 << 20
)

// envelope is the wire shape of every response.
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

func successResponse(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

func errorResponse(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

func validationErrorResponse(w http.ResponseWriter, message string, fieldErrors map[string]string) {
	writeJSON(w, http.StatusUnprocessableEntity, envelope{
		Success: false,
		Message: message,
		Errors:  fieldErrors,
	})
}

// readJSON decodes the request body. Unknown fields are tolerated since PATCH
// bodies may carry fields outside the endpoint's allow-list.
func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// formFile pulls the uploaded "file" part out of a multipart form.
func formFile(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, nil, fmt.Errorf("failed to parse multipart form: %w", err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, nil, errors.New("file field is required")
	}
	return file, header, nil
}

func parseIDParam(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}
	return id, nil
}

func queryInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s parameter", name)
	}
	return &value, nil
}

func queryIntDefault(r *http.Request, name string, fallback int) int {
	value, err := queryInt(r, name)
	if err != nil || value == nil {
		return fallback
	}
	return *value
}

// mapServiceError translates service sentinels into HTTP responses so every
// handler shares one status table.
func mapServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrSportNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrMatchNotFound),
		errors.Is(err, services.ErrRegistrationNotFound),
		errors.Is(err, services.ErrNotFound):
		errorResponse(w, http.StatusNotFound, err.Error())

	case errors.Is(err, services.ErrSportNameConflict),
		errors.Is(err, services.ErrUserEmailConflict),
		errors.Is(err, services.ErrUserUsernameConflict),
		errors.Is(err, services.ErrRegistrationConflict),
		errors.Is(err, services.ErrTeamMemberConflict),
		errors.Is(err, services.ErrStatisticConflict),
		errors.Is(err, services.ErrEventFull),
		errors.Is(err, services.ErrSportInUse),
		errors.Is(err, services.ErrTeamInUse),
		errors.Is(err, services.ErrEventInUse):
		errorResponse(w, http.StatusConflict, err.Error())

	case errors.Is(err, services.ErrValidationFailed),
		errors.Is(err, services.ErrInvalidDateFormat),
		errors.Is(err, services.ErrEventMissingFields),
		errors.Is(err, services.ErrEventInvalidCapacity),
		errors.Is(err, services.ErrMatchMissingFields),
		errors.Is(err, services.ErrMatchSameTeam),
		errors.Is(err, services.ErrTeamMissingFields),
		errors.Is(err, services.ErrUserMissingFields),
		errors.Is(err, services.ErrRegistrationNotOpen),
		errors.Is(err, services.ErrInvalidSportReference),
		errors.Is(err, services.ErrInvalidTeamReference),
		errors.Is(err, services.ErrInvalidUserReference),
		errors.Is(err, services.ErrInvalidEventReference):
		errorResponse(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, services.ErrMediaStorageUnavailable):
		errorResponse(w, http.StatusInternalServerError, err.Error())

	default:
		logger.Error("unhandled service error", slog.Any("error", err))
		errorResponse(w, http.StatusInternalServerError, "internal server error")
	}
}
