package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/muqabla/sportshub/services"
)

func decodeEnvelope(t *testing.T, body io.Reader) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestSuccessResponseEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	successResponse(rec, http.StatusCreated, "Sport created successfully", map[string]string{"name": "Football"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q, want application/json", ct)
	}

	env := decodeEnvelope(t, rec.Body)
	if !env.Success {
		t.Error("success = false, want true")
	}
	if env.Message != "Sport created successfully" {
		t.Errorf("message = %q", env.Message)
	}
	data, ok := env.Data.(map[string]interface{})
	if !ok || data["name"] != "Football" {
		t.Errorf("data = %v, want name Football", env.Data)
	}
}

func TestErrorResponseEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	errorResponse(rec, http.StatusNotFound, "event not found")

	env := decodeEnvelope(t, rec.Body)
	if env.Success {
		t.Error("success = true, want false")
	}
	if env.Message != "event not found" {
		t.Errorf("message = %q", env.Message)
	}
	if env.Data != nil {
		t.Errorf("data = %v, want omitted", env.Data)
	}
}

func TestValidationErrorResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	validationErrorResponse(rec, "validation failed", map[string]string{"name": "required"})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	env := decodeEnvelope(t, rec.Body)
	fields, ok := env.Errors.(map[string]interface{})
	if !ok || fields["name"] != "required" {
		t.Errorf("errors = %v, want name required", env.Errors)
	}
}

func TestMapServiceErrorStatuses(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cases := []struct {
		err  error
		want int
	}{
		{services.ErrEventNotFound, http.StatusNotFound},
		{services.ErrTeamNotFound, http.StatusNotFound},
		{services.ErrSportNameConflict, http.StatusConflict},
		{services.ErrRegistrationConflict, http.StatusConflict},
		{services.ErrEventFull, http.StatusConflict},
		{services.ErrSportInUse, http.StatusConflict},
		{services.ErrEventMissingFields, http.StatusBadRequest},
		{services.ErrMatchSameTeam, http.StatusBadRequest},
		{services.ErrInvalidDateFormat, http.StatusBadRequest},
		{services.ErrRegistrationNotOpen, http.StatusBadRequest},
		{services.ErrMediaStorageUnavailable, http.StatusInternalServerError},
		{errors.New("database exploded"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		mapServiceError(rec, logger, c.err)
		if rec.Code != c.want {
			t.Errorf("%v: status = %d, want %d", c.err, rec.Code, c.want)
		}
		if env := decodeEnvelope(t, rec.Body); env.Success {
			t.Errorf("%v: success = true, want false", c.err)
		}
	}
}

func TestMapServiceErrorWrappedSentinel(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	wrapped := errors.Join(errors.New("context"), services.ErrEventNotFound)

	rec := httptest.NewRecorder()
	mapServiceError(rec, logger, wrapped)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for wrapped sentinel", rec.Code)
	}
}

func TestMapServiceErrorHidesInternalDetail(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	rec := httptest.NewRecorder()
	mapServiceError(rec, logger, errors.New("pq: connection refused to 10.0.0.3"))

	env := decodeEnvelope(t, rec.Body)
	if env.Message != "internal server error" {
		t.Errorf("message = %q, internal detail must not leak", env.Message)
	}
}
