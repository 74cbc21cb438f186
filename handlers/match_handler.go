package handlers

import (
	"log/slog"
	"net/http"

	"github.com/muqabla/sportshub/models"
	"github.com/muqabla/sportshub/services"
)

type MatchHandler struct {
	matchService services.MatchService
	logger       *slog.Logger
}

func NewMatchHandler(matchService services.MatchService, logger *slog.Logger) *MatchHandler {
	return &MatchHandler{matchService: matchService, logger: logger}
}

func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	input := services.ListMatchesInput{}
	eventID, err := queryInt(r, "eventId")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	input.EventID = eventID
	teamID, err := queryInt(r, "teamId")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	input.TeamID = teamID
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.MatchStatus(raw)
		input.Status = &status
	}

	matches, err := h.matchService.ListMatches(r.Context(), input)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusOK, "Matches retrieved successfully", matches)
}

func (h *MatchHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var input services.CreateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	match, err := h.matchService.CreateMatch(r.Context(), input)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusCreated, "Match created successfully", match)
}

func (h *MatchHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	match, err := h.matchService.GetMatchByID(r.Context(), id)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusOK, "Match retrieved successfully", match)
}

func (h *MatchHandler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var input services.UpdateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	match, err := h.matchService.UpdateMatch(r.Context(), id, input)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusOK, "Match updated successfully", match)
}

func (h *MatchHandler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.matchService.DeleteMatch(r.Context(), id); err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusOK, "Match deleted successfully", nil)
}

func (h *MatchHandler) AddScorecardEntry(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var input services.CreateScorecardInput
	if err := readJSON(w, r, &input); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.matchService.AddScorecardEntry(r.Context(), id, input)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusCreated, "Scorecard entry added successfully", entry)
}

func (h *MatchHandler) ListScorecard(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.matchService.ListScorecard(r.Context(), id)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusOK, "Scorecard retrieved successfully", entries)
}

func (h *MatchHandler) AddStatistic(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var input services.CreateStatisticInput
	if err := readJSON(w, r, &input); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	stat, err := h.matchService.AddStatistic(r.Context(), id, input)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusCreated, "Match statistic added successfully", stat)
}

func (h *MatchHandler) ListStatistics(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := h.matchService.ListStatistics(r.Context(), id)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusOK, "Match statistics retrieved successfully", stats)
}
