package handlers

import (
	"log/slog"
	"net/http"

	"github.com/muqabla/sportshub/repositories"
	"github.com/muqabla/sportshub/services"
)

type TeamHandler struct {
	teamService services.TeamService
	logger      *slog.Logger
}

func NewTeamHandler(teamService services.TeamService, logger *slog.Logger) *TeamHandler {
	return &TeamHandler{teamService: teamService, logger: logger}
}

func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	filter := repositories.ListTeamsFilter{}
	sportID, err := queryInt(r, "sportId")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	filter.SportID = sportID
	if raw := r.URL.Query().Get("search"); raw != "" {
		filter.Search = &raw
	}

	teams, err := h.teamService.ListTeams(r.Context(), filter)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusOK, "Teams retrieved successfully", teams)
}

func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTeamInput
	if err := readJSON(w, r, &input); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	team, err := h.teamService.CreateTeam(r.Context(), input)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusCreated, "Team created successfully", team)
}

func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	team, err := h.teamService.GetTeamByID(r.Context(), id)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusOK, "Team retrieved successfully", team)
}

func (h *TeamHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var input services.UpdateTeamInput
	if err := readJSON(w, r, &input); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	team, err := h.teamService.UpdateTeam(r.Context(), id, input)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusOK, "Team updated successfully", team)
}

func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.teamService.DeleteTeam(r.Context(), id); err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusOK, "Team deleted successfully", nil)
}

func (h *TeamHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var input services.CreateTeamMemberInput
	if err := readJSON(w, r, &input); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	member, err := h.teamService.AddMember(r.Context(), id, input)
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusCreated, "Team member added successfully", member)
}

func (h *TeamHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
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

	team, err := h.teamService.UploadLogo(r.Context(), id, file, header.Header.Get("Content-Type"))
	if err != nil {
		mapServiceError(w, h.logger, err)
		return
	}
	successResponse(w, http.StatusOK, "Team logo uploaded successfully", team)
}
