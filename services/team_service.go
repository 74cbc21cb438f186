package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/muqabla/sportshub/models"
	"github.com/muqabla/sportshub/repositories"
	"github.com/muqabla/sportshub/storage"
)

var (
	ErrTeamCreationFailed   = errors.New("failed to create team")
	ErrTeamUpdateFailed     = errors.New("failed to update team")
	ErrTeamDeleteFailed     = errors.New("failed to delete team")
	ErrTeamLogoUploadFailed = errors.New("failed to upload team logo")
)

const teamMatchHistoryLimit = 5

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	ListTeams(ctx context.Context, filter repositories.ListTeamsFilter) ([]models.Team, error)
	UpdateTeam(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error)
	DeleteTeam(ctx context.Context, id int) error
	AddMember(ctx context.Context, teamID int, input CreateTeamMemberInput) (*models.TeamMember, error)
	UploadLogo(ctx context.Context, teamID int, file io.Reader, contentType string) (*models.Team, error)
}

type CreateTeamMemberInput struct {
	UserID       int     `json:"userId"`
	Role         *string `json:"role"`
	JerseyNumber *int    `json:"jerseyNumber"`
	Position     *string `json:"position"`
}

type CreateTeamInput struct {
	Name        string                  `json:"name"`
	SportID     int                     `json:"sportId"`
	Description *string                 `json:"description"`
	Members     []CreateTeamMemberInput `json:"members"`
}

type UpdateTeamInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

type teamService struct {
	db               *sql.DB
	teamRepo         repositories.TeamRepository
	registrationRepo repositories.RegistrationRepository
	matchRepo        repositories.MatchRepository
	sportRepo        repositories.SportRepository
	uploader         storage.FileUploader
}

func NewTeamService(
	db *sql.DB,
	teamRepo repositories.TeamRepository,
	registrationRepo repositories.RegistrationRepository,
	matchRepo repositories.MatchRepository,
	sportRepo repositories.SportRepository,
	uploader storage.FileUploader,
) TeamService {
	return &teamService{
		db:               db,
		teamRepo:         teamRepo,
		registrationRepo: registrationRepo,
		matchRepo:        matchRepo,
		sportRepo:        sportRepo,
		uploader:         uploader,
	}
}

// CreateTeam inserts the team and its optional initial members in a single
// transaction so a bad member reference rolls back the team row as well.
func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.SportID <= 0 {
		return nil, ErrTeamMissingFields
	}

	team := &models.Team{
		Name:        name,
		SportID:     input.SportID,
		Description: input.Description,
		IsActive:    true,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTeamCreationFailed, err)
	}
	defer tx.Rollback()

	if err := s.teamRepo.Create(ctx, tx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamInvalidSport) {
			return nil, ErrInvalidSportReference
		}
		return nil, fmt.Errorf("%w: %w", ErrTeamCreationFailed, err)
	}

	for _, m := range input.Members {
		role := models.MemberRolePlayer
		if m.Role != nil {
			role = models.TeamMemberRole(*m.Role)
		}
		member := &models.TeamMember{
			TeamID:       team.ID,
			UserID:       m.UserID,
			Role:         role,
			JerseyNumber: m.JerseyNumber,
			Position:     m.Position,
		}
		if err := s.teamRepo.AddMember(ctx, tx, member); err != nil {
			switch {
			case errors.Is(err, repositories.ErrTeamMemberConflict):
				return nil, ErrTeamMemberConflict
			case errors.Is(err, repositories.ErrTeamMemberInvalidUser):
				return nil, ErrInvalidUserReference
			default:
				return nil, fmt.Errorf("%w: %w", ErrTeamCreationFailed, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTeamCreationFailed, err)
	}

	return s.GetTeamByID(ctx, team.ID)
}

func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team by id %d: %w", id, err)
	}

	if sport, err := s.sportRepo.GetByID(ctx, team.SportID); err == nil {
		team.Sport = sport
	}

	members, err := s.teamRepo.ListMembers(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load members for team %d: %w", id, err)
	}
	team.Members = members

	registrations, err := s.registrationRepo.ListByTeam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load registrations for team %d: %w", id, err)
	}
	team.Registrations = registrations

	homeMatches, err := s.matchRepo.ListRecentByTeam(ctx, id, true, teamMatchHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load home matches for team %d: %w", id, err)
	}
	team.HomeMatches = homeMatches

	awayMatches, err := s.matchRepo.ListRecentByTeam(ctx, id, false, teamMatchHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load away matches for team %d: %w", id, err)
	}
	team.AwayMatches = awayMatches

	s.resolveTeamURLs(team)
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context, filter repositories.ListTeamsFilter) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	for i := range teams {
		members, err := s.teamRepo.ListMembers(ctx, teams[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load members for team %d: %w", teams[i].ID, err)
		}
		teams[i].Members = members
		s.resolveTeamURLs(&teams[i])
	}
	return teams, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("%w (id: %d): %w", ErrTeamUpdateFailed, id, err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: team name cannot be empty", ErrValidationFailed)
		}
		team.Name = name
	}
	if input.Description != nil {
		team.Description = input.Description
	}
	if input.IsActive != nil {
		team.IsActive = *input.IsActive
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("%w (id: %d): %w", ErrTeamUpdateFailed, id, err)
	}

	return s.GetTeamByID(ctx, id)
}

func (s *teamService) DeleteTeam(ctx context.Context, id int) error {
	err := s.teamRepo.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			return ErrTeamNotFound
		case errors.Is(err, repositories.ErrTeamInUse):
			return ErrTeamInUse
		default:
			return fmt.Errorf("%w (id: %d): %w", ErrTeamDeleteFailed, id, err)
		}
	}
	return nil
}

func (s *teamService) AddMember(ctx context.Context, teamID int, input CreateTeamMemberInput) (*models.TeamMember, error) {
	if input.UserID <= 0 {
		return nil, fmt.Errorf("%w: userId is required", ErrValidationFailed)
	}

	role := models.MemberRolePlayer
	if input.Role != nil {
		role = models.TeamMemberRole(*input.Role)
	}

	member := &models.TeamMember{
		TeamID:       teamID,
		UserID:       input.UserID,
		Role:         role,
		JerseyNumber: input.JerseyNumber,
		Position:     input.Position,
	}

	if err := s.teamRepo.AddMember(ctx, nil, member); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			return nil, ErrTeamNotFound
		case errors.Is(err, repositories.ErrTeamMemberConflict):
			return nil, ErrTeamMemberConflict
		case errors.Is(err, repositories.ErrTeamMemberInvalidUser):
			return nil, ErrInvalidUserReference
		default:
			return nil, fmt.Errorf("failed to add member to team %d: %w", teamID, err)
		}
	}
	return member, nil
}

func (s *teamService) UploadLogo(ctx context.Context, teamID int, file io.Reader, contentType string) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrMediaStorageUnavailable
	}
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrTeamLogoUploadFailed, err)
	}

	key := fmt.Sprintf("logos/team_%d_%d", teamID, time.Now().Unix())
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTeamLogoUploadFailed, err)
	}

	oldKey := team.LogoKey
	if err := s.teamRepo.UpdateLogoKey(ctx, teamID, &result.Key); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTeamLogoUploadFailed, err)
	}
	if oldKey != nil && *oldKey != result.Key {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	return s.GetTeamByID(ctx, teamID)
}

func (s *teamService) resolveTeamURLs(team *models.Team) {
	if s.uploader == nil {
		return
	}
	if team.LogoKey != nil {
		url := s.uploader.GetPublicURL(*team.LogoKey)
		team.LogoURL = &url
	}
	for i := range team.Members {
		if user := team.Members[i].User; user != nil && user.AvatarKey != nil {
			url := s.uploader.GetPublicURL(*user.AvatarKey)
			user.AvatarURL = &url
		}
	}
}
