package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/muqabla/sportshub/models"
	"github.com/muqabla/sportshub/repositories"
)

var (
	ErrSportCreationFailed = errors.New("failed to create sport")
	ErrSportUpdateFailed   = errors.New("failed to update sport")
	ErrSportDeleteFailed   = errors.New("failed to delete sport")
)

const sportDetailLimit = 10

type SportService interface {
	CreateSport(ctx context.Context, input CreateSportInput) (*models.Sport, error)
	GetSportByID(ctx context.Context, id int) (*models.Sport, error)
	ListSports(ctx context.Context) ([]models.Sport, error)
	UpdateSport(ctx context.Context, id int, input UpdateSportInput) (*models.Sport, error)
	DeleteSport(ctx context.Context, id int) error
}

type CreateSportInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

// UpdateSportInput holds the PATCH allow-list. A nil field was absent from the
// body and stays untouched; a non-nil field is applied even when its value is
// empty or false.
type UpdateSportInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	IsActive    *bool   `json:"isActive"`
}

type sportService struct {
	sportRepo repositories.SportRepository
	eventRepo repositories.EventRepository
	teamRepo  repositories.TeamRepository
}

func NewSportService(
	sportRepo repositories.SportRepository,
	eventRepo repositories.EventRepository,
	teamRepo repositories.TeamRepository,
) SportService {
	return &sportService{
		sportRepo: sportRepo,
		eventRepo: eventRepo,
		teamRepo:  teamRepo,
	}
}

func (s *sportService) CreateSport(ctx context.Context, input CreateSportInput) (*models.Sport, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: sport name is required", ErrValidationFailed)
	}

	sport := &models.Sport{
		Name:        name,
		Description: input.Description,
		Icon:        input.Icon,
		IsActive:    true,
	}

	if err := s.sportRepo.Create(ctx, sport); err != nil {
		if errors.Is(err, repositories.ErrSportNameConflict) {
			return nil, ErrSportNameConflict
		}
		return nil, fmt.Errorf("%w: %w", ErrSportCreationFailed, err)
	}
	return sport, nil
}

func (s *sportService) GetSportByID(ctx context.Context, id int) (*models.Sport, error) {
	sport, err := s.sportRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("failed to get sport by id %d: %w", id, err)
	}

	events, err := s.eventRepo.ListRecentBySport(ctx, id, sportDetailLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load events for sport %d: %w", id, err)
	}
	sport.Events = events

	teams, err := s.teamRepo.List(ctx, repositories.ListTeamsFilter{SportID: &id})
	if err != nil {
		return nil, fmt.Errorf("failed to load teams for sport %d: %w", id, err)
	}
	if len(teams) > sportDetailLimit {
		teams = teams[:sportDetailLimit]
	}
	sport.Teams = teams

	return sport, nil
}

func (s *sportService) ListSports(ctx context.Context) ([]models.Sport, error) {
	sports, err := s.sportRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sports: %w", err)
	}
	if sports == nil {
		return []models.Sport{}, nil
	}
	return sports, nil
}

func (s *sportService) UpdateSport(ctx context.Context, id int, input UpdateSportInput) (*models.Sport, error) {
	sport, err := s.sportRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("%w (id: %d): %w", ErrSportUpdateFailed, id, err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: sport name cannot be empty", ErrValidationFailed)
		}
		sport.Name = name
	}
	if input.Description != nil {
		sport.Description = input.Description
	}
	if input.Icon != nil {
		sport.Icon = input.Icon
	}
	if input.IsActive != nil {
		sport.IsActive = *input.IsActive
	}

	if err := s.sportRepo.Update(ctx, sport); err != nil {
		switch {
		case errors.Is(err, repositories.ErrSportNotFound):
			return nil, ErrSportNotFound
		case errors.Is(err, repositories.ErrSportNameConflict):
			return nil, ErrSportNameConflict
		default:
			return nil, fmt.Errorf("%w (id: %d): %w", ErrSportUpdateFailed, id, err)
		}
	}
	return sport, nil
}

func (s *sportService) DeleteSport(ctx context.Context, id int) error {
	err := s.sportRepo.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrSportNotFound):
			return ErrSportNotFound
		case errors.Is(err, repositories.ErrSportInUse):
			return ErrSportInUse
		default:
			return fmt.Errorf("%w (id: %d): %w", ErrSportDeleteFailed, id, err)
		}
	}
	return nil
}
