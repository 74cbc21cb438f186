package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/muqabla/sportshub/models"
	"github.com/muqabla/sportshub/repositories"
)

var (
	ErrRegistrationCreationFailed = errors.New("failed to register team for event")
	ErrRegistrationUpdateFailed   = errors.New("failed to update registration")
	ErrRegistrationDeleteFailed   = errors.New("failed to delete registration")
)

type RegisterTeamInput struct {
	TeamID int `json:"teamId"`
}

type UpdateRegistrationInput struct {
	Status *string `json:"status"`
}

type RegistrationService interface {
	RegisterTeam(ctx context.Context, eventID int, input RegisterTeamInput) (*models.EventRegistration, error)
	ListByEvent(ctx context.Context, eventID int) ([]models.EventRegistration, error)
	UpdateRegistration(ctx context.Context, id int, input UpdateRegistrationInput) (*models.EventRegistration, error)
	DeleteRegistration(ctx context.Context, id int) error
}

type registrationService struct {
	registrationRepo repositories.RegistrationRepository
	eventRepo        repositories.EventRepository
	teamRepo         repositories.TeamRepository
}

func NewRegistrationService(
	registrationRepo repositories.RegistrationRepository,
	eventRepo repositories.EventRepository,
	teamRepo repositories.TeamRepository,
) RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		teamRepo:         teamRepo,
	}
}

func (s *registrationService) RegisterTeam(ctx context.Context, eventID int, input RegisterTeamInput) (*models.EventRegistration, error) {
	if input.TeamID <= 0 {
		return nil, fmt.Errorf("%w: teamId is required", ErrValidationFailed)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrRegistrationCreationFailed, err)
	}

	if event.Status != models.EventStatusRegistrationOpen {
		return nil, ErrRegistrationNotOpen
	}

	approved, err := s.registrationRepo.CountApprovedByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegistrationCreationFailed, err)
	}
	if approved >= event.MaxTeams {
		return nil, ErrEventFull
	}

	registration := &models.EventRegistration{
		EventID: eventID,
		TeamID:  input.TeamID,
		Status:  models.RegistrationPending,
	}
	if err := s.registrationRepo.Create(ctx, registration); err != nil {
		switch {
		case errors.Is(err, repositories.ErrRegistrationConflict):
			return nil, ErrRegistrationConflict
		case errors.Is(err, repositories.ErrRegistrationInvalidRefs):
			return nil, ErrInvalidTeamReference
		default:
			return nil, fmt.Errorf("%w: %w", ErrRegistrationCreationFailed, err)
		}
	}

	if team, err := s.teamRepo.GetByID(ctx, registration.TeamID); err == nil {
		registration.Team = team
	}
	return registration, nil
}

func (s *registrationService) ListByEvent(ctx context.Context, eventID int) ([]models.EventRegistration, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to list registrations for event %d: %w", eventID, err)
	}
	registrations, err := s.registrationRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations for event %d: %w", eventID, err)
	}
	return registrations, nil
}

func (s *registrationService) UpdateRegistration(ctx context.Context, id int, input UpdateRegistrationInput) (*models.EventRegistration, error) {
	if input.Status == nil {
		return nil, fmt.Errorf("%w: status is required", ErrValidationFailed)
	}
	status := models.RegistrationStatus(*input.Status)
	switch status {
	case models.RegistrationPending,
		models.RegistrationApproved,
		models.RegistrationRejected:
	default:
		return nil, fmt.Errorf("%w: unknown registration status %q", ErrValidationFailed, *input.Status)
	}

	current, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("%w (id: %d): %w", ErrRegistrationUpdateFailed, id, err)
	}

	if status == models.RegistrationApproved && current.Status != models.RegistrationApproved {
		event, err := s.eventRepo.GetByID(ctx, current.EventID)
		if err != nil {
			return nil, fmt.Errorf("%w (id: %d): %w", ErrRegistrationUpdateFailed, id, err)
		}
		approved, err := s.registrationRepo.CountApprovedByEvent(ctx, current.EventID)
		if err != nil {
			return nil, fmt.Errorf("%w (id: %d): %w", ErrRegistrationUpdateFailed, id, err)
		}
		if approved >= event.MaxTeams {
			return nil, ErrEventFull
		}
	}

	if err := s.registrationRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("%w (id: %d): %w", ErrRegistrationUpdateFailed, id, err)
	}

	registration, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w (id: %d): %w", ErrRegistrationUpdateFailed, id, err)
	}
	if team, err := s.teamRepo.GetByID(ctx, registration.TeamID); err == nil {
		registration.Team = team
	}
	return registration, nil
}

func (s *registrationService) DeleteRegistration(ctx context.Context, id int) error {
	if err := s.registrationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("%w (id: %d): %w", ErrRegistrationDeleteFailed, id, err)
	}
	return nil
}
