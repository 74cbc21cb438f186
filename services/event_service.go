package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/muqabla/sportshub/models"
	"github.com/muqabla/sportshub/repositories"
	"github.com/muqabla/sportshub/storage"
)

var (
	ErrEventCreationFailed     = errors.New("failed to create event")
	ErrEventUpdateFailed       = errors.New("failed to update event")
	ErrEventDeleteFailed       = errors.New("failed to delete event")
	ErrEventBannerUploadFailed = errors.New("failed to upload event banner")
)

const (
	defaultEventPage     = 1
	defaultEventLimit    = 10
	defaultTeamsPerMatch = 2
)

// Pagination is the metadata block attached to paginated list responses.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// TotalPages is the ceiling of total divided by limit.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

type EventPage struct {
	Events     []models.Event `json:"events"`
	Pagination Pagination     `json:"pagination"`
}

type ListEventsInput struct {
	SportID *int
	Status  *models.EventStatus
	Page    int
	Limit   int
}

type CreateEventInput struct {
	Name                 string   `json:"name"`
	Description          *string  `json:"description"`
	SportID              int      `json:"sportId"`
	OrganizerID          int      `json:"organizerId"`
	Venue                string   `json:"venue"`
	StartDate            string   `json:"startDate"`
	EndDate              string   `json:"endDate"`
	RegistrationDeadline string   `json:"registrationDeadline"`
	MaxTeams             int      `json:"maxTeams"`
	MinTeamsPerMatch     *int     `json:"minTeamsPerMatch"`
	MaxTeamsPerMatch     *int     `json:"maxTeamsPerMatch"`
	EntryFee             *float64 `json:"entryFee"`
	PrizePool            *float64 `json:"prizePool"`
	Rules                *string  `json:"rules"`
	IsPublic             *bool    `json:"isPublic"`
}

type UpdateEventInput struct {
	Name                 *string  `json:"name"`
	Description          *string  `json:"description"`
	Venue                *string  `json:"venue"`
	StartDate            *string  `json:"startDate"`
	EndDate              *string  `json:"endDate"`
	RegistrationDeadline *string  `json:"registrationDeadline"`
	MaxTeams             *int     `json:"maxTeams"`
	MinTeamsPerMatch     *int     `json:"minTeamsPerMatch"`
	MaxTeamsPerMatch     *int     `json:"maxTeamsPerMatch"`
	EntryFee             *float64 `json:"entryFee"`
	PrizePool            *float64 `json:"prizePool"`
	Status               *string  `json:"status"`
	Rules                *string  `json:"rules"`
	IsPublic             *bool    `json:"isPublic"`
}

type EventService interface {
	CreateEvent(ctx context.Context, input CreateEventInput) (*models.Event, error)
	GetEventByID(ctx context.Context, id int) (*models.Event, error)
	ListEvents(ctx context.Context, input ListEventsInput) (*EventPage, error)
	UpdateEvent(ctx context.Context, id int, input UpdateEventInput) (*models.Event, error)
	DeleteEvent(ctx context.Context, id int) error
	UploadBanner(ctx context.Context, eventID int, file io.Reader, contentType string) (*models.Event, error)
	AutoUpdateEventStatusesByDates(ctx context.Context) error
}

type eventService struct {
	eventRepo        repositories.EventRepository
	sportRepo        repositories.SportRepository
	userRepo         repositories.UserRepository
	registrationRepo repositories.RegistrationRepository
	matchRepo        repositories.MatchRepository
	standingRepo     repositories.StandingRepository
	teamRepo         repositories.TeamRepository
	uploader         storage.FileUploader
	logger           *slog.Logger
}

func NewEventService(
	eventRepo repositories.EventRepository,
	sportRepo repositories.SportRepository,
	userRepo repositories.UserRepository,
	registrationRepo repositories.RegistrationRepository,
	matchRepo repositories.MatchRepository,
	standingRepo repositories.StandingRepository,
	teamRepo repositories.TeamRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) EventService {
	return &eventService{
		eventRepo:        eventRepo,
		sportRepo:        sportRepo,
		userRepo:         userRepo,
		registrationRepo: registrationRepo,
		matchRepo:        matchRepo,
		standingRepo:     standingRepo,
		teamRepo:         teamRepo,
		uploader:         uploader,
		logger:           logger,
	}
}

func parseEventDate(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, value)
	}
	return t, nil
}

func (s *eventService) CreateEvent(ctx context.Context, input CreateEventInput) (*models.Event, error) {
	if strings.TrimSpace(input.Name) == "" ||
		input.SportID <= 0 ||
		input.OrganizerID <= 0 ||
		strings.TrimSpace(input.Venue) == "" ||
		input.StartDate == "" ||
		input.EndDate == "" ||
		input.RegistrationDeadline == "" ||
		input.MaxTeams == 0 {
		return nil, ErrEventMissingFields
	}
	if input.MaxTeams < 0 {
		return nil, ErrEventInvalidCapacity
	}

	startDate, err := parseEventDate(input.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseEventDate(input.EndDate)
	if err != nil {
		return nil, err
	}
	registrationDeadline, err := parseEventDate(input.RegistrationDeadline)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		Name:                 strings.TrimSpace(input.Name),
		Description:          input.Description,
		SportID:              input.SportID,
		OrganizerID:          input.OrganizerID,
		Venue:                strings.TrimSpace(input.Venue),
		StartDate:            startDate,
		EndDate:              endDate,
		RegistrationDeadline: registrationDeadline,
		MaxTeams:             input.MaxTeams,
		MinTeamsPerMatch:     defaultTeamsPerMatch,
		MaxTeamsPerMatch:     defaultTeamsPerMatch,
		Status:               models.EventStatusRegistrationOpen,
		IsPublic:             true,
		PrizePool:            input.PrizePool,
		Rules:                input.Rules,
	}
	if input.MinTeamsPerMatch != nil {
		event.MinTeamsPerMatch = *input.MinTeamsPerMatch
	}
	if input.MaxTeamsPerMatch != nil {
		event.MaxTeamsPerMatch = *input.MaxTeamsPerMatch
	}
	if input.EntryFee != nil {
		event.EntryFee = *input.EntryFee
	}
	if input.IsPublic != nil {
		event.IsPublic = *input.IsPublic
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		switch {
		case errors.Is(err, repositories.ErrEventInvalidSport):
			return nil, ErrInvalidSportReference
		case errors.Is(err, repositories.ErrEventInvalidOrganizer):
			return nil, ErrInvalidUserReference
		default:
			return nil, fmt.Errorf("%w: %w", ErrEventCreationFailed, err)
		}
	}

	return s.GetEventByID(ctx, event.ID)
}

func (s *eventService) GetEventByID(ctx context.Context, id int) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event by id %d: %w", id, err)
	}

	if sport, err := s.sportRepo.GetByID(ctx, event.SportID); err == nil {
		event.Sport = sport
	}
	if organizer, err := s.userRepo.GetByID(ctx, event.OrganizerID); err == nil {
		event.Organizer = &models.PublicUser{
			ID:        organizer.ID,
			Email:     organizer.Email,
			Username:  organizer.Username,
			FirstName: organizer.FirstName,
			LastName:  organizer.LastName,
			AvatarKey: organizer.AvatarKey,
		}
	}

	registrations, err := s.registrationRepo.ListByEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load registrations for event %d: %w", id, err)
	}
	for i := range registrations {
		if registrations[i].Team == nil {
			continue
		}
		members, err := s.teamRepo.ListMembers(ctx, registrations[i].Team.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load members for team %d: %w", registrations[i].Team.ID, err)
		}
		registrations[i].Team.Members = members
	}
	event.Registrations = registrations

	matches, err := s.matchRepo.ListByEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches for event %d: %w", id, err)
	}
	event.Matches = matches

	standings, err := s.standingRepo.ListByEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load standings for event %d: %w", id, err)
	}
	event.Standings = standings

	s.resolveEventURLs(event)
	return event, nil
}

// ListEvents runs the page query and the total count concurrently, the same
// pair the list endpoint has always needed.
func (s *eventService) ListEvents(ctx context.Context, input ListEventsInput) (*EventPage, error) {
	page := input.Page
	if page <= 0 {
		page = defaultEventPage
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultEventLimit
	}

	filter := repositories.ListEventsFilter{
		SportID: input.SportID,
		Status:  input.Status,
		Limit:   limit,
		Offset:  (page - 1) * limit,
	}

	var (
		events []models.Event
		total  int
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = s.eventRepo.List(gCtx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.eventRepo.Count(gCtx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	for i := range events {
		s.resolveEventURLs(&events[i])
	}

	return &EventPage{
		Events: events,
		Pagination: Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: TotalPages(total, limit),
		},
	}, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id int, input UpdateEventInput) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("%w (id: %d): %w", ErrEventUpdateFailed, id, err)
	}

	if input.Name != nil {
		event.Name = *input.Name
	}
	if input.Description != nil {
		event.Description = input.Description
	}
	if input.Venue != nil {
		event.Venue = *input.Venue
	}
	if input.StartDate != nil {
		t, err := parseEventDate(*input.StartDate)
		if err != nil {
			return nil, err
		}
		event.StartDate = t
	}
	if input.EndDate != nil {
		t, err := parseEventDate(*input.EndDate)
		if err != nil {
			return nil, err
		}
		event.EndDate = t
	}
	if input.RegistrationDeadline != nil {
		t, err := parseEventDate(*input.RegistrationDeadline)
		if err != nil {
			return nil, err
		}
		event.RegistrationDeadline = t
	}
	if input.MaxTeams != nil {
		if *input.MaxTeams <= 0 {
			return nil, ErrEventInvalidCapacity
		}
		event.MaxTeams = *input.MaxTeams
	}
	if input.MinTeamsPerMatch != nil {
		event.MinTeamsPerMatch = *input.MinTeamsPerMatch
	}
	if input.MaxTeamsPerMatch != nil {
		event.MaxTeamsPerMatch = *input.MaxTeamsPerMatch
	}
	if input.EntryFee != nil {
		event.EntryFee = *input.EntryFee
	}
	if input.PrizePool != nil {
		event.PrizePool = input.PrizePool
	}
	if input.Status != nil {
		status := models.EventStatus(*input.Status)
		if !isValidEventStatus(status) {
			return nil, fmt.Errorf("%w: unknown event status %q", ErrValidationFailed, *input.Status)
		}
		event.Status = status
	}
	if input.Rules != nil {
		event.Rules = input.Rules
	}
	if input.IsPublic != nil {
		event.IsPublic = *input.IsPublic
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("%w (id: %d): %w", ErrEventUpdateFailed, id, err)
	}

	return s.GetEventByID(ctx, id)
}

func (s *eventService) DeleteEvent(ctx context.Context, id int) error {
	err := s.eventRepo.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrEventNotFound):
			return ErrEventNotFound
		case errors.Is(err, repositories.ErrEventInUse):
			return ErrEventInUse
		default:
			return fmt.Errorf("%w (id: %d): %w", ErrEventDeleteFailed, id, err)
		}
	}
	return nil
}

func (s *eventService) UploadBanner(ctx context.Context, eventID int, file io.Reader, contentType string) (*models.Event, error) {
	if s.uploader == nil {
		return nil, ErrMediaStorageUnavailable
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrEventBannerUploadFailed, err)
	}

	key := fmt.Sprintf("banners/event_%d_%d", eventID, time.Now().Unix())
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEventBannerUploadFailed, err)
	}

	oldKey := event.BannerKey
	if err := s.eventRepo.UpdateBannerKey(ctx, eventID, &result.Key); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEventBannerUploadFailed, err)
	}
	if oldKey != nil && *oldKey != result.Key {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	return s.GetEventByID(ctx, eventID)
}

// AutoUpdateEventStatusesByDates advances event statuses whose dates have
// passed. Runs from the scheduler goroutine in main.
func (s *eventService) AutoUpdateEventStatusesByDates(ctx context.Context) error {
	now := time.Now()
	events, err := s.eventRepo.GetEventsForAutoStatusUpdate(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to fetch events for status update: %w", err)
	}

	for _, event := range events {
		var next models.EventStatus
		switch event.Status {
		case models.EventStatusRegistrationOpen:
			next = models.EventStatusRegistrationClosed
		case models.EventStatusRegistrationClosed:
			next = models.EventStatusOngoing
		case models.EventStatusOngoing:
			next = models.EventStatusCompleted
		default:
			continue
		}

		if err := s.eventRepo.UpdateStatus(ctx, nil, event.ID, next); err != nil {
			s.logger.Error("failed to auto-update event status",
				slog.Int("event_id", event.ID),
				slog.String("from", string(event.Status)),
				slog.String("to", string(next)),
				slog.Any("error", err))
			continue
		}
		s.logger.Info("event status advanced",
			slog.Int("event_id", event.ID),
			slog.String("from", string(event.Status)),
			slog.String("to", string(next)))
	}
	return nil
}

func (s *eventService) resolveEventURLs(event *models.Event) {
	if s.uploader == nil {
		return
	}
	if event.BannerKey != nil {
		url := s.uploader.GetPublicURL(*event.BannerKey)
		event.BannerURL = &url
	}
	if event.Organizer != nil && event.Organizer.AvatarKey != nil {
		url := s.uploader.GetPublicURL(*event.Organizer.AvatarKey)
		event.Organizer.AvatarURL = &url
	}
	for i := range event.Registrations {
		if team := event.Registrations[i].Team; team != nil && team.LogoKey != nil {
			url := s.uploader.GetPublicURL(*team.LogoKey)
			team.LogoURL = &url
		}
	}
	for i := range event.Standings {
		if team := event.Standings[i].Team; team != nil && team.LogoKey != nil {
			url := s.uploader.GetPublicURL(*team.LogoKey)
			team.LogoURL = &url
		}
	}
}

func isValidEventStatus(status models.EventStatus) bool {
	switch status {
	case models.EventStatusUpcoming,
		models.EventStatusRegistrationOpen,
		models.EventStatusRegistrationClosed,
		models.EventStatusOngoing,
		models.EventStatusCompleted,
		models.EventStatusCancelled:
		return true
	}
	return false
}
