package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/muqabla/sportshub/models"
	"github.com/muqabla/sportshub/repositories"
)

var (
	ErrMatchCreationFailed = errors.New("failed to create match")
	ErrMatchUpdateFailed   = errors.New("failed to update match")
	ErrMatchDeleteFailed   = errors.New("failed to delete match")
)

type ListMatchesInput struct {
	EventID *int
	Status  *models.MatchStatus
	TeamID  *int
}

type CreateMatchInput struct {
	EventID     int     `json:"eventId"`
	HomeTeamID  int     `json:"homeTeamId"`
	AwayTeamID  int     `json:"awayTeamId"`
	RefereeID   *int    `json:"refereeId"`
	Venue       string  `json:"venue"`
	ScheduledAt string  `json:"scheduledAt"`
	Round       *int    `json:"round"`
	MatchNumber *int    `json:"matchNumber"`
	Notes       *string `json:"notes"`
}

type UpdateMatchInput struct {
	RefereeID   *int    `json:"refereeId"`
	Venue       *string `json:"venue"`
	ScheduledAt *string `json:"scheduledAt"`
	StartedAt   *string `json:"startedAt"`
	EndedAt     *string `json:"endedAt"`
	Status      *string `json:"status"`
	HomeScore   *int    `json:"homeScore"`
	AwayScore   *int    `json:"awayScore"`
	Round       *int    `json:"round"`
	MatchNumber *int    `json:"matchNumber"`
	Notes       *string `json:"notes"`
}

type CreateScorecardInput struct {
	UserID    *int    `json:"userId"`
	Minute    int     `json:"minute"`
	EventType string  `json:"eventType"`
	Detail    *string `json:"detail"`
}

type CreateStatisticInput struct {
	MemberID      int `json:"memberId"`
	Goals         int `json:"goals"`
	Assists       int `json:"assists"`
	YellowCards   int `json:"yellowCards"`
	RedCards      int `json:"redCards"`
	MinutesPlayed int `json:"minutesPlayed"`
}

type MatchService interface {
	CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	GetMatchByID(ctx context.Context, id int) (*models.Match, error)
	ListMatches(ctx context.Context, input ListMatchesInput) ([]models.Match, error)
	UpdateMatch(ctx context.Context, id int, input UpdateMatchInput) (*models.Match, error)
	DeleteMatch(ctx context.Context, id int) error
	AddScorecardEntry(ctx context.Context, matchID int, input CreateScorecardInput) (*models.Scorecard, error)
	ListScorecard(ctx context.Context, matchID int) ([]models.Scorecard, error)
	AddStatistic(ctx context.Context, matchID int, input CreateStatisticInput) (*models.MatchStatistic, error)
	ListStatistics(ctx context.Context, matchID int) ([]models.MatchStatistic, error)
}

type matchService struct {
	matchRepo     repositories.MatchRepository
	scorecardRepo repositories.ScorecardRepository
	teamRepo      repositories.TeamRepository
	eventRepo     repositories.EventRepository
	userRepo      repositories.UserRepository
	standings     StandingService
	broadcaster   LiveBroadcaster
	logger        *slog.Logger
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	scorecardRepo repositories.ScorecardRepository,
	teamRepo repositories.TeamRepository,
	eventRepo repositories.EventRepository,
	userRepo repositories.UserRepository,
	standings StandingService,
	broadcaster LiveBroadcaster,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		matchRepo:     matchRepo,
		scorecardRepo: scorecardRepo,
		teamRepo:      teamRepo,
		eventRepo:     eventRepo,
		userRepo:      userRepo,
		standings:     standings,
		broadcaster:   broadcaster,
		logger:        logger,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	if input.EventID <= 0 ||
		input.HomeTeamID <= 0 ||
		input.AwayTeamID <= 0 ||
		strings.TrimSpace(input.Venue) == "" ||
		input.ScheduledAt == "" {
		return nil, ErrMatchMissingFields
	}
	if input.HomeTeamID == input.AwayTeamID {
		return nil, ErrMatchSameTeam
	}

	scheduledAt, err := parseEventDate(input.ScheduledAt)
	if err != nil {
		return nil, err
	}

	match := &models.Match{
		EventID:     input.EventID,
		HomeTeamID:  input.HomeTeamID,
		AwayTeamID:  input.AwayTeamID,
		RefereeID:   input.RefereeID,
		Venue:       strings.TrimSpace(input.Venue),
		ScheduledAt: scheduledAt,
		Status:      models.MatchStatusScheduled,
		Round:       input.Round,
		MatchNumber: input.MatchNumber,
		Notes:       input.Notes,
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		switch {
		case errors.Is(err, repositories.ErrMatchSameTeam):
			return nil, ErrMatchSameTeam
		case errors.Is(err, repositories.ErrMatchInvalidEvent):
			return nil, ErrInvalidEventReference
		case errors.Is(err, repositories.ErrMatchInvalidTeam):
			return nil, ErrInvalidTeamReference
		case errors.Is(err, repositories.ErrMatchInvalidReferee):
			return nil, ErrInvalidUserReference
		default:
			return nil, fmt.Errorf("%w: %w", ErrMatchCreationFailed, err)
		}
	}

	return s.GetMatchByID(ctx, match.ID)
}

func (s *matchService) GetMatchByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match by id %d: %w", id, err)
	}
	s.hydrateMatch(ctx, match)

	scorecards, err := s.scorecardRepo.ListByMatch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load scorecards for match %d: %w", id, err)
	}
	match.Scorecards = scorecards

	statistics, err := s.scorecardRepo.ListStatisticsByMatch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load statistics for match %d: %w", id, err)
	}
	match.Statistics = statistics

	return match, nil
}

func (s *matchService) ListMatches(ctx context.Context, input ListMatchesInput) ([]models.Match, error) {
	filter := repositories.ListMatchesFilter{
		EventID: input.EventID,
		Status:  input.Status,
		TeamID:  input.TeamID,
	}
	matches, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	for i := range matches {
		s.hydrateMatch(ctx, &matches[i])
	}
	return matches, nil
}

func (s *matchService) UpdateMatch(ctx context.Context, id int, input UpdateMatchInput) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("%w (id: %d): %w", ErrMatchUpdateFailed, id, err)
	}
	previousStatus := match.Status

	if input.RefereeID != nil {
		match.RefereeID = input.RefereeID
	}
	if input.Venue != nil {
		match.Venue = *input.Venue
	}
	if input.ScheduledAt != nil {
		t, err := parseEventDate(*input.ScheduledAt)
		if err != nil {
			return nil, err
		}
		match.ScheduledAt = t
	}
	if input.StartedAt != nil {
		t, err := parseEventDate(*input.StartedAt)
		if err != nil {
			return nil, err
		}
		match.StartedAt = &t
	}
	if input.EndedAt != nil {
		t, err := parseEventDate(*input.EndedAt)
		if err != nil {
			return nil, err
		}
		match.EndedAt = &t
	}
	if input.Status != nil {
		status := models.MatchStatus(*input.Status)
		if !isValidMatchStatus(status) {
			return nil, fmt.Errorf("%w: unknown match status %q", ErrValidationFailed, *input.Status)
		}
		match.Status = status
	}
	if input.HomeScore != nil {
		match.HomeScore = input.HomeScore
	}
	if input.AwayScore != nil {
		match.AwayScore = input.AwayScore
	}
	if input.Round != nil {
		match.Round = input.Round
	}
	if input.MatchNumber != nil {
		match.MatchNumber = input.MatchNumber
	}
	if input.Notes != nil {
		match.Notes = input.Notes
	}

	if match.Status == models.MatchStatusLive && match.StartedAt == nil {
		now := time.Now()
		match.StartedAt = &now
	}
	if match.Status == models.MatchStatusCompleted && match.EndedAt == nil {
		now := time.Now()
		match.EndedAt = &now
	}

	if err := s.matchRepo.Update(ctx, match); err != nil {
		switch {
		case errors.Is(err, repositories.ErrMatchNotFound):
			return nil, ErrMatchNotFound
		case errors.Is(err, repositories.ErrMatchInvalidReferee):
			return nil, ErrInvalidUserReference
		default:
			return nil, fmt.Errorf("%w (id: %d): %w", ErrMatchUpdateFailed, id, err)
		}
	}

	completedNow := match.Status == models.MatchStatusCompleted && previousStatus != models.MatchStatusCompleted
	scoreCorrected := previousStatus == models.MatchStatusCompleted &&
		match.Status == models.MatchStatusCompleted &&
		(input.HomeScore != nil || input.AwayScore != nil)
	if completedNow || scoreCorrected {
		if _, err := s.standings.RecalculateForEvent(ctx, match.EventID); err != nil {
			s.logger.Error("standings recalculation after match update failed",
				slog.Int("match_id", match.ID),
				slog.Int("event_id", match.EventID),
				slog.Any("error", err))
		}
	}

	updated, err := s.GetMatchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastMatchUpdate(updated.EventID, updated)
	}
	return updated, nil
}

func (s *matchService) DeleteMatch(ctx context.Context, id int) error {
	if err := s.matchRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("%w (id: %d): %w", ErrMatchDeleteFailed, id, err)
	}
	return nil
}

func (s *matchService) AddScorecardEntry(ctx context.Context, matchID int, input CreateScorecardInput) (*models.Scorecard, error) {
	if strings.TrimSpace(input.EventType) == "" {
		return nil, fmt.Errorf("%w: eventType is required", ErrValidationFailed)
	}
	if input.Minute < 0 {
		return nil, fmt.Errorf("%w: minute cannot be negative", ErrValidationFailed)
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to add scorecard entry: %w", err)
	}

	entry := &models.Scorecard{
		MatchID:   matchID,
		UserID:    input.UserID,
		Minute:    input.Minute,
		EventType: strings.TrimSpace(input.EventType),
		Detail:    input.Detail,
	}
	if err := s.scorecardRepo.CreateEntry(ctx, entry); err != nil {
		switch {
		case errors.Is(err, repositories.ErrScorecardInvalidMatch):
			return nil, ErrMatchNotFound
		default:
			return nil, fmt.Errorf("failed to add scorecard entry to match %d: %w", matchID, err)
		}
	}

	if s.broadcaster != nil {
		if updated, err := s.GetMatchByID(ctx, matchID); err == nil {
			s.broadcaster.BroadcastMatchUpdate(match.EventID, updated)
		}
	}
	return entry, nil
}

func (s *matchService) ListScorecard(ctx context.Context, matchID int) ([]models.Scorecard, error) {
	if _, err := s.matchRepo.GetByID(ctx, matchID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to list scorecard for match %d: %w", matchID, err)
	}
	entries, err := s.scorecardRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scorecard for match %d: %w", matchID, err)
	}
	return entries, nil
}

func (s *matchService) AddStatistic(ctx context.Context, matchID int, input CreateStatisticInput) (*models.MatchStatistic, error) {
	if input.MemberID <= 0 {
		return nil, fmt.Errorf("%w: memberId is required", ErrValidationFailed)
	}

	if _, err := s.matchRepo.GetByID(ctx, matchID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to add statistic: %w", err)
	}

	stat := &models.MatchStatistic{
		MatchID:       matchID,
		MemberID:      input.MemberID,
		Goals:         input.Goals,
		Assists:       input.Assists,
		YellowCards:   input.YellowCards,
		RedCards:      input.RedCards,
		MinutesPlayed: input.MinutesPlayed,
	}
	if err := s.scorecardRepo.CreateStatistic(ctx, stat); err != nil {
		switch {
		case errors.Is(err, repositories.ErrStatisticConflict):
			return nil, ErrStatisticConflict
		case errors.Is(err, repositories.ErrStatisticInvalidRefs):
			return nil, ErrInvalidTeamReference
		default:
			return nil, fmt.Errorf("failed to add statistic to match %d: %w", matchID, err)
		}
	}
	return stat, nil
}

func (s *matchService) ListStatistics(ctx context.Context, matchID int) ([]models.MatchStatistic, error) {
	if _, err := s.matchRepo.GetByID(ctx, matchID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to list statistics for match %d: %w", matchID, err)
	}
	stats, err := s.scorecardRepo.ListStatisticsByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list statistics for match %d: %w", matchID, err)
	}
	return stats, nil
}

func (s *matchService) hydrateMatch(ctx context.Context, match *models.Match) {
	if home, err := s.teamRepo.GetByID(ctx, match.HomeTeamID); err == nil {
		match.HomeTeam = home
	}
	if away, err := s.teamRepo.GetByID(ctx, match.AwayTeamID); err == nil {
		match.AwayTeam = away
	}
	if event, err := s.eventRepo.GetByID(ctx, match.EventID); err == nil {
		match.Event = event
	}
	if match.RefereeID != nil {
		if referee, err := s.userRepo.GetByID(ctx, *match.RefereeID); err == nil {
			match.Referee = &models.PublicUser{
				ID:        referee.ID,
				Username:  referee.Username,
				FirstName: referee.FirstName,
				LastName:  referee.LastName,
				AvatarKey: referee.AvatarKey,
			}
		}
	}
}

func isValidMatchStatus(status models.MatchStatus) bool {
	switch status {
	case models.MatchStatusScheduled,
		models.MatchStatusLive,
		models.MatchStatusCompleted,
		models.MatchStatusPostponed,
		models.MatchStatusCancelled:
		return true
	}
	return false
}
