package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/muqabla/sportshub/models"
	"github.com/muqabla/sportshub/repositories"
)

var ErrStandingsRecalculationFailed = errors.New("failed to recalculate standings")

const (
	pointsPerWin  = 3
	pointsPerDraw = 1
)

// LiveBroadcaster pushes event updates to connected websocket clients.
type LiveBroadcaster interface {
	BroadcastMatchUpdate(eventID int, match *models.Match)
	BroadcastStandingsUpdate(eventID int, standings []models.Standing)
}

type StandingService interface {
	ListByEvent(ctx context.Context, eventID int) ([]models.Standing, error)
	RecalculateForEvent(ctx context.Context, eventID int) ([]models.Standing, error)
}

type standingService struct {
	db               *sql.DB
	standingRepo     repositories.StandingRepository
	matchRepo        repositories.MatchRepository
	eventRepo        repositories.EventRepository
	registrationRepo repositories.RegistrationRepository
	broadcaster      LiveBroadcaster
}

func NewStandingService(
	db *sql.DB,
	standingRepo repositories.StandingRepository,
	matchRepo repositories.MatchRepository,
	eventRepo repositories.EventRepository,
	registrationRepo repositories.RegistrationRepository,
	broadcaster LiveBroadcaster,
) StandingService {
	return &standingService{
		db:               db,
		standingRepo:     standingRepo,
		matchRepo:        matchRepo,
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		broadcaster:      broadcaster,
	}
}

func (s *standingService) ListByEvent(ctx context.Context, eventID int) ([]models.Standing, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to list standings for event %d: %w", eventID, err)
	}
	standings, err := s.standingRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list standings for event %d: %w", eventID, err)
	}
	return standings, nil
}

// RecalculateForEvent rebuilds the table from scratch out of the event's
// completed matches. Approved teams with no completed matches still get a
// zeroed row so the table is complete from day one.
func (s *standingService) RecalculateForEvent(ctx context.Context, eventID int) ([]models.Standing, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrStandingsRecalculationFailed, err)
	}

	registrations, err := s.registrationRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStandingsRecalculationFailed, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStandingsRecalculationFailed, err)
	}
	defer tx.Rollback()

	matches, err := s.matchRepo.ListCompletedByEvent(ctx, tx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStandingsRecalculationFailed, err)
	}

	rows := buildStandings(eventID, registrations, matches)
	if err := s.standingRepo.ReplaceForEvent(ctx, tx, eventID, rows); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStandingsRecalculationFailed, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStandingsRecalculationFailed, err)
	}

	standings, err := s.standingRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStandingsRecalculationFailed, err)
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastStandingsUpdate(eventID, standings)
	}
	return standings, nil
}

// buildStandings tallies completed matches into ranked rows. Ties break on
// points, then goal difference, then goals for, then team id.
func buildStandings(eventID int, registrations []models.EventRegistration, matches []models.Match) []*models.Standing {
	byTeam := map[int]*models.Standing{}
	ensure := func(teamID int) *models.Standing {
		if row, ok := byTeam[teamID]; ok {
			return row
		}
		row := &models.Standing{EventID: eventID, TeamID: teamID}
		byTeam[teamID] = row
		return row
	}

	for _, reg := range registrations {
		if reg.Status == models.RegistrationApproved {
			ensure(reg.TeamID)
		}
	}

	for _, match := range matches {
		if match.HomeScore == nil || match.AwayScore == nil {
			continue
		}
		home := ensure(match.HomeTeamID)
		away := ensure(match.AwayTeamID)
		homeScore, awayScore := *match.HomeScore, *match.AwayScore

		home.Played++
		away.Played++
		home.GoalsFor += homeScore
		home.GoalsAgainst += awayScore
		away.GoalsFor += awayScore
		away.GoalsAgainst += homeScore

		switch {
		case homeScore > awayScore:
			home.Won++
			home.Points += pointsPerWin
			away.Lost++
		case homeScore < awayScore:
			away.Won++
			away.Points += pointsPerWin
			home.Lost++
		default:
			home.Drawn++
			away.Drawn++
			home.Points += pointsPerDraw
			away.Points += pointsPerDraw
		}
	}

	rows := make([]*models.Standing, 0, len(byTeam))
	for _, row := range byTeam {
		row.GoalDifference = row.GoalsFor - row.GoalsAgainst
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.TeamID < b.TeamID
	})
	for i, row := range rows {
		row.Position = i + 1
	}
	return rows
}
