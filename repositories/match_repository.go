package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/muqabla/sportshub/models"
)

var (
	ErrMatchNotFound       = errors.New("match not found")
	ErrMatchSameTeam       = errors.New("match home and away teams must differ")
	ErrMatchInvalidEvent   = errors.New("invalid event reference")
	ErrMatchInvalidTeam    = errors.New("invalid team reference")
	ErrMatchInvalidReferee = errors.New("invalid referee reference")
)

type ListMatchesFilter struct {
	EventID *int
	Status  *models.MatchStatus
	TeamID  *int
}

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context, filter ListMatchesFilter) ([]models.Match, error)
	ListByEvent(ctx context.Context, eventID int) ([]models.Match, error)
	ListCompletedByEvent(ctx context.Context, exec SQLExecutor, eventID int) ([]models.Match, error)
	ListRecentByTeam(ctx context.Context, teamID int, home bool, limit int) ([]models.Match, error)
	Update(ctx context.Context, match *models.Match) error
	Delete(ctx context.Context, id int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = `
	id, event_id, home_team_id, away_team_id, referee_id, venue,
	scheduled_at, started_at, ended_at, status,
	home_score, away_score, round, match_number, notes, created_at`

func scanMatch(rowScanner interface{ Scan(...interface{}) error }, m *models.Match) error {
	return rowScanner.Scan(
		&m.ID, &m.EventID, &m.HomeTeamID, &m.AwayTeamID, &m.RefereeID, &m.Venue,
		&m.ScheduledAt, &m.StartedAt, &m.EndedAt, &m.Status,
		&m.HomeScore, &m.AwayScore, &m.Round, &m.MatchNumber, &m.Notes, &m.CreatedAt,
	)
}

func (r *postgresMatchRepository) Create(ctx context.Context, m *models.Match) error {
	query := `
		INSERT INTO matches (
			event_id, home_team_id, away_team_id, referee_id, venue,
			scheduled_at, status, round, match_number, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		m.EventID, m.HomeTeamID, m.AwayTeamID, m.RefereeID, m.Venue,
		m.ScheduledAt, m.Status, m.Round, m.MatchNumber, m.Notes,
	).Scan(&m.ID, &m.CreatedAt)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT` + matchColumns + ` FROM matches WHERE id = $1`

	m := &models.Match{}
	err := scanMatch(r.db.QueryRowContext(ctx, query, id), m)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *postgresMatchRepository) List(ctx context.Context, filter ListMatchesFilter) ([]models.Match, error) {
	query := `
		SELECT
			m.id, m.event_id, m.home_team_id, m.away_team_id, m.referee_id, m.venue,
			m.scheduled_at, m.started_at, m.ended_at, m.status,
			m.home_score, m.away_score, m.round, m.match_number, m.notes, m.created_at,
			(SELECT COUNT(*) FROM scorecards sc WHERE sc.match_id = m.id),
			(SELECT COUNT(*) FROM match_statistics ms WHERE ms.match_id = m.id)
		FROM matches m
		WHERE 1=1`

	args := []interface{}{}
	argID := 1

	if filter.EventID != nil {
		query += fmt.Sprintf(" AND m.event_id = $%d", argID)
		args = append(args, *filter.EventID)
		argID++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND m.status = $%d", argID)
		args = append(args, *filter.Status)
		argID++
	}
	if filter.TeamID != nil {
		query += fmt.Sprintf(" AND (m.home_team_id = $%d OR m.away_team_id = $%d)", argID, argID)
		args = append(args, *filter.TeamID)
		argID++
	}

	query += " ORDER BY m.scheduled_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var m models.Match
		var scorecardCount, statisticCount int
		if scanErr := rows.Scan(
			&m.ID, &m.EventID, &m.HomeTeamID, &m.AwayTeamID, &m.RefereeID, &m.Venue,
			&m.ScheduledAt, &m.StartedAt, &m.EndedAt, &m.Status,
			&m.HomeScore, &m.AwayScore, &m.Round, &m.MatchNumber, &m.Notes, &m.CreatedAt,
			&scorecardCount, &statisticCount,
		); scanErr != nil {
			return nil, scanErr
		}
		m.ScorecardCount = &scorecardCount
		m.StatisticCount = &statisticCount
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresMatchRepository) ListByEvent(ctx context.Context, eventID int) ([]models.Match, error) {
	query := `SELECT` + matchColumns + ` FROM matches WHERE event_id = $1 ORDER BY scheduled_at ASC`
	return r.queryMatches(ctx, r.db, query, eventID)
}

func (r *postgresMatchRepository) ListCompletedByEvent(ctx context.Context, exec SQLExecutor, eventID int) ([]models.Match, error) {
	executor := r.getExecutor(exec)
	query := `SELECT` + matchColumns + ` FROM matches WHERE event_id = $1 AND status = $2 ORDER BY scheduled_at ASC`
	return r.queryMatches(ctx, executor, query, eventID, models.MatchStatusCompleted)
}

func (r *postgresMatchRepository) ListRecentByTeam(ctx context.Context, teamID int, home bool, limit int) ([]models.Match, error) {
	column := "away_team_id"
	if home {
		column = "home_team_id"
	}
	query := `SELECT` + matchColumns + ` FROM matches WHERE ` + column + ` = $1 ORDER BY scheduled_at DESC LIMIT $2`
	return r.queryMatches(ctx, r.db, query, teamID, limit)
}

func (r *postgresMatchRepository) queryMatches(ctx context.Context, exec SQLExecutor, query string, args ...interface{}) ([]models.Match, error) {
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var m models.Match
		if scanErr := scanMatch(rows, &m); scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresMatchRepository) Update(ctx context.Context, m *models.Match) error {
	query := `
		UPDATE matches SET
			referee_id = $1,
			venue = $2,
			scheduled_at = $3,
			started_at = $4,
			ended_at = $5,
			status = $6,
			home_score = $7,
			away_score = $8,
			round = $9,
			match_number = $10,
			notes = $11
		WHERE id = $12`

	result, err := r.db.ExecContext(ctx, query,
		m.RefereeID, m.Venue, m.ScheduledAt, m.StartedAt, m.EndedAt, m.Status,
		m.HomeScore, m.AwayScore, m.Round, m.MatchNumber, m.Notes,
		m.ID,
	)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM matches WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23514": // check_violation, matches_teams_differ_check
			return ErrMatchSameTeam
		case "23503":
			switch pqErr.Constraint {
			case "matches_event_id_fkey":
				return ErrMatchInvalidEvent
			case "matches_home_team_id_fkey", "matches_away_team_id_fkey":
				return ErrMatchInvalidTeam
			case "matches_referee_id_fkey":
				return ErrMatchInvalidReferee
			}
		}
	}
	return err
}
