package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/muqabla/sportshub/models"
)

var ErrStandingNotFound = errors.New("standing not found")

type StandingRepository interface {
	ListByEvent(ctx context.Context, eventID int) ([]models.Standing, error)
	ReplaceForEvent(ctx context.Context, exec SQLExecutor, eventID int, standings []*models.Standing) error
	DeleteByEvent(ctx context.Context, exec SQLExecutor, eventID int) error
}

type postgresStandingRepository struct {
	db *sql.DB
}

func NewPostgresStandingRepository(db *sql.DB) StandingRepository {
	return &postgresStandingRepository{db: db}
}

func (r *postgresStandingRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresStandingRepository) ListByEvent(ctx context.Context, eventID int) ([]models.Standing, error) {
	query := `
		SELECT
			st.id, st.event_id, st.team_id, st.position, st.played, st.won, st.drawn, st.lost,
			st.goals_for, st.goals_against, st.goal_difference, st.points, st.updated_at,
			t.id, t.name, t.sport_id, t.logo_key, t.description, t.is_active, t.created_at
		FROM standings st
		JOIN teams t ON t.id = st.team_id
		WHERE st.event_id = $1
		ORDER BY st.position ASC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]models.Standing, 0)
	for rows.Next() {
		var s models.Standing
		var team models.Team
		if scanErr := rows.Scan(
			&s.ID, &s.EventID, &s.TeamID, &s.Position, &s.Played, &s.Won, &s.Drawn, &s.Lost,
			&s.GoalsFor, &s.GoalsAgainst, &s.GoalDifference, &s.Points, &s.UpdatedAt,
			&team.ID, &team.Name, &team.SportID, &team.LogoKey, &team.Description, &team.IsActive, &team.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		s.Team = &team
		standings = append(standings, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return standings, nil
}

// ReplaceForEvent swaps the full points table of an event in one shot. The
// caller provides the transaction so the delete and inserts stay atomic.
func (r *postgresStandingRepository) ReplaceForEvent(ctx context.Context, exec SQLExecutor, eventID int, standings []*models.Standing) error {
	executor := r.getExecutor(exec)

	if err := r.DeleteByEvent(ctx, executor, eventID); err != nil {
		return err
	}

	query := `
		INSERT INTO standings
			(event_id, team_id, position, played, won, drawn, lost,
			 goals_for, goals_against, goal_difference, points, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	for _, s := range standings {
		if s.UpdatedAt.IsZero() {
			s.UpdatedAt = time.Now()
		}
		err := executor.QueryRowContext(ctx, query,
			s.EventID, s.TeamID, s.Position, s.Played, s.Won, s.Drawn, s.Lost,
			s.GoalsFor, s.GoalsAgainst, s.GoalDifference, s.Points, s.UpdatedAt,
		).Scan(&s.ID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresStandingRepository) DeleteByEvent(ctx context.Context, exec SQLExecutor, eventID int) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `DELETE FROM standings WHERE event_id = $1`, eventID)
	return err
}
