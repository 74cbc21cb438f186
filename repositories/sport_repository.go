package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/muqabla/sportshub/models"
)

var (
	ErrSportNotFound     = errors.New("sport not found")
	ErrSportNameConflict = errors.New("sport name conflict")
	ErrSportInUse        = errors.New("sport cannot be deleted as it is in use")
)

type SportRepository interface {
	Create(ctx context.Context, sport *models.Sport) error
	GetByID(ctx context.Context, id int) (*models.Sport, error)
	ListActive(ctx context.Context) ([]models.Sport, error)
	Update(ctx context.Context, sport *models.Sport) error
	Delete(ctx context.Context, id int) error
}

type postgresSportRepository struct {
	db *sql.DB
}

func NewPostgresSportRepository(db *sql.DB) SportRepository {
	return &postgresSportRepository{db: db}
}

func (r *postgresSportRepository) Create(ctx context.Context, sport *models.Sport) error {
	query := `
		INSERT INTO sports (name, description, icon, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		sport.Name, sport.Description, sport.Icon, sport.IsActive,
	).Scan(&sport.ID, &sport.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "sports_name_key" {
				return ErrSportNameConflict
			}
		}
		return err
	}
	return nil
}

func (r *postgresSportRepository) GetByID(ctx context.Context, id int) (*models.Sport, error) {
	query := `
		SELECT id, name, description, icon, is_active, created_at
		FROM sports
		WHERE id = $1`

	var sport models.Sport
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&sport.ID, &sport.Name, &sport.Description, &sport.Icon, &sport.IsActive, &sport.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSportNotFound
		}
		return nil, err
	}
	return &sport, nil
}

func (r *postgresSportRepository) ListActive(ctx context.Context) ([]models.Sport, error) {
	query := `
		SELECT
			s.id, s.name, s.description, s.icon, s.is_active, s.created_at,
			(SELECT COUNT(*) FROM events e WHERE e.sport_id = s.id),
			(SELECT COUNT(*) FROM teams t WHERE t.sport_id = s.id)
		FROM sports s
		WHERE s.is_active = TRUE
		ORDER BY s.name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sports := make([]models.Sport, 0)
	for rows.Next() {
		var sport models.Sport
		var eventCount, teamCount int
		if scanErr := rows.Scan(
			&sport.ID, &sport.Name, &sport.Description, &sport.Icon, &sport.IsActive, &sport.CreatedAt,
			&eventCount, &teamCount,
		); scanErr != nil {
			return nil, scanErr
		}
		sport.EventCount = &eventCount
		sport.TeamCount = &teamCount
		sports = append(sports, sport)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return sports, nil
}

func (r *postgresSportRepository) Update(ctx context.Context, sport *models.Sport) error {
	query := `
		UPDATE sports
		SET name = $1, description = $2, icon = $3, is_active = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query, sport.Name, sport.Description, sport.Icon, sport.IsActive, sport.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "sports_name_key" {
				return ErrSportNameConflict
			}
		}
		return err
	}
	return checkAffectedRows(result, ErrSportNotFound)
}

func (r *postgresSportRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM sports WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		// ON DELETE RESTRICT on teams and events referencing the sport.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrSportInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrSportNotFound)
}
