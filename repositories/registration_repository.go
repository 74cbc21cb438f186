package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/muqabla/sportshub/models"
)

var (
	ErrRegistrationNotFound    = errors.New("event registration not found")
	ErrRegistrationConflict    = errors.New("team is already registered for this event")
	ErrRegistrationInvalidRefs = errors.New("invalid event or team reference")
)

type RegistrationRepository interface {
	Create(ctx context.Context, registration *models.EventRegistration) error
	GetByID(ctx context.Context, id int) (*models.EventRegistration, error)
	ListByEvent(ctx context.Context, eventID int) ([]models.EventRegistration, error)
	ListByTeam(ctx context.Context, teamID int) ([]models.EventRegistration, error)
	CountApprovedByEvent(ctx context.Context, eventID int) (int, error)
	UpdateStatus(ctx context.Context, id int, status models.RegistrationStatus) error
	Delete(ctx context.Context, id int) error
}

type postgresRegistrationRepository struct {
	db *sql.DB
}

func NewPostgresRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &postgresRegistrationRepository{db: db}
}

func (r *postgresRegistrationRepository) Create(ctx context.Context, reg *models.EventRegistration) error {
	query := `
		INSERT INTO event_registrations (event_id, team_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, registered_at`

	err := r.db.QueryRowContext(ctx, query, reg.EventID, reg.TeamID, reg.Status).
		Scan(&reg.ID, &reg.RegisteredAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return ErrRegistrationConflict
			case "23503":
				return ErrRegistrationInvalidRefs
			}
		}
		return err
	}
	return nil
}

func (r *postgresRegistrationRepository) GetByID(ctx context.Context, id int) (*models.EventRegistration, error) {
	query := `
		SELECT id, event_id, team_id, status, registered_at
		FROM event_registrations
		WHERE id = $1`

	var reg models.EventRegistration
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&reg.ID, &reg.EventID, &reg.TeamID, &reg.Status, &reg.RegisteredAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return &reg, nil
}

func (r *postgresRegistrationRepository) ListByEvent(ctx context.Context, eventID int) ([]models.EventRegistration, error) {
	query := `
		SELECT
			er.id, er.event_id, er.team_id, er.status, er.registered_at,
			t.id, t.name, t.sport_id, t.logo_key, t.description, t.is_active, t.created_at
		FROM event_registrations er
		JOIN teams t ON t.id = er.team_id
		WHERE er.event_id = $1
		ORDER BY er.registered_at ASC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	registrations := make([]models.EventRegistration, 0)
	for rows.Next() {
		var reg models.EventRegistration
		var team models.Team
		if scanErr := rows.Scan(
			&reg.ID, &reg.EventID, &reg.TeamID, &reg.Status, &reg.RegisteredAt,
			&team.ID, &team.Name, &team.SportID, &team.LogoKey, &team.Description, &team.IsActive, &team.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		reg.Team = &team
		registrations = append(registrations, reg)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return registrations, nil
}

func (r *postgresRegistrationRepository) ListByTeam(ctx context.Context, teamID int) ([]models.EventRegistration, error) {
	query := `
		SELECT
			er.id, er.event_id, er.team_id, er.status, er.registered_at,
			e.id, e.name, e.start_date, e.end_date, e.status
		FROM event_registrations er
		JOIN events e ON e.id = er.event_id
		WHERE er.team_id = $1
		ORDER BY er.registered_at DESC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	registrations := make([]models.EventRegistration, 0)
	for rows.Next() {
		var reg models.EventRegistration
		var event models.Event
		if scanErr := rows.Scan(
			&reg.ID, &reg.EventID, &reg.TeamID, &reg.Status, &reg.RegisteredAt,
			&event.ID, &event.Name, &event.StartDate, &event.EndDate, &event.Status,
		); scanErr != nil {
			return nil, scanErr
		}
		reg.Event = &event
		registrations = append(registrations, reg)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return registrations, nil
}

func (r *postgresRegistrationRepository) CountApprovedByEvent(ctx context.Context, eventID int) (int, error) {
	query := `SELECT COUNT(*) FROM event_registrations WHERE event_id = $1 AND status = $2`
	var count int
	err := r.db.QueryRowContext(ctx, query, eventID, models.RegistrationApproved).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postgresRegistrationRepository) UpdateStatus(ctx context.Context, id int, status models.RegistrationStatus) error {
	query := `UPDATE event_registrations SET status = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM event_registrations WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}
