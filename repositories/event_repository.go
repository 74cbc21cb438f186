package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/muqabla/sportshub/models"
)

var (
	ErrEventNotFound         = errors.New("event not found")
	ErrEventInvalidSport     = errors.New("invalid sport reference")
	ErrEventInvalidOrganizer = errors.New("invalid organizer reference")
	ErrEventInUse            = errors.New("event cannot be deleted as it is in use")
)

type ListEventsFilter struct {
	SportID *int
	Status  *models.EventStatus
	Limit   int
	Offset  int
}

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id int) (*models.Event, error)
	List(ctx context.Context, filter ListEventsFilter) ([]models.Event, error)
	Count(ctx context.Context, filter ListEventsFilter) (int, error)
	ListRecentBySport(ctx context.Context, sportID, limit int) ([]models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.EventStatus) error
	UpdateBannerKey(ctx context.Context, eventID int, bannerKey *string) error
	Delete(ctx context.Context, id int) error
	GetEventsForAutoStatusUpdate(ctx context.Context, currentTime time.Time) ([]*models.Event, error)
}

type postgresEventRepository struct {
	db *sql.DB
}

func NewPostgresEventRepository(db *sql.DB) EventRepository {
	return &postgresEventRepository{db: db}
}

func (r *postgresEventRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const eventColumns = `
	id, name, description, sport_id, organizer_id, venue,
	start_date, end_date, registration_deadline,
	max_teams, min_teams_per_match, max_teams_per_match,
	entry_fee, prize_pool, status, is_public, rules, banner_key, created_at`

func scanEvent(rowScanner interface{ Scan(...interface{}) error }, e *models.Event) error {
	return rowScanner.Scan(
		&e.ID, &e.Name, &e.Description, &e.SportID, &e.OrganizerID, &e.Venue,
		&e.StartDate, &e.EndDate, &e.RegistrationDeadline,
		&e.MaxTeams, &e.MinTeamsPerMatch, &e.MaxTeamsPerMatch,
		&e.EntryFee, &e.PrizePool, &e.Status, &e.IsPublic, &e.Rules, &e.BannerKey, &e.CreatedAt,
	)
}

func (r *postgresEventRepository) Create(ctx context.Context, e *models.Event) error {
	query := `
		INSERT INTO events (
			name, description, sport_id, organizer_id, venue,
			start_date, end_date, registration_deadline,
			max_teams, min_teams_per_match, max_teams_per_match,
			entry_fee, prize_pool, status, is_public, rules, banner_key
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		e.Name, e.Description, e.SportID, e.OrganizerID, e.Venue,
		e.StartDate, e.EndDate, e.RegistrationDeadline,
		e.MaxTeams, e.MinTeamsPerMatch, e.MaxTeamsPerMatch,
		e.EntryFee, e.PrizePool, e.Status, e.IsPublic, e.Rules, e.BannerKey,
	).Scan(&e.ID, &e.CreatedAt)

	return r.handleEventError(err)
}

func (r *postgresEventRepository) GetByID(ctx context.Context, id int) (*models.Event, error) {
	query := `SELECT` + eventColumns + ` FROM events WHERE id = $1`

	e := &models.Event{}
	err := scanEvent(r.db.QueryRowContext(ctx, query, id), e)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *postgresEventRepository) buildListWhere(filter ListEventsFilter, args *[]interface{}) string {
	where := " WHERE 1=1"
	argID := len(*args) + 1

	if filter.SportID != nil {
		where += fmt.Sprintf(" AND sport_id = $%d", argID)
		*args = append(*args, *filter.SportID)
		argID++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", argID)
		*args = append(*args, *filter.Status)
		argID++
	}
	return where
}

func (r *postgresEventRepository) List(ctx context.Context, filter ListEventsFilter) ([]models.Event, error) {
	args := []interface{}{}
	query := `
		SELECT
			e.id, e.name, e.description, e.sport_id, e.organizer_id, e.venue,
			e.start_date, e.end_date, e.registration_deadline,
			e.max_teams, e.min_teams_per_match, e.max_teams_per_match,
			e.entry_fee, e.prize_pool, e.status, e.is_public, e.rules, e.banner_key, e.created_at,
			(SELECT COUNT(*) FROM event_registrations er WHERE er.event_id = e.id),
			(SELECT COUNT(*) FROM matches m WHERE m.event_id = e.id)
		FROM events e` + r.buildListWhere(filter, &args)

	query += " ORDER BY e.start_date DESC, e.created_at DESC"

	argID := len(args) + 1
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argID)
		args = append(args, filter.Limit)
		argID++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argID)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]models.Event, 0)
	for rows.Next() {
		var e models.Event
		var registrationCount, matchCount int
		if scanErr := rows.Scan(
			&e.ID, &e.Name, &e.Description, &e.SportID, &e.OrganizerID, &e.Venue,
			&e.StartDate, &e.EndDate, &e.RegistrationDeadline,
			&e.MaxTeams, &e.MinTeamsPerMatch, &e.MaxTeamsPerMatch,
			&e.EntryFee, &e.PrizePool, &e.Status, &e.IsPublic, &e.Rules, &e.BannerKey, &e.CreatedAt,
			&registrationCount, &matchCount,
		); scanErr != nil {
			return nil, scanErr
		}
		e.RegistrationCount = &registrationCount
		e.MatchCount = &matchCount
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *postgresEventRepository) Count(ctx context.Context, filter ListEventsFilter) (int, error) {
	args := []interface{}{}
	query := `SELECT COUNT(*) FROM events` + r.buildListWhere(filter, &args)

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *postgresEventRepository) ListRecentBySport(ctx context.Context, sportID, limit int) ([]models.Event, error) {
	query := `SELECT` + eventColumns + ` FROM events WHERE sport_id = $1 ORDER BY start_date DESC LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, sportID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]models.Event, 0)
	for rows.Next() {
		var e models.Event
		if scanErr := scanEvent(rows, &e); scanErr != nil {
			return nil, scanErr
		}
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *postgresEventRepository) Update(ctx context.Context, e *models.Event) error {
	query := `
		UPDATE events SET
			name = $1,
			description = $2,
			venue = $3,
			start_date = $4,
			end_date = $5,
			registration_deadline = $6,
			max_teams = $7,
			min_teams_per_match = $8,
			max_teams_per_match = $9,
			entry_fee = $10,
			prize_pool = $11,
			status = $12,
			is_public = $13,
			rules = $14
		WHERE id = $15`

	result, err := r.db.ExecContext(ctx, query,
		e.Name, e.Description, e.Venue,
		e.StartDate, e.EndDate, e.RegistrationDeadline,
		e.MaxTeams, e.MinTeamsPerMatch, e.MaxTeamsPerMatch,
		e.EntryFee, e.PrizePool, e.Status, e.IsPublic, e.Rules,
		e.ID,
	)
	if err != nil {
		return r.handleEventError(err)
	}
	return checkAffectedRows(result, ErrEventNotFound)
}

func (r *postgresEventRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.EventStatus) error {
	executor := r.getExecutor(exec)
	query := `UPDATE events SET status = $1 WHERE id = $2`
	result, err := executor.ExecContext(ctx, query, status, id)
	if err != nil {
		return r.handleEventError(err)
	}
	return checkAffectedRows(result, ErrEventNotFound)
}

func (r *postgresEventRepository) UpdateBannerKey(ctx context.Context, eventID int, bannerKey *string) error {
	query := `UPDATE events SET banner_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, bannerKey, eventID)
	if err != nil {
		return fmt.Errorf("failed to update event banner key: %w", err)
	}
	return checkAffectedRows(result, ErrEventNotFound)
}

func (r *postgresEventRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return r.handleEventError(err)
	}
	return checkAffectedRows(result, ErrEventNotFound)
}

// GetEventsForAutoStatusUpdate returns events whose wall-clock dates have moved
// past their current status. CANCELLED and COMPLETED are terminal.
func (r *postgresEventRepository) GetEventsForAutoStatusUpdate(ctx context.Context, currentTime time.Time) ([]*models.Event, error) {
	query := `SELECT` + eventColumns + `
		FROM events
		WHERE status NOT IN ($1, $2)
		AND (
			(status = $3 AND registration_deadline <= $4) OR
			(status = $5 AND start_date <= $4) OR
			(status = $6 AND end_date <= $4)
		)`
	args := []interface{}{
		models.EventStatusCompleted,          // $1
		models.EventStatusCancelled,          // $2
		models.EventStatusRegistrationOpen,   // $3
		currentTime,                          // $4
		models.EventStatusRegistrationClosed, // $5
		models.EventStatusOngoing,            // $6
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events for auto status update: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		var e models.Event
		if scanErr := scanEvent(rows, &e); scanErr != nil {
			return nil, fmt.Errorf("failed to scan event for auto status update: %w", scanErr)
		}
		events = append(events, &e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during event rows iteration for auto status update: %w", err)
	}
	return events, nil
}

func (r *postgresEventRepository) handleEventError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23503":
			switch pqErr.Constraint {
			case "events_sport_id_fkey":
				return ErrEventInvalidSport
			case "events_organizer_id_fkey":
				return ErrEventInvalidOrganizer
			default:
				return ErrEventInUse
			}
		}
	}
	return err
}
