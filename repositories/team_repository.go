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
	ErrTeamNotFound          = errors.New("team not found")
	ErrTeamInvalidSport      = errors.New("invalid sport reference")
	ErrTeamInUse             = errors.New("team cannot be deleted as it is in use")
	ErrTeamMemberConflict    = errors.New("user is already a member of this team")
	ErrTeamMemberInvalidUser = errors.New("invalid user reference for team member")
)

type ListTeamsFilter struct {
	SportID *int
	Search  *string
}

type TeamRepository interface {
	Create(ctx context.Context, exec SQLExecutor, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context, filter ListTeamsFilter) ([]models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	UpdateLogoKey(ctx context.Context, teamID int, logoKey *string) error
	Delete(ctx context.Context, id int) error

	AddMember(ctx context.Context, exec SQLExecutor, member *models.TeamMember) error
	ListMembers(ctx context.Context, teamID int) ([]models.TeamMember, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamRepository) Create(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO teams (name, sport_id, logo_key, description, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		team.Name, team.SportID, team.LogoKey, team.Description, team.IsActive,
	).Scan(&team.ID, &team.CreatedAt)
	if err != nil {
		return r.handleTeamError(err)
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `
		SELECT id, name, sport_id, logo_key, description, is_active, created_at
		FROM teams
		WHERE id = $1`

	var team models.Team
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&team.ID, &team.Name, &team.SportID, &team.LogoKey, &team.Description, &team.IsActive, &team.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (r *postgresTeamRepository) List(ctx context.Context, filter ListTeamsFilter) ([]models.Team, error) {
	query := `
		SELECT
			t.id, t.name, t.sport_id, t.logo_key, t.description, t.is_active, t.created_at,
			(SELECT COUNT(*) FROM event_registrations er WHERE er.team_id = t.id),
			(SELECT COUNT(*) FROM matches m WHERE m.home_team_id = t.id OR m.away_team_id = t.id)
		FROM teams t
		WHERE t.is_active = TRUE`

	args := []interface{}{}
	argID := 1

	if filter.SportID != nil {
		query += fmt.Sprintf(" AND t.sport_id = $%d", argID)
		args = append(args, *filter.SportID)
		argID++
	}
	if filter.Search != nil {
		query += fmt.Sprintf(" AND t.name ILIKE $%d", argID)
		args = append(args, "%"+*filter.Search+"%")
		argID++
	}

	query += " ORDER BY t.name ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var team models.Team
		var registrationCount, matchCount int
		if scanErr := rows.Scan(
			&team.ID, &team.Name, &team.SportID, &team.LogoKey, &team.Description, &team.IsActive, &team.CreatedAt,
			&registrationCount, &matchCount,
		); scanErr != nil {
			return nil, scanErr
		}
		team.RegistrationCount = &registrationCount
		team.MatchCount = &matchCount
		teams = append(teams, team)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `
		UPDATE teams
		SET name = $1, description = $2, is_active = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, team.Name, team.Description, team.IsActive, team.ID)
	if err != nil {
		return r.handleTeamError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, teamID int, logoKey *string) error {
	query := `UPDATE teams SET logo_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, logoKey, teamID)
	if err != nil {
		return fmt.Errorf("failed to update team logo key: %w", err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM teams WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrTeamInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) AddMember(ctx context.Context, exec SQLExecutor, member *models.TeamMember) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO team_members (team_id, user_id, role, jersey_number, position)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, joined_at`

	err := executor.QueryRowContext(ctx, query,
		member.TeamID, member.UserID, member.Role, member.JerseyNumber, member.Position,
	).Scan(&member.ID, &member.JoinedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return ErrTeamMemberConflict
			case "23503":
				if pqErr.Constraint == "team_members_user_id_fkey" {
					return ErrTeamMemberInvalidUser
				}
				return ErrTeamNotFound
			}
		}
		return err
	}
	return nil
}

func (r *postgresTeamRepository) ListMembers(ctx context.Context, teamID int) ([]models.TeamMember, error) {
	query := `
		SELECT
			tm.id, tm.team_id, tm.user_id, tm.role, tm.jersey_number, tm.position, tm.joined_at,
			u.id, u.first_name, u.last_name, u.avatar_key
		FROM team_members tm
		JOIN users u ON u.id = tm.user_id
		WHERE tm.team_id = $1
		ORDER BY tm.joined_at ASC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]models.TeamMember, 0)
	for rows.Next() {
		var member models.TeamMember
		var user models.PublicUser
		if scanErr := rows.Scan(
			&member.ID, &member.TeamID, &member.UserID, &member.Role, &member.JerseyNumber, &member.Position, &member.JoinedAt,
			&user.ID, &user.FirstName, &user.LastName, &user.AvatarKey,
		); scanErr != nil {
			return nil, scanErr
		}
		member.User = &user
		members = append(members, member)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *postgresTeamRepository) handleTeamError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
		if pqErr.Constraint == "teams_sport_id_fkey" {
			return ErrTeamInvalidSport
		}
	}
	return err
}
