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
	ErrUserNotFound         = errors.New("user not found")
	ErrUserEmailConflict    = errors.New("user email conflict")
	ErrUserUsernameConflict = errors.New("user username conflict")
)

type ListUsersFilter struct {
	Role   *models.UserRole
	Search *string
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	List(ctx context.Context, filter ListUsersFilter) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateAvatarKey(ctx context.Context, userID int, avatarKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, username, password_hash, first_name, last_name, phone, role, avatar_key, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.Username, user.PasswordHash,
		user.FirstName, user.LastName, user.Phone, user.Role, user.AvatarKey, user.IsActive,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return translateUserError(err)
	}
	return nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT id, email, username, password_hash, first_name, last_name, phone, role, avatar_key, is_active, created_at
		FROM users
		WHERE id = $1`

	var user models.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Username, &user.PasswordHash,
		&user.FirstName, &user.LastName, &user.Phone, &user.Role,
		&user.AvatarKey, &user.IsActive, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *postgresUserRepository) List(ctx context.Context, filter ListUsersFilter) ([]models.User, error) {
	query := `
		SELECT
			u.id, u.email, u.username, u.password_hash, u.first_name, u.last_name, u.phone, u.role,
			u.avatar_key, u.is_active, u.created_at,
			(SELECT COUNT(*) FROM events e WHERE e.organizer_id = u.id),
			(SELECT COUNT(*) FROM team_members tm WHERE tm.user_id = u.id)
		FROM users u
		WHERE u.is_active = TRUE`

	args := []interface{}{}
	argID := 1

	if filter.Role != nil {
		query += fmt.Sprintf(" AND u.role = $%d", argID)
		args = append(args, *filter.Role)
		argID++
	}
	if filter.Search != nil {
		query += fmt.Sprintf(
			" AND (u.email ILIKE $%d OR u.username ILIKE $%d OR u.first_name ILIKE $%d OR u.last_name ILIKE $%d)",
			argID, argID, argID, argID)
		args = append(args, "%"+*filter.Search+"%")
		argID++
	}

	query += " ORDER BY u.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		var organizedCount, membershipCount int
		if scanErr := rows.Scan(
			&user.ID, &user.Email, &user.Username, &user.PasswordHash,
			&user.FirstName, &user.LastName, &user.Phone, &user.Role,
			&user.AvatarKey, &user.IsActive, &user.CreatedAt,
			&organizedCount, &membershipCount,
		); scanErr != nil {
			return nil, scanErr
		}
		user.OrganizedEventCount = &organizedCount
		user.TeamMembershipCount = &membershipCount
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *postgresUserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET email = $1, username = $2, first_name = $3, last_name = $4, phone = $5, role = $6, is_active = $7
		WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query,
		user.Email, user.Username, user.FirstName, user.LastName, user.Phone, user.Role, user.IsActive,
		user.ID,
	)
	if err != nil {
		return translateUserError(err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) UpdateAvatarKey(ctx context.Context, userID int, avatarKey *string) error {
	query := `UPDATE users SET avatar_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, avatarKey, userID)
	if err != nil {
		return fmt.Errorf("failed to update user avatar key: %w", err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM users WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func translateUserError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		switch pqErr.Constraint {
		case "users_email_key":
			return ErrUserEmailConflict
		case "users_username_key":
			return ErrUserUsernameConflict
		}
	}
	return err
}
