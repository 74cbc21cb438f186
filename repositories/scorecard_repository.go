package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/muqabla/sportshub/models"
)

var (
	ErrScorecardNotFound     = errors.New("scorecard entry not found")
	ErrScorecardInvalidMatch = errors.New("invalid match reference for scorecard")
	ErrStatisticConflict     = errors.New("statistic for this player and match already exists")
	ErrStatisticInvalidRefs  = errors.New("invalid match or player reference for statistic")
)

// ScorecardRepository covers the two per-match detail tables: time-ordered
// scorecard entries and per-player statistics.
type ScorecardRepository interface {
	CreateEntry(ctx context.Context, entry *models.Scorecard) error
	ListByMatch(ctx context.Context, matchID int) ([]models.Scorecard, error)
	CreateStatistic(ctx context.Context, stat *models.MatchStatistic) error
	ListStatisticsByMatch(ctx context.Context, matchID int) ([]models.MatchStatistic, error)
}

type postgresScorecardRepository struct {
	db *sql.DB
}

func NewPostgresScorecardRepository(db *sql.DB) ScorecardRepository {
	return &postgresScorecardRepository{db: db}
}

func (r *postgresScorecardRepository) CreateEntry(ctx context.Context, entry *models.Scorecard) error {
	query := `
		INSERT INTO scorecards (match_id, user_id, minute, event_type, detail)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		entry.MatchID, entry.UserID, entry.Minute, entry.EventType, entry.Detail,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrScorecardInvalidMatch
		}
		return err
	}
	return nil
}

func (r *postgresScorecardRepository) ListByMatch(ctx context.Context, matchID int) ([]models.Scorecard, error) {
	query := `
		SELECT
			sc.id, sc.match_id, sc.user_id, sc.minute, sc.event_type, sc.detail, sc.created_at,
			u.id, u.first_name, u.last_name
		FROM scorecards sc
		LEFT JOIN users u ON u.id = sc.user_id
		WHERE sc.match_id = $1
		ORDER BY sc.minute ASC, sc.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.Scorecard, 0)
	for rows.Next() {
		var entry models.Scorecard
		var userID sql.NullInt64
		var firstName, lastName sql.NullString
		if scanErr := rows.Scan(
			&entry.ID, &entry.MatchID, &entry.UserID, &entry.Minute, &entry.EventType, &entry.Detail, &entry.CreatedAt,
			&userID, &firstName, &lastName,
		); scanErr != nil {
			return nil, scanErr
		}
		if userID.Valid {
			entry.User = &models.PublicUser{
				ID:        int(userID.Int64),
				FirstName: firstName.String,
				LastName:  lastName.String,
			}
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *postgresScorecardRepository) CreateStatistic(ctx context.Context, stat *models.MatchStatistic) error {
	query := `
		INSERT INTO match_statistics (match_id, member_id, goals, assists, yellow_cards, red_cards, minutes_played)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		stat.MatchID, stat.MemberID, stat.Goals, stat.Assists, stat.YellowCards, stat.RedCards, stat.MinutesPlayed,
	).Scan(&stat.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return ErrStatisticConflict
			case "23503":
				return ErrStatisticInvalidRefs
			}
		}
		return err
	}
	return nil
}

func (r *postgresScorecardRepository) ListStatisticsByMatch(ctx context.Context, matchID int) ([]models.MatchStatistic, error) {
	query := `
		SELECT
			ms.id, ms.match_id, ms.member_id, ms.goals, ms.assists, ms.yellow_cards, ms.red_cards, ms.minutes_played,
			tm.id, tm.team_id, tm.user_id, tm.role, tm.jersey_number, tm.position, tm.joined_at,
			u.id, u.first_name, u.last_name, u.avatar_key
		FROM match_statistics ms
		JOIN team_members tm ON tm.id = ms.member_id
		JOIN users u ON u.id = tm.user_id
		WHERE ms.match_id = $1
		ORDER BY ms.goals DESC, ms.assists DESC`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]models.MatchStatistic, 0)
	for rows.Next() {
		var stat models.MatchStatistic
		var member models.TeamMember
		var user models.PublicUser
		if scanErr := rows.Scan(
			&stat.ID, &stat.MatchID, &stat.MemberID, &stat.Goals, &stat.Assists, &stat.YellowCards, &stat.RedCards, &stat.MinutesPlayed,
			&member.ID, &member.TeamID, &member.UserID, &member.Role, &member.JerseyNumber, &member.Position, &member.JoinedAt,
			&user.ID, &user.FirstName, &user.LastName, &user.AvatarKey,
		); scanErr != nil {
			return nil, scanErr
		}
		member.User = &user
		stat.Member = &member
		stats = append(stats, stat)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}
