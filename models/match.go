package models

import "time"

// MatchStatus mirrors the match_status ENUM in the database.
type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "SCHEDULED"
	MatchStatusLive      MatchStatus = "LIVE"
	MatchStatusCompleted MatchStatus = "COMPLETED"
	MatchStatusPostponed MatchStatus = "POSTPONED"
	MatchStatusCancelled MatchStatus = "CANCELLED"
)

type Match struct {
	ID          int         `json:"id"`
	EventID     int         `json:"eventId"`
	HomeTeamID  int         `json:"homeTeamId"`
	AwayTeamID  int         `json:"awayTeamId"`
	RefereeID   *int        `json:"refereeId,omitempty"`
	Venue       string      `json:"venue"`
	ScheduledAt time.Time   `json:"scheduledAt"`
	StartedAt   *time.Time  `json:"startedAt,omitempty"`
	EndedAt     *time.Time  `json:"endedAt,omitempty"`
	Status      MatchStatus `json:"status"`
	HomeScore   *int        `json:"homeScore,omitempty"`
	AwayScore   *int        `json:"awayScore,omitempty"`
	Round       *int        `json:"round,omitempty"`
	MatchNumber *int        `json:"matchNumber,omitempty"`
	Notes       *string     `json:"notes,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`

	// Optional linked entities, populated by the service.
	Event      *Event           `json:"event,omitempty"`
	HomeTeam   *Team            `json:"homeTeam,omitempty"`
	AwayTeam   *Team            `json:"awayTeam,omitempty"`
	Referee    *PublicUser      `json:"referee,omitempty"`
	Scorecards []Scorecard      `json:"scorecards,omitempty"`
	Statistics []MatchStatistic `json:"statistics,omitempty"`

	// List counters, populated by the repository.
	ScorecardCount *int `json:"scorecardCount,omitempty"`
	StatisticCount *int `json:"statisticCount,omitempty"`
}

// Scorecard is a single time-ordered event inside a match (goal, card, note).
type Scorecard struct {
	ID        int       `json:"id"`
	MatchID   int       `json:"matchId"`
	UserID    *int      `json:"userId,omitempty"`
	Minute    int       `json:"minute"`
	EventType string    `json:"eventType"`
	Detail    *string   `json:"detail,omitempty"`
	CreatedAt time.Time `json:"createdAt"`

	User *PublicUser `json:"user,omitempty"`
}

// MatchStatistic is a per-player aggregate for one match.
type MatchStatistic struct {
	ID            int `json:"id"`
	MatchID       int `json:"matchId"`
	MemberID      int `json:"memberId"`
	Goals         int `json:"goals"`
	Assists       int `json:"assists"`
	YellowCards   int `json:"yellowCards"`
	RedCards      int `json:"redCards"`
	MinutesPlayed int `json:"minutesPlayed"`

	Member *TeamMember `json:"player,omitempty"`
}
