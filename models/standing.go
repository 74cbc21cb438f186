package models

import "time"

// Standing is a points-table row for one team within one event.
type Standing struct {
	ID             int       `json:"id"`
	EventID        int       `json:"eventId"`
	TeamID         int       `json:"teamId"`
	Position       int       `json:"position"`
	Played         int       `json:"played"`
	Won            int       `json:"won"`
	Drawn          int       `json:"drawn"`
	Lost           int       `json:"lost"`
	GoalsFor       int       `json:"goalsFor"`
	GoalsAgainst   int       `json:"goalsAgainst"`
	GoalDifference int       `json:"goalDifference"`
	Points         int       `json:"points"`
	UpdatedAt      time.Time `json:"updatedAt"`

	Team *Team `json:"team,omitempty"`
}
