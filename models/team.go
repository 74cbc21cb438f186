package models

import "time"

type Team struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	SportID     int       `json:"sportId"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`

	LogoKey *string `json:"-"`
	LogoURL *string `json:"logo,omitempty"`

	// Optional linked entities, populated by the service.
	Sport         *Sport              `json:"sport,omitempty"`
	Members       []TeamMember        `json:"members,omitempty"`
	Registrations []EventRegistration `json:"registrations,omitempty"`
	HomeMatches   []Match             `json:"homeMatches,omitempty"`
	AwayMatches   []Match             `json:"awayMatches,omitempty"`

	// List counters, populated by the repository.
	RegistrationCount *int `json:"registrationCount,omitempty"`
	MatchCount        *int `json:"matchCount,omitempty"`
}

// TeamMemberRole mirrors the team_member_role ENUM in the database.
type TeamMemberRole string

const (
	MemberRolePlayer  TeamMemberRole = "PLAYER"
	MemberRoleCaptain TeamMemberRole = "CAPTAIN"
	MemberRoleCoach   TeamMemberRole = "COACH"
)

type TeamMember struct {
	ID           int            `json:"id"`
	TeamID       int            `json:"teamId"`
	UserID       int            `json:"userId"`
	Role         TeamMemberRole `json:"role"`
	JerseyNumber *int           `json:"jerseyNumber,omitempty"`
	Position     *string        `json:"position,omitempty"`
	JoinedAt     time.Time      `json:"joinedAt"`

	User *PublicUser `json:"user,omitempty"`
}
