package models

import "time"

// EventStatus mirrors the event_status ENUM in the database.
type EventStatus string

const (
	EventStatusUpcoming           EventStatus = "UPCOMING"
	EventStatusRegistrationOpen   EventStatus = "REGISTRATION_OPEN"
	EventStatusRegistrationClosed EventStatus = "REGISTRATION_CLOSED"
	EventStatusOngoing            EventStatus = "ONGOING"
	EventStatusCompleted          EventStatus = "COMPLETED"
	EventStatusCancelled          EventStatus = "CANCELLED"
)

type Event struct {
	ID                   int         `json:"id"`
	Name                 string      `json:"name"`
	Description          *string     `json:"description,omitempty"`
	SportID              int         `json:"sportId"`
	OrganizerID          int         `json:"organizerId"`
	Venue                string      `json:"venue"`
	StartDate            time.Time   `json:"startDate"`
	EndDate              time.Time   `json:"endDate"`
	RegistrationDeadline time.Time   `json:"registrationDeadline"`
	MaxTeams             int         `json:"maxTeams"`
	MinTeamsPerMatch     int         `json:"minTeamsPerMatch"`
	MaxTeamsPerMatch     int         `json:"maxTeamsPerMatch"`
	EntryFee             float64     `json:"entryFee"`
	PrizePool            *float64    `json:"prizePool,omitempty"`
	Status               EventStatus `json:"status"`
	IsPublic             bool        `json:"isPublic"`
	Rules                *string     `json:"rules,omitempty"`
	CreatedAt            time.Time   `json:"createdAt"`

	BannerKey *string `json:"-"`
	BannerURL *string `json:"banner,omitempty"`

	// Optional linked entities, populated by the service.
	Sport         *Sport              `json:"sport,omitempty"`
	Organizer     *PublicUser         `json:"organizer,omitempty"`
	Registrations []EventRegistration `json:"registrations,omitempty"`
	Matches       []Match             `json:"matches,omitempty"`
	Standings     []Standing          `json:"standings,omitempty"`

	// List counters, populated by the repository.
	RegistrationCount *int `json:"registrationCount,omitempty"`
	MatchCount        *int `json:"matchCount,omitempty"`
}

// RegistrationStatus mirrors the registration_status ENUM in the database.
type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "PENDING"
	RegistrationApproved RegistrationStatus = "APPROVED"
	RegistrationRejected RegistrationStatus = "REJECTED"
)

type EventRegistration struct {
	ID           int                `json:"id"`
	EventID      int                `json:"eventId"`
	TeamID       int                `json:"teamId"`
	Status       RegistrationStatus `json:"status"`
	RegisteredAt time.Time          `json:"registeredAt"`

	Event *Event `json:"event,omitempty"`
	Team  *Team  `json:"team,omitempty"`
}
