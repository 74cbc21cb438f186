package models

import "time"

// Sport represents an entry in the sports catalog.
type Sport struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Icon        *string   `json:"icon,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`

	// List counters, populated by the repository.
	EventCount *int `json:"eventCount,omitempty"`
	TeamCount  *int `json:"teamCount,omitempty"`

	// Optional linked entities, populated by the service.
	Events []Event `json:"events,omitempty"`
	Teams  []Team  `json:"teams,omitempty"`
}
