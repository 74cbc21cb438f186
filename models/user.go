package models

import "time"

// UserRole mirrors the user_role ENUM in the database.
type UserRole string

const (
	RoleUser      UserRole = "USER"
	RoleOrganizer UserRole = "ORGANIZER"
	RoleAdmin     UserRole = "ADMIN"
)

type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Phone        *string   `json:"phone,omitempty"`
	Role         UserRole  `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`

	AvatarKey *string `json:"-"`
	AvatarURL *string `json:"avatar,omitempty"`

	// List counters, populated by the repository.
	OrganizedEventCount *int `json:"organizedEventCount,omitempty"`
	TeamMembershipCount *int `json:"teamMembershipCount,omitempty"`
}

// PublicUser is the subset of user fields safe to embed in other payloads.
type PublicUser struct {
	ID        int     `json:"id"`
	Email     string  `json:"email,omitempty"`
	Username  string  `json:"username,omitempty"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	AvatarKey *string `json:"-"`
	AvatarURL *string `json:"avatar,omitempty"`
}
