// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity in the system: a registered principal capable of
// authenticating and owning blog, portfolio and chat data.
type User struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the user. Immutable once created.
	UserName     string    // Unique display/login name.
	Email        string    // Unique login email address.
	PasswordHash string    // bcrypt hash of the password. Never serialized out of the persistence layer.
	Roles        Roles     // Role strings granted to this user (e.g. "user", "admin").
	Status       string    // Free-form account status (e.g. "ACTIVE").
	IsVerified   bool      // Whether the email address has been verified.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}

// PublicProjection is the outward-facing view of a User. The password hash is
// deliberately absent so handlers cannot leak it.
type PublicProjection struct {
	ID         uuid.UUID `json:"id"`
	UserName   string    `json:"userName"`
	Email      string    `json:"email"`
	Roles      []string  `json:"role"`
	Status     string    `json:"status"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Public returns the projection of the user safe for API responses.
func (u *User) Public() *PublicProjection {
	return &PublicProjection{
		ID:         u.ID,
		UserName:   u.UserName,
		Email:      u.Email,
		Roles:      u.Roles.ToStrings(),
		Status:     u.Status,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
