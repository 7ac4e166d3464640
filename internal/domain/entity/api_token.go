// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// APIToken is a quota-metered bearer credential for third-party or service
// callers, independent of the user JWT system. It gates and meters calls made
// by registered apps.
type APIToken struct {
	ID         uuid.UUID // The unique ID for this token record.
	Name       string    // Display name of the consuming application.
	Token      string    // The unique bearer string presented by the caller.
	Quota      int       // Ceiling on total successful calls.
	UsageCount int       // Calls consumed so far. Monotonically non-decreasing.
	IsActive   bool      // Administrative kill switch.
	ExpiredAt  time.Time // Hard expiry; the token is unusable from this instant on.
	Note       string    // Free-text administrative note.
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Usable reports whether the token may authorize a call right now.
// A token whose expiry equals "now" is already expired.
func (t *APIToken) Usable(now time.Time) bool {
	return t.IsActive && t.ExpiredAt.After(now) && t.UsageCount < t.Quota
}
