// Package entity contains the core business objects of the project.
package entity

import "strings"

// Role represents a capability granted to a user.
type Role string

const (
	// RoleUser indicates a regular platform user.
	RoleUser Role = "user"
	// RoleAdmin indicates an administrative user.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Has reports whether the role set contains the given role.
// Matching is case-insensitive, mirroring how role strings were historically
// compared at call sites.
func (rs Roles) Has(role Role) bool {
	for _, r := range rs {
		if strings.EqualFold(r.String(), role.String()) {
			return true
		}
	}

	return false
}

// ToStrings converts Roles to []string for serialization.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}

// RolesFromStrings converts []string to Roles, dropping blank entries.
func RolesFromStrings(ss []string) Roles {
	result := make(Roles, 0, len(ss))
	for _, s := range ss {
		if strings.TrimSpace(s) == "" {
			continue
		}
		result = append(result, Role(s))
	}

	return result
}
