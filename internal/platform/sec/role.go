// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to a principal.
//
// The two partition roles double as the lookup key into the principal store:
// students and instructors live in separate collections.
type UserRole string

const (
	// Unrestricted portal administration. Never minted into a token.
	RoleAdmin UserRole = "admin"

	// Instructors manage courses and see the administration area
	RoleInstructor UserRole = "enseignant"

	// Default role for enrolled students
	RoleStudent UserRole = "etudiant"
)

// PartitionRoles lists the roles accepted at login and inside tokens.
var PartitionRoles = []string{string(RoleStudent), string(RoleInstructor)}

// ParseRole converts raw input into a partition role.
// It reports false for anything other than etudiant or enseignant.
func ParseRole(raw string) (UserRole, bool) {
	role := UserRole(raw)
	if !role.IsPartition() {
		return "", false
	}
	return role, true
}

// IsPartition reports whether the role selects a principal collection.
func (r UserRole) IsPartition() bool {
	return r == RoleStudent || r == RoleInstructor
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() > 0 && r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 30
	case RoleInstructor:
		return 20
	case RoleStudent:
		return 10
	default:
		return 0
	}
}
