// Copyright (c) 2026 Paddock. All rights reserved.

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
//
// Roles are a closed enumeration validated at the boundary (registration,
// admin role updates) — never accepted as free-form strings.
type UserRole string

const (
	// Unrestricted system access
	RoleAdmin UserRole = "admin"

	// Can manage community content and moderate comments/users
	RoleModerator UserRole = "moderator"

	// Default role for standard registered users
	RoleUser UserRole = "user"
)

// ValidRole reports whether the given string is a known role value.
func ValidRole(s string) bool {
	switch UserRole(s) {
	case RoleAdmin, RoleModerator, RoleUser:
		return true
	}
	return false
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleModerator:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}

// # Account Status

// UserStatus represents the lifecycle state of an account.
//
// Accounts are never hard-deleted; status transitions model removal.
type UserStatus string

const (
	// Normal, fully functional account
	StatusActive UserStatus = "active"

	// Permanently locked out; rejected live at the access guard
	StatusBanned UserStatus = "banned"

	// Temporarily restricted by an administrator
	StatusSuspended UserStatus = "suspended"
)

// ValidStatus reports whether the given string is a known status value.
func ValidStatus(s string) bool {
	switch UserStatus(s) {
	case StatusActive, StatusBanned, StatusSuspended:
		return true
	}
	return false
}
