// Copyright (c) 2026 Paddock. All rights reserved.

package sec

// Identity is the resolved per-request user identity attached to the
// request context by the access guard.
//
// # Freshness
//
// Unlike token claims, an Identity is always backed by a store lookup made
// during the current request, so Role and Status reflect the live account
// state rather than the state at token issuance.
type Identity struct {
	ID       int64      `json:"id"`
	Username string     `json:"username"`
	Role     UserRole   `json:"role"`
	Status   UserStatus `json:"status"`
}

// IsStaff reports whether the identity may exercise moderation powers.
func (i *Identity) IsStaff() bool {
	return i.Role == RoleAdmin || i.Role == RoleModerator
}
