// Copyright (c) 2026 Paddock. All rights reserved.

/*
Package account manages the authenticated user's own profile.

It covers partial profile updates, contribution statistics, and public
profile discovery. Account data lives in the auth domain's repository; this
package orchestrates the use cases on top of it.
*/
package account

import (
	"time"

	"github.com/paddockhq/paddock/internal/users/auth"
)

// PublicProfile is the sanitized projection of an account exposed to
// other members.
type PublicProfile struct {
	ID             int64       `json:"id"`
	Username       string      `json:"username"`
	FavoriteTeam   string      `json:"favorite_team,omitempty"`
	FavoriteDriver string      `json:"favorite_driver,omitempty"`
	AvatarURL      string      `json:"avatar_url,omitempty"`
	Role           string      `json:"role"`
	CreatedAt      time.Time   `json:"created_at"`
	Stats          *auth.Stats `json:"stats,omitempty"`
}

// NewPublicProfile strips the private fields from a full account entity.
func NewPublicProfile(user *auth.User, stats *auth.Stats) *PublicProfile {
	return &PublicProfile{
		ID:             user.ID,
		Username:       user.Username,
		FavoriteTeam:   user.FavoriteTeam,
		FavoriteDriver: user.FavoriteDriver,
		AvatarURL:      user.AvatarURL,
		Role:           string(user.Role),
		CreatedAt:      user.CreatedAt,
		Stats:          stats,
	}
}
