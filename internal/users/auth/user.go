// Copyright (c) 2026 Paddock. All rights reserved.

/*
Package auth implements the user identity and access layer.

It defines the core domain entity (User) and the logic for registration,
login, and live identity resolution for the access guard.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/paddockhq/paddock/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Paddock forum.
type User struct {
	ID             int64          `json:"id"`
	Username       string         `json:"username"`
	Email          string         `json:"email"`
	PasswordHash   string         `json:"-"`
	FavoriteTeam   string         `json:"favorite_team,omitempty"`
	FavoriteDriver string         `json:"favorite_driver,omitempty"`
	AvatarURL      string         `json:"avatar_url,omitempty"`
	Role           sec.UserRole   `json:"role"`
	Status         sec.UserStatus `json:"status"`
	LastLogin      *time.Time     `json:"last_login,omitempty"`
	LoginCount     int            `json:"login_count"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Identity maps the user to the per-request identity consumed by the
// access guard and the role gate.
func (u *User) Identity() *sec.Identity {
	return &sec.Identity{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
		Status:   u.Status,
	}
}

// Stats aggregates a user's contribution counters.
type Stats struct {
	TopicsCount   int `json:"topics_count"`
	CommentsCount int `json:"comments_count"`
	LikesCount    int `json:"likes_count"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername       = "username"
	FieldEmail          = "email"
	FieldPassword       = "password"
	FieldLogin          = "login"
	FieldFavoriteTeam   = "favorite_team"
	FieldFavoriteDriver = "favorite_driver"
	FieldAvatarURL      = "avatar_url"
	FieldAccessToken    = "token"
	FieldUser           = "user"
)
