// Copyright (c) 2026 Paddock. All rights reserved.

package auth

import (
	"context"

	"github.com/paddockhq/paddock/internal/platform/sec"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id int64) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		Create persists a brand-new user account and assigns its ID.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		UpdateProfile persists changes to mutable profile fields.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	UpdateProfile(context context.Context, user *User) error

	/*
		UpdateRole replaces the account's role.

		Parameters:
		  - context: context.Context
		  - userID: int64
		  - role: sec.UserRole

		Returns:
		  - error: Persistence failures
	*/
	UpdateRole(context context.Context, userID int64, role sec.UserRole) error

	/*
		UpdateStatus replaces the account's moderation status.

		Parameters:
		  - context: context.Context
		  - userID: int64
		  - status: sec.UserStatus

		Returns:
		  - error: Persistence failures
	*/
	UpdateStatus(context context.Context, userID int64, status sec.UserStatus) error

	/*
		RecordLogin stamps last_login and increments the login counter.

		Parameters:
		  - context: context.Context
		  - userID: int64

		Returns:
		  - error: Persistence failures
	*/
	RecordLogin(context context.Context, userID int64) error

	/*
		Stats returns the contribution counters for the account.

		Parameters:
		  - context: context.Context
		  - userID: int64

		Returns:
		  - *Stats: Aggregated topic, comment and like counters
		  - error: Database retrieval failures
	*/
	Stats(context context.Context, userID int64) (*Stats, error)
}
