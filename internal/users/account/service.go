// Copyright (c) 2026 Paddock. All rights reserved.

package account

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/paddockhq/paddock/internal/users/auth"
	"github.com/paddockhq/paddock/pkg/pointer"
)

// # Service Layer

// Service orchestrates business logic for profile management and statistics.
type Service struct {
	userRepository auth.UserRepository
	logger         *slog.Logger
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(userRepo auth.UserRepository, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		logger:         logger,
	}
}

// # Profile Management

// UpdateProfileInput defines the mutable subset of user profile fields.
type UpdateProfileInput struct {
	FavoriteTeam   *string
	FavoriteDriver *string
	AvatarURL      *string
}

/*
UpdateProfile applies a partial set of changes to a user's account metadata.

Description: Fetches the existing user state, overrides provided fields, and
synchronizes the change to persistent storage.

Parameters:
  - context: context.Context
  - userID: int64
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated user profile
  - error: Update or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID int64, input UpdateProfileInput) (*auth.User, error) {

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	// Apply delta updates, keeping current values for absent fields
	user.FavoriteTeam = pointer.Fallback(input.FavoriteTeam, user.FavoriteTeam)
	user.FavoriteDriver = pointer.Fallback(input.FavoriteDriver, user.FavoriteDriver)
	user.AvatarURL = pointer.Fallback(input.AvatarURL, user.AvatarURL)

	// Persist changes
	if err := service.userRepository.UpdateProfile(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", strconv.FormatInt(userID, 10)))

	return user, nil
}

// # Statistics

/*
GetStats returns the contribution counters for a user account.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - *auth.Stats: Topic, comment and received-like counters
  - error: Lookup or execution failures
*/
func (service *Service) GetStats(context context.Context, userID int64) (*auth.Stats, error) {
	// Resolve first so a missing account yields NotFound, not zeroed counters.
	if _, err := service.userRepository.FindByID(context, userID); err != nil {
		return nil, err
	}

	stats, err := service.userRepository.Stats(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_stats_failed: %w", err)
	}

	return stats, nil
}

// # Discovery

/*
GetPublicProfile returns the sanitized profile of any member.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - *PublicProfile: Sanitized projection with contribution stats
  - error: NotFound or execution failures
*/
func (service *Service) GetPublicProfile(context context.Context, userID int64) (*PublicProfile, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	// Stats are decoration on the public page. Serve the profile even if the
	// counters temporarily cannot be computed.
	stats, err := service.userRepository.Stats(context, userID)
	if err != nil {
		stats = nil
	}

	return NewPublicProfile(user, stats), nil
}
