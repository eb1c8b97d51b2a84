// Copyright (c) 2026 Paddock. All rights reserved.

package account_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paddockhq/paddock/internal/platform/apperr"
	"github.com/paddockhq/paddock/internal/platform/sec"
	"github.com/paddockhq/paddock/internal/users/account"
	"github.com/paddockhq/paddock/internal/users/auth"
	"github.com/paddockhq/paddock/pkg/pointer"
)

// # Test Doubles

// stubUserRepository implements the subset of auth.UserRepository the account
// service exercises; the remaining methods satisfy the interface only.
type stubUserRepository struct {
	users    map[int64]*auth.User
	stats    map[int64]*auth.Stats
	statsErr error
	saved    *auth.User
}

func (r *stubUserRepository) FindByID(_ context.Context, id int64) (*auth.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperr.NotFound("User not found")
	}
	return user, nil
}

func (r *stubUserRepository) UpdateProfile(_ context.Context, user *auth.User) error {
	r.saved = user
	return nil
}

func (r *stubUserRepository) Stats(_ context.Context, id int64) (*auth.Stats, error) {
	if r.statsErr != nil {
		return nil, r.statsErr
	}
	return r.stats[id], nil
}

func (r *stubUserRepository) FindByEmail(context.Context, string) (*auth.User, error) {
	return nil, apperr.NotFound("User not found")
}

func (r *stubUserRepository) FindByUsername(context.Context, string) (*auth.User, error) {
	return nil, apperr.NotFound("User not found")
}

func (r *stubUserRepository) Create(context.Context, *auth.User) error     { return nil }
func (r *stubUserRepository) RecordLogin(context.Context, int64) error     { return nil }
func (r *stubUserRepository) UpdateRole(context.Context, int64, sec.UserRole) error {
	return nil
}
func (r *stubUserRepository) UpdateStatus(context.Context, int64, sec.UserStatus) error {
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// # Profile Updates

/*
TestService_UpdateProfile verifies the partial-update semantics: provided
fields replace, absent fields survive.
*/
func TestService_UpdateProfile(t *testing.T) {
	repo := &stubUserRepository{
		users: map[int64]*auth.User{
			1: {ID: 1, Username: "lewis", FavoriteTeam: "Ferrari", FavoriteDriver: "Hamilton", AvatarURL: "https://cdn/a.png"},
		},
	}
	service := account.NewService(repo, quietLogger())

	updated, err := service.UpdateProfile(context.Background(), 1, account.UpdateProfileInput{
		FavoriteTeam: pointer.To("Mercedes"),
	})
	require.NoError(t, err)

	// 1. Provided field replaced
	assert.Equal(t, "Mercedes", updated.FavoriteTeam)

	// 2. Absent fields untouched
	assert.Equal(t, "Hamilton", updated.FavoriteDriver)
	assert.Equal(t, "https://cdn/a.png", updated.AvatarURL)

	// 3. The change reached storage
	require.NotNil(t, repo.saved)
	assert.Equal(t, "Mercedes", repo.saved.FavoriteTeam)
}

/*
TestService_UpdateProfile_ClearsField verifies that an explicit empty string
clears a field, which is distinct from omitting it.
*/
func TestService_UpdateProfile_ClearsField(t *testing.T) {
	repo := &stubUserRepository{
		users: map[int64]*auth.User{
			1: {ID: 1, Username: "lewis", AvatarURL: "https://cdn/a.png"},
		},
	}
	service := account.NewService(repo, quietLogger())

	updated, err := service.UpdateProfile(context.Background(), 1, account.UpdateProfileInput{
		AvatarURL: pointer.To(""),
	})
	require.NoError(t, err)
	assert.Empty(t, updated.AvatarURL)
}

/*
TestService_UpdateProfile_MissingUser verifies the rejection of updates for
accounts that no longer exist.
*/
func TestService_UpdateProfile_MissingUser(t *testing.T) {
	repo := &stubUserRepository{users: map[int64]*auth.User{}}
	service := account.NewService(repo, quietLogger())

	_, err := service.UpdateProfile(context.Background(), 42, account.UpdateProfileInput{})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

// # Statistics

/*
TestService_GetStats verifies that a missing account yields NotFound rather
than zeroed counters.
*/
func TestService_GetStats(t *testing.T) {
	repo := &stubUserRepository{
		users: map[int64]*auth.User{
			1: {ID: 1, Username: "lewis"},
		},
		stats: map[int64]*auth.Stats{
			1: {TopicsCount: 3, CommentsCount: 8, LikesCount: 21},
		},
	}
	service := account.NewService(repo, quietLogger())

	stats, err := service.GetStats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TopicsCount)
	assert.Equal(t, 8, stats.CommentsCount)
	assert.Equal(t, 21, stats.LikesCount)

	_, err = service.GetStats(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

// # Discovery

/*
TestService_GetPublicProfile verifies the sanitized projection and that a
stats failure degrades gracefully instead of failing the profile read.
*/
func TestService_GetPublicProfile(t *testing.T) {
	repo := &stubUserRepository{
		users: map[int64]*auth.User{
			1: {ID: 1, Username: "lewis", Email: "lewis@example.com", FavoriteTeam: "Ferrari"},
		},
		stats: map[int64]*auth.Stats{
			1: {TopicsCount: 3},
		},
	}
	service := account.NewService(repo, quietLogger())

	profile, err := service.GetPublicProfile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "lewis", profile.Username)
	assert.Equal(t, "Ferrari", profile.FavoriteTeam)
	require.NotNil(t, profile.Stats)
	assert.Equal(t, 3, profile.Stats.TopicsCount)

	// Stats outage: profile still resolves, counters omitted
	repo.statsErr = assert.AnError
	profile, err = service.GetPublicProfile(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, profile.Stats)
}
