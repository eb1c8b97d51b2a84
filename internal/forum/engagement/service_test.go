package engagement_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paddockhq/paddock/internal/forum/engagement"
	"github.com/paddockhq/paddock/internal/platform/apperr"
)

// fakeRepository simulates the toggle semantics of the ledger in memory.
type fakeRepository struct {
	topicLikes   map[[2]int64]bool
	commentLikes map[[2]int64]bool
	calls        int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		topicLikes:   map[[2]int64]bool{},
		commentLikes: map[[2]int64]bool{},
	}
}

func toggle(ledger map[[2]int64]bool, targetID, userID int64) *engagement.LikeResult {
	key := [2]int64{targetID, userID}
	if ledger[key] {
		delete(ledger, key)
	} else {
		ledger[key] = true
	}

	likes := 0
	for k := range ledger {
		if k[0] == targetID {
			likes++
		}
	}
	return &engagement.LikeResult{Liked: ledger[key], Likes: likes}
}

func (r *fakeRepository) ToggleTopicLike(_ context.Context, topicID, userID int64) (*engagement.LikeResult, error) {
	r.calls++
	return toggle(r.topicLikes, topicID, userID), nil
}

func (r *fakeRepository) ToggleCommentLike(_ context.Context, commentID, userID int64) (*engagement.LikeResult, error) {
	r.calls++
	return toggle(r.commentLikes, commentID, userID), nil
}

func newService(repo engagement.Repository) *engagement.Service {
	return engagement.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestToggleTopicLike_Roundtrip(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	ctx := context.Background()

	// first toggle likes
	result, err := service.ToggleTopicLike(ctx, 10, 1)
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, 1, result.Likes)

	// second toggle by the same user unlikes, never double-counts
	result, err = service.ToggleTopicLike(ctx, 10, 1)
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, 0, result.Likes)

	// a different user is an independent ledger row
	result, err = service.ToggleTopicLike(ctx, 10, 2)
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, 1, result.Likes)
}

func TestToggleCommentLike_Roundtrip(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	ctx := context.Background()

	result, err := service.ToggleCommentLike(ctx, 5, 1)
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, 1, result.Likes)

	result, err = service.ToggleCommentLike(ctx, 5, 1)
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, 0, result.Likes)
}

func TestToggle_RejectsBeforeStorage(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	ctx := context.Background()

	tests := []struct {
		name     string
		run      func() error
		wantCode string
	}{
		{"zero_topic_id", func() error {
			_, err := service.ToggleTopicLike(ctx, 0, 1)
			return err
		}, "VALIDATION_ERROR"},
		{"negative_comment_id", func() error {
			_, err := service.ToggleCommentLike(ctx, -3, 1)
			return err
		}, "VALIDATION_ERROR"},
		{"anonymous_topic_like", func() error {
			_, err := service.ToggleTopicLike(ctx, 10, 0)
			return err
		}, "UNAUTHORIZED"},
		{"anonymous_comment_like", func() error {
			_, err := service.ToggleCommentLike(ctx, 10, 0)
			return err
		}, "UNAUTHORIZED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperr.As(err).Code)
		})
	}

	// no repository call was made for any rejected input
	assert.Equal(t, 0, repo.calls)
}
