package topic_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paddockhq/paddock/internal/forum/topic"
	"github.com/paddockhq/paddock/internal/platform/apperr"
	"github.com/paddockhq/paddock/internal/platform/sec"
)

type fakeRepository struct {
	topics   map[int64]*topic.Topic
	nextID   int64
	viewErr  error
	deleted  []int64
	viewHits []int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{topics: map[int64]*topic.Topic{}, nextID: 1}
}

func (r *fakeRepository) seed(t *topic.Topic) *topic.Topic {
	t.ID = r.nextID
	r.nextID++
	r.topics[t.ID] = t
	return t
}

func (r *fakeRepository) ListTopics(_ context.Context, _ topic.Filter, _, _ int) ([]*topic.Topic, int, error) {
	list := make([]*topic.Topic, 0, len(r.topics))
	for _, t := range r.topics {
		list = append(list, t)
	}
	return list, len(list), nil
}

func (r *fakeRepository) GetTopicByID(_ context.Context, id int64) (*topic.Topic, error) {
	t, ok := r.topics[id]
	if !ok {
		return nil, apperr.NotFound("Topic not found")
	}
	return t, nil
}

func (r *fakeRepository) IncrementViews(_ context.Context, id int64) error {
	if r.viewErr != nil {
		return r.viewErr
	}
	r.viewHits = append(r.viewHits, id)
	r.topics[id].Views++
	return nil
}

func (r *fakeRepository) CreateTopic(_ context.Context, t *topic.Topic) error {
	t.ID = r.nextID
	r.nextID++
	r.topics[t.ID] = t
	return nil
}

func (r *fakeRepository) UpdateTopic(_ context.Context, t *topic.Topic) error {
	r.topics[t.ID] = t
	return nil
}

func (r *fakeRepository) DeleteTopic(_ context.Context, id int64) error {
	delete(r.topics, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeRepository) SetPinned(_ context.Context, id int64, pinned bool) error {
	t, ok := r.topics[id]
	if !ok {
		return apperr.NotFound("Topic not found")
	}
	t.IsPinned = pinned
	return nil
}

func (r *fakeRepository) SetLocked(_ context.Context, id int64, locked bool) error {
	t, ok := r.topics[id]
	if !ok {
		return apperr.NotFound("Topic not found")
	}
	t.IsLocked = locked
	return nil
}

func newService(repo topic.Repository) *topic.Service {
	return topic.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func member(id int64) *sec.Identity {
	return &sec.Identity{ID: id, Role: sec.RoleUser, Status: sec.StatusActive}
}

func moderator(id int64) *sec.Identity {
	return &sec.Identity{ID: id, Role: sec.RoleModerator, Status: sec.StatusActive}
}

func TestGetTopic_CountsView(t *testing.T) {
	repo := newFakeRepository()
	seeded := repo.seed(&topic.Topic{Title: "Monza setups", UserID: 1, Views: 7})
	service := newService(repo)

	got, err := service.GetTopic(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Views)
	assert.Equal(t, []int64{seeded.ID}, repo.viewHits)
}

func TestGetTopic_ViewBumpFailureIsSwallowed(t *testing.T) {
	repo := newFakeRepository()
	seeded := repo.seed(&topic.Topic{Title: "Monza setups", UserID: 1, Views: 7})
	repo.viewErr = assert.AnError
	service := newService(repo)

	got, err := service.GetTopic(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Views)
}

func TestCreateTopic_NormalizesTags(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	actor := member(1)
	actor.Username = "fernando"

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil_tags", nil, []string{}},
		{"trims_whitespace", []string{" quali ", "strategy"}, []string{"quali", "strategy"}},
		{"drops_empties", []string{"", "  ", "tyres"}, []string{"tyres"}},
		{"all_empty", []string{"", " "}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := service.CreateTopic(context.Background(), actor, topic.CreateInput{
				Title:   "Race thread",
				Content: "Lights out and away we go",
				Tags:    tt.in,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, created.Tags)
			assert.Equal(t, actor.ID, created.UserID)
			assert.Equal(t, "fernando", created.AuthorUsername)
		})
	}
}

func TestUpdateTopic_Ownership(t *testing.T) {
	newTitle := "Updated title"

	tests := []struct {
		name     string
		actor    *sec.Identity
		wantCode string
	}{
		{"owner_allowed", member(1), ""},
		{"staff_allowed", moderator(99), ""},
		{"stranger_forbidden", member(2), "FORBIDDEN"},
		{"anonymous_unauthorized", nil, "UNAUTHORIZED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			seeded := repo.seed(&topic.Topic{Title: "Original", Content: "Some content here", UserID: 1})
			service := newService(repo)

			updated, err := service.UpdateTopic(context.Background(), tt.actor, seeded.ID, topic.UpdateInput{
				Title: &newTitle,
			})

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, apperr.As(err).Code)
				assert.Equal(t, "Original", repo.topics[seeded.ID].Title)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, newTitle, updated.Title)
			assert.Equal(t, "Some content here", updated.Content)
		})
	}
}

func TestDeleteTopic_Ownership(t *testing.T) {
	tests := []struct {
		name     string
		actor    *sec.Identity
		wantCode string
	}{
		{"owner_allowed", member(1), ""},
		{"staff_allowed", moderator(99), ""},
		{"stranger_forbidden", member(2), "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			seeded := repo.seed(&topic.Topic{Title: "Doomed", UserID: 1})
			service := newService(repo)

			err := service.DeleteTopic(context.Background(), tt.actor, seeded.ID)

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, apperr.As(err).Code)
				assert.Contains(t, repo.topics, seeded.ID)
				return
			}

			require.NoError(t, err)
			assert.NotContains(t, repo.topics, seeded.ID)
		})
	}
}

func TestModerationFlags(t *testing.T) {
	repo := newFakeRepository()
	seeded := repo.seed(&topic.Topic{Title: "Sticky", UserID: 1})
	service := newService(repo)
	ctx := context.Background()

	pinned, err := service.SetPinned(ctx, seeded.ID, true)
	require.NoError(t, err)
	assert.True(t, pinned.IsPinned)

	locked, err := service.SetLocked(ctx, seeded.ID, true)
	require.NoError(t, err)
	assert.True(t, locked.IsLocked)

	unpinned, err := service.SetPinned(ctx, seeded.ID, false)
	require.NoError(t, err)
	assert.False(t, unpinned.IsPinned)

	_, err = service.SetPinned(ctx, 404, true)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
