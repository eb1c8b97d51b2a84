package comment_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paddockhq/paddock/internal/forum/comment"
	"github.com/paddockhq/paddock/internal/forum/topic"
	"github.com/paddockhq/paddock/internal/platform/apperr"
	"github.com/paddockhq/paddock/internal/platform/sec"
)

type fakeTopicStore struct {
	topics map[int64]*topic.Topic
}

func (s *fakeTopicStore) GetTopicByID(_ context.Context, id int64) (*topic.Topic, error) {
	t, ok := s.topics[id]
	if !ok {
		return nil, apperr.NotFound("Topic not found")
	}
	return t, nil
}

type fakeRepository struct {
	comments   map[int64]*comment.Comment
	nextID     int64
	cascadeErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{comments: map[int64]*comment.Comment{}, nextID: 1}
}

func (r *fakeRepository) seed(c *comment.Comment) *comment.Comment {
	c.ID = r.nextID
	r.nextID++
	r.comments[c.ID] = c
	return c
}

func (r *fakeRepository) ListByTopic(_ context.Context, topicID int64) ([]*comment.Comment, error) {
	var roots []*comment.Comment
	for _, c := range r.comments {
		if c.TopicID == topicID && c.ParentID == nil {
			roots = append(roots, c)
		}
	}
	return roots, nil
}

func (r *fakeRepository) GetCommentByID(_ context.Context, id int64) (*comment.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, apperr.NotFound("Comment not found")
	}
	return c, nil
}

func (r *fakeRepository) CreateComment(_ context.Context, c *comment.Comment) error {
	c.ID = r.nextID
	r.nextID++
	r.comments[c.ID] = c
	return nil
}

func (r *fakeRepository) UpdateComment(_ context.Context, c *comment.Comment) error {
	r.comments[c.ID] = c
	return nil
}

// DeleteCascade mirrors the all-or-nothing store contract: on an injected
// failure nothing is removed.
func (r *fakeRepository) DeleteCascade(_ context.Context, id int64) (int, error) {
	if r.cascadeErr != nil {
		return 0, r.cascadeErr
	}
	removed := 0
	for cid, c := range r.comments {
		if cid == id || (c.ParentID != nil && *c.ParentID == id) {
			delete(r.comments, cid)
			removed++
		}
	}
	return removed, nil
}

func newService(repo *fakeRepository, topics *fakeTopicStore) *comment.Service {
	return comment.NewService(repo, topics, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func member(id int64) *sec.Identity {
	return &sec.Identity{ID: id, Role: sec.RoleUser, Status: sec.StatusActive}
}

func moderator(id int64) *sec.Identity {
	return &sec.Identity{ID: id, Role: sec.RoleModerator, Status: sec.StatusActive}
}

func openTopic(id int64) *fakeTopicStore {
	return &fakeTopicStore{topics: map[int64]*topic.Topic{id: {ID: id, UserID: 1}}}
}

func TestCreateComment(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo, openTopic(10))
	actor := member(3)
	actor.Username = "george"

	created, err := service.CreateComment(context.Background(), actor, comment.CreateInput{
		TopicID: 10,
		Content: "Box box box",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), created.TopicID)
	assert.Equal(t, int64(3), created.UserID)
	assert.Nil(t, created.ParentID)
	assert.Equal(t, "george", created.AuthorUsername)
}

func TestCreateComment_MissingTopic(t *testing.T) {
	service := newService(newFakeRepository(), &fakeTopicStore{topics: map[int64]*topic.Topic{}})

	_, err := service.CreateComment(context.Background(), member(3), comment.CreateInput{
		TopicID: 404,
		Content: "Box box box",
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestCreateComment_LockedTopic(t *testing.T) {
	topics := &fakeTopicStore{topics: map[int64]*topic.Topic{
		10: {ID: 10, UserID: 1, IsLocked: true},
	}}
	service := newService(newFakeRepository(), topics)

	_, err := service.CreateComment(context.Background(), member(3), comment.CreateInput{
		TopicID: 10,
		Content: "Box box box",
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "FORBIDDEN", appError.Code)
	assert.Equal(t, "Topic is locked", appError.Message)
}

func TestCreateComment_ReplyRules(t *testing.T) {
	repo := newFakeRepository()
	root := repo.seed(&comment.Comment{TopicID: 10, UserID: 1, Content: "root"})
	reply := repo.seed(&comment.Comment{TopicID: 10, UserID: 1, Content: "reply", ParentID: &root.ID})
	foreign := repo.seed(&comment.Comment{TopicID: 20, UserID: 1, Content: "elsewhere"})

	topics := &fakeTopicStore{topics: map[int64]*topic.Topic{
		10: {ID: 10, UserID: 1},
		20: {ID: 20, UserID: 1},
	}}
	service := newService(repo, topics)
	ctx := context.Background()
	missingID := int64(404)

	// replying to a top-level comment works
	created, err := service.CreateComment(ctx, member(3), comment.CreateInput{
		TopicID: 10, Content: "agreed", ParentID: &root.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, created.ParentID)
	assert.Equal(t, root.ID, *created.ParentID)

	tests := []struct {
		name     string
		parentID *int64
		wantCode string
		wantMsg  string
	}{
		{"missing_parent", &missingID, "NOT_FOUND", "Parent comment not found"},
		{"cross_topic_parent", &foreign.ID, "UNPROCESSABLE", "Parent comment belongs to a different topic"},
		{"reply_to_reply", &reply.ID, "UNPROCESSABLE", "Cannot reply to a reply"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateComment(ctx, member(3), comment.CreateInput{
				TopicID: 10, Content: "nope", ParentID: tt.parentID,
			})
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, tt.wantCode, appError.Code)
			assert.Equal(t, tt.wantMsg, appError.Message)
		})
	}
}

func TestUpdateComment_Ownership(t *testing.T) {
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
			seeded := repo.seed(&comment.Comment{TopicID: 10, UserID: 1, Content: "original"})
			service := newService(repo, openTopic(10))

			updated, err := service.UpdateComment(context.Background(), tt.actor, seeded.ID, "edited")

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, apperr.As(err).Code)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "edited", updated.Content)
		})
	}
}

func TestDeleteComment_CascadesReplies(t *testing.T) {
	repo := newFakeRepository()
	root := repo.seed(&comment.Comment{TopicID: 10, UserID: 1, Content: "root"})
	repo.seed(&comment.Comment{TopicID: 10, UserID: 2, Content: "reply one", ParentID: &root.ID})
	repo.seed(&comment.Comment{TopicID: 10, UserID: 3, Content: "reply two", ParentID: &root.ID})
	bystander := repo.seed(&comment.Comment{TopicID: 10, UserID: 2, Content: "unrelated"})
	service := newService(repo, openTopic(10))

	err := service.DeleteComment(context.Background(), member(1), root.ID)
	require.NoError(t, err)

	// the root and both replies are gone, the unrelated comment survives
	assert.Len(t, repo.comments, 1)
	assert.Contains(t, repo.comments, bystander.ID)
}

func TestDeleteComment_CascadeFailureLeavesTreeIntact(t *testing.T) {
	repo := newFakeRepository()
	root := repo.seed(&comment.Comment{TopicID: 10, UserID: 1, Content: "root"})
	replyOne := repo.seed(&comment.Comment{TopicID: 10, UserID: 2, Content: "reply one", ParentID: &root.ID})
	replyTwo := repo.seed(&comment.Comment{TopicID: 10, UserID: 3, Content: "reply two", ParentID: &root.ID})
	repo.cascadeErr = errors.New("deadlock detected")
	service := newService(repo, openTopic(10))

	err := service.DeleteComment(context.Background(), member(1), root.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, repo.cascadeErr)

	// the failed cascade rolls back: root and both replies still exist
	assert.Contains(t, repo.comments, root.ID)
	assert.Contains(t, repo.comments, replyOne.ID)
	assert.Contains(t, repo.comments, replyTwo.ID)
}

func TestDeleteComment_StrangerForbidden(t *testing.T) {
	repo := newFakeRepository()
	seeded := repo.seed(&comment.Comment{TopicID: 10, UserID: 1, Content: "root"})
	service := newService(repo, openTopic(10))

	err := service.DeleteComment(context.Background(), member(2), seeded.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	assert.Contains(t, repo.comments, seeded.ID)
}

func TestBuildThread_ReplyBeforeParent(t *testing.T) {
	parentID := int64(2)
	flat := []*comment.Comment{
		{ID: 1, TopicID: 10, Content: "early reply", ParentID: &parentID},
		{ID: 2, TopicID: 10, Content: "root"},
		{ID: 3, TopicID: 10, Content: "late reply", ParentID: &parentID},
	}

	roots := comment.BuildThread(flat)

	require.Len(t, roots, 1)
	assert.Equal(t, int64(2), roots[0].ID)
	require.Len(t, roots[0].Replies, 2)
	assert.Equal(t, int64(1), roots[0].Replies[0].ID)
	assert.Equal(t, int64(3), roots[0].Replies[1].ID)
}

func TestListComments_MissingTopic(t *testing.T) {
	service := newService(newFakeRepository(), &fakeTopicStore{topics: map[int64]*topic.Topic{}})

	_, err := service.ListComments(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
