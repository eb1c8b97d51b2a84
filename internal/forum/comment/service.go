package comment

import (
	"context"
	"log/slog"

	"github.com/paddockhq/paddock/internal/forum/topic"
	"github.com/paddockhq/paddock/internal/platform/apperr"
	"github.com/paddockhq/paddock/internal/platform/sec"
)

// TopicStore is the slice of the topic repository the comment domain needs.
type TopicStore interface {
	GetTopicByID(context context.Context, id int64) (*topic.Topic, error)
}

type Service struct {
	repo   Repository
	topics TopicStore
	logger *slog.Logger
}

func NewService(repo Repository, topics TopicStore, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		topics: topics,
		logger: logger,
	}
}

// ListComments returns the two-level comment tree for an existing topic.
func (service *Service) ListComments(context context.Context, topicID int64) ([]*Comment, error) {
	if _, err := service.topics.GetTopicByID(context, topicID); err != nil {
		return nil, err
	}
	return service.repo.ListByTopic(context, topicID)
}

type CreateInput struct {
	TopicID  int64
	Content  string
	ParentID *int64
}

func (service *Service) CreateComment(context context.Context, actor *sec.Identity, input CreateInput) (*Comment, error) {
	t, err := service.topics.GetTopicByID(context, input.TopicID)
	if err != nil {
		return nil, err
	}
	if t.IsLocked {
		return nil, apperr.Forbidden("Topic is locked")
	}

	if input.ParentID != nil {
		parent, err := service.repo.GetCommentByID(context, *input.ParentID)
		if err != nil {
			return nil, apperr.NotFound("Parent comment not found")
		}
		if parent.TopicID != input.TopicID {
			return nil, apperr.Unprocessable("Parent comment belongs to a different topic")
		}
		// One level of nesting only: replying to a reply is rejected.
		if parent.ParentID != nil {
			return nil, apperr.Unprocessable("Cannot reply to a reply")
		}
	}

	c := &Comment{
		Content:  input.Content,
		UserID:   actor.ID,
		ParentID: input.ParentID,
		TopicID:  input.TopicID,
	}

	if err := service.repo.CreateComment(context, c); err != nil {
		return nil, err
	}

	c.AuthorUsername = actor.Username
	service.logger.Info("comment_created",
		slog.Int64("comment_id", c.ID),
		slog.Int64("topic_id", input.TopicID),
		slog.Int64("user_id", actor.ID))
	return c, nil
}

func (service *Service) UpdateComment(context context.Context, actor *sec.Identity, id int64, content string) (*Comment, error) {
	c, err := service.repo.GetCommentByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := authorize(actor, c.UserID); err != nil {
		return nil, err
	}

	c.Content = content
	if err := service.repo.UpdateComment(context, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (service *Service) DeleteComment(context context.Context, actor *sec.Identity, id int64) error {
	c, err := service.repo.GetCommentByID(context, id)
	if err != nil {
		return err
	}

	if err := authorize(actor, c.UserID); err != nil {
		return err
	}

	removed, err := service.repo.DeleteCascade(context, id)
	if err != nil {
		return err
	}

	service.logger.Info("comment_deleted",
		slog.Int64("comment_id", id),
		slog.Int64("user_id", actor.ID),
		slog.Int("removed", removed))
	return nil
}

// authorize allows the resource owner plus staff members to proceed.
func authorize(actor *sec.Identity, ownerID int64) error {
	if actor == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if actor.ID != ownerID && !actor.IsStaff() {
		return apperr.Forbidden("You can only modify your own comments")
	}
	return nil
}
