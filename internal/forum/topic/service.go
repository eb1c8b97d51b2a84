package topic

import (
	"context"
	"log/slog"
	"strings"

	"github.com/paddockhq/paddock/internal/platform/apperr"
	"github.com/paddockhq/paddock/internal/platform/sec"
	"github.com/paddockhq/paddock/pkg/slice"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListTopics(context context.Context, filter Filter, limit, offset int) ([]*Topic, int, error) {
	return service.repo.ListTopics(context, filter, limit, offset)
}

// GetTopic fetches a single topic and counts the read as a view.
func (service *Service) GetTopic(context context.Context, id int64) (*Topic, error) {
	t, err := service.repo.GetTopicByID(context, id)
	if err != nil {
		return nil, err
	}

	// View counting is fire-and-forget. A failed bump must not break the read.
	if err := service.repo.IncrementViews(context, id); err == nil {
		t.Views++
	}

	return t, nil
}

type CreateInput struct {
	Title      string
	Content    string
	Tags       []string
	CategoryID *int64
}

func (service *Service) CreateTopic(context context.Context, actor *sec.Identity, input CreateInput) (*Topic, error) {
	t := &Topic{
		Title:      input.Title,
		Content:    input.Content,
		Tags:       normalizeTags(input.Tags),
		UserID:     actor.ID,
		CategoryID: input.CategoryID,
	}

	if err := service.repo.CreateTopic(context, t); err != nil {
		return nil, err
	}

	t.AuthorUsername = actor.Username
	service.logger.Info("topic_created", slog.Int64("topic_id", t.ID), slog.Int64("user_id", actor.ID))
	return t, nil
}

type UpdateInput struct {
	Title      *string
	Content    *string
	Tags       []string
	CategoryID *int64
}

func (service *Service) UpdateTopic(context context.Context, actor *sec.Identity, id int64, input UpdateInput) (*Topic, error) {
	t, err := service.repo.GetTopicByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := authorize(actor, t.UserID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		t.Title = *input.Title
	}
	if input.Content != nil {
		t.Content = *input.Content
	}
	if input.Tags != nil {
		t.Tags = normalizeTags(input.Tags)
	}
	if input.CategoryID != nil {
		t.CategoryID = input.CategoryID
	}

	if err := service.repo.UpdateTopic(context, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (service *Service) DeleteTopic(context context.Context, actor *sec.Identity, id int64) error {
	t, err := service.repo.GetTopicByID(context, id)
	if err != nil {
		return err
	}

	if err := authorize(actor, t.UserID); err != nil {
		return err
	}

	if err := service.repo.DeleteTopic(context, id); err != nil {
		return err
	}

	service.logger.Info("topic_deleted", slog.Int64("topic_id", id), slog.Int64("user_id", actor.ID))
	return nil
}

// # Moderation

func (service *Service) SetPinned(context context.Context, id int64, pinned bool) (*Topic, error) {
	if err := service.repo.SetPinned(context, id, pinned); err != nil {
		return nil, err
	}
	return service.repo.GetTopicByID(context, id)
}

func (service *Service) SetLocked(context context.Context, id int64, locked bool) (*Topic, error) {
	if err := service.repo.SetLocked(context, id, locked); err != nil {
		return nil, err
	}
	return service.repo.GetTopicByID(context, id)
}

// normalizeTags trims whitespace and drops empty entries. Tags are stored as
// comma-separated text, so stray commas from the client must not survive.
func normalizeTags(tags []string) []string {
	trimmed := slice.Map(tags, strings.TrimSpace)
	clean := slice.Filter(trimmed, func(tag string) bool { return tag != "" })
	if clean == nil {
		return []string{}
	}
	return clean
}

// authorize allows the resource owner plus staff members to proceed.
func authorize(actor *sec.Identity, ownerID int64) error {
	if actor == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if actor.ID != ownerID && !actor.IsStaff() {
		return apperr.Forbidden("You can only modify your own topics")
	}
	return nil
}
