package engagement

import (
	"context"
	"log/slog"

	"github.com/paddockhq/paddock/internal/platform/apperr"
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

// ToggleTopicLike flips the actor's like on a topic. Identifiers are checked
// before any storage work so malformed input never opens a transaction.
func (service *Service) ToggleTopicLike(context context.Context, topicID, userID int64) (*LikeResult, error) {
	if topicID <= 0 {
		return nil, apperr.ValidationError("Invalid topic ID")
	}
	if userID <= 0 {
		return nil, apperr.Unauthorized("Authentication required")
	}

	result, err := service.repo.ToggleTopicLike(context, topicID, userID)
	if err != nil {
		return nil, err
	}

	service.logger.Info("topic_like_toggled",
		slog.Int64("topic_id", topicID),
		slog.Int64("user_id", userID),
		slog.Bool("liked", result.Liked))
	return result, nil
}

// ToggleCommentLike flips the actor's like on a comment.
func (service *Service) ToggleCommentLike(context context.Context, commentID, userID int64) (*LikeResult, error) {
	if commentID <= 0 {
		return nil, apperr.ValidationError("Invalid comment ID")
	}
	if userID <= 0 {
		return nil, apperr.Unauthorized("Authentication required")
	}

	result, err := service.repo.ToggleCommentLike(context, commentID, userID)
	if err != nil {
		return nil, err
	}

	service.logger.Info("comment_like_toggled",
		slog.Int64("comment_id", commentID),
		slog.Int64("user_id", userID),
		slog.Bool("liked", result.Liked))
	return result, nil
}
