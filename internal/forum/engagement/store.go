package engagement

import "context"

type Repository interface {
	ToggleTopicLike(context context.Context, topicID, userID int64) (*LikeResult, error)
	ToggleCommentLike(context context.Context, commentID, userID int64) (*LikeResult, error)
}
