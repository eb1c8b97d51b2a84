package comment

import "context"

type Repository interface {
	ListByTopic(context context.Context, topicID int64) ([]*Comment, error)
	GetCommentByID(context context.Context, id int64) (*Comment, error)
	CreateComment(context context.Context, comment *Comment) error
	UpdateComment(context context.Context, comment *Comment) error

	// DeleteCascade removes the comment, its replies, and every like row
	// attached to any of them in a single transaction. It returns the number
	// of comments removed so the topic counter stays exact.
	DeleteCascade(context context.Context, id int64) (int, error)
}
