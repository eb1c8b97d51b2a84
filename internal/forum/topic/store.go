package topic

import "context"

type Repository interface {
	ListTopics(context context.Context, filter Filter, limit, offset int) ([]*Topic, int, error)
	GetTopicByID(context context.Context, id int64) (*Topic, error)
	IncrementViews(context context.Context, id int64) error
	CreateTopic(context context.Context, topic *Topic) error
	UpdateTopic(context context.Context, topic *Topic) error
	DeleteTopic(context context.Context, id int64) error
	SetPinned(context context.Context, id int64, pinned bool) error
	SetLocked(context context.Context, id int64, locked bool) error
}
