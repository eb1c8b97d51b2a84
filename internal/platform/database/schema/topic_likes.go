package schema

// TopicLikesTable represents the 'topic_likes' table
type TopicLikesTable struct {
	Table     string
	ID        string
	TopicID   string
	UserID    string
	CreatedAt string
}

// TopicLikes is the schema definition for topic_likes
var TopicLikes = TopicLikesTable{
	Table:     "topic_likes",
	ID:        "id",
	TopicID:   "topic_id",
	UserID:    "user_id",
	CreatedAt: "created_at",
}

func (t TopicLikesTable) Columns() []string {
	return []string{t.ID, t.TopicID, t.UserID, t.CreatedAt}
}
