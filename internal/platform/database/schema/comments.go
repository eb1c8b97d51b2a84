package schema

// CommentsTable represents the 'comments' table
type CommentsTable struct {
	Table     string
	ID        string
	Content   string
	Likes     string
	UserID    string
	ParentID  string
	TopicID   string
	CreatedAt string
	UpdatedAt string
}

// Comments is the schema definition for comments
var Comments = CommentsTable{
	Table:     "comments",
	ID:        "id",
	Content:   "content",
	Likes:     "likes",
	UserID:    "user_id",
	ParentID:  "parent_id",
	TopicID:   "topic_id",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

func (t CommentsTable) Columns() []string {
	return []string{t.ID, t.Content, t.Likes, t.UserID, t.ParentID, t.TopicID, t.CreatedAt, t.UpdatedAt}
}
