package schema

// CommentLikesTable represents the 'comment_likes' table
type CommentLikesTable struct {
	Table     string
	ID        string
	CommentID string
	UserID    string
	CreatedAt string
}

// CommentLikes is the schema definition for comment_likes
var CommentLikes = CommentLikesTable{
	Table:     "comment_likes",
	ID:        "id",
	CommentID: "comment_id",
	UserID:    "user_id",
	CreatedAt: "created_at",
}

func (t CommentLikesTable) Columns() []string {
	return []string{t.ID, t.CommentID, t.UserID, t.CreatedAt}
}
