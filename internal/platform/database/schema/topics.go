package schema

// TopicsTable represents the 'topics' table
type TopicsTable struct {
	Table         string
	ID            string
	Title         string
	Content       string
	Tags          string
	Views         string
	Likes         string
	CommentsCount string
	IsPinned      string
	IsLocked      string
	CreatedAt     string
	UpdatedAt     string
	UserID        string
	CategoryID    string
}

// Topics is the schema definition for topics
var Topics = TopicsTable{
	Table:         "topics",
	ID:            "id",
	Title:         "title",
	Content:       "content",
	Tags:          "tags",
	Views:         "views",
	Likes:         "likes",
	CommentsCount: "comments_count",
	IsPinned:      "is_pinned",
	IsLocked:      "is_locked",
	CreatedAt:     "created_at",
	UpdatedAt:     "updated_at",
	UserID:        "user_id",
	CategoryID:    "category_id",
}

func (t TopicsTable) Columns() []string {
	return []string{t.ID, t.Title, t.Content, t.Tags, t.Views, t.Likes, t.CommentsCount, t.IsPinned, t.IsLocked, t.CreatedAt, t.UpdatedAt, t.UserID, t.CategoryID}
}
