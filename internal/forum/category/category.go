package category

import "time"

// Category is a top-level board grouping topics by theme.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Slug        string    `json:"slug"`
	CreatedAt   time.Time `json:"created_at"`

	// TopicsCount is populated by list queries only.
	TopicsCount int `json:"topics_count"`
}
