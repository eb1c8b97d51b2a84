package topic

import "time"

// Topic is a discussion thread opened by a member inside a category.
type Topic struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Tags          []string  `json:"tags"`
	Views         int       `json:"views"`
	Likes         int       `json:"likes"`
	CommentsCount int       `json:"comments_count"`
	IsPinned      bool      `json:"is_pinned"`
	IsLocked      bool      `json:"is_locked"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	UserID        int64     `json:"user_id"`
	CategoryID    *int64    `json:"category_id"`

	// Joined presentation fields, populated by list/get queries.
	AuthorUsername string  `json:"author_username,omitempty"`
	AuthorAvatar   string  `json:"author_avatar,omitempty"`
	CategoryName   *string `json:"category_name,omitempty"`
	CategorySlug   *string `json:"category_slug,omitempty"`
}

// Filter narrows topic listings.
type Filter struct {
	CategoryID *int64
	Tag        string
	Query      string
	Sort       string // latest | popular | most_viewed
}

const (
	SortLatest     = "latest"
	SortPopular    = "popular"
	SortMostViewed = "most_viewed"
)

const (
	TitleMaxLength   = 100
	ContentMinLength = 10
)
