package comment

import "time"

// Comment is a reply inside a topic. Nesting is a single level deep:
// a comment either sits at the top level or replies to a top-level comment.
type Comment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
	UserID    int64     `json:"user_id"`
	ParentID  *int64    `json:"parent_id"`
	TopicID   int64     `json:"topic_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Joined presentation fields, populated by queries.
	AuthorUsername string `json:"author_username,omitempty"`
	AuthorAvatar   string `json:"author_avatar,omitempty"`

	// Replies is populated for top-level comments in tree listings.
	Replies []*Comment `json:"replies,omitempty"`
}

const ContentMaxLength = 5000

// BuildThread nests replies under their top-level parents. Input order only
// dictates sibling order; a reply sharing its parent's timestamp may arrive
// first and must still land in the tree.
func BuildThread(comments []*Comment) []*Comment {
	roots := make([]*Comment, 0, len(comments))
	byID := make(map[int64]*Comment, len(comments))

	for _, c := range comments {
		if c.ParentID == nil {
			c.Replies = make([]*Comment, 0)
			roots = append(roots, c)
			byID[c.ID] = c
		}
	}

	for _, c := range comments {
		if c.ParentID == nil {
			continue
		}
		if parent, ok := byID[*c.ParentID]; ok {
			parent.Replies = append(parent.Replies, c)
		}
	}

	return roots
}
