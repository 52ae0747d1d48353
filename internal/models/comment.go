package models

import "time"

// Comment is a reader's remark on a post. AuthorName is filled by queries
// that join the users table and is not stored on the comment row.
type Comment struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorID   int64     `json:"author_id"`
	PostID     int64     `json:"post_id"`
	AuthorName string    `json:"author_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
