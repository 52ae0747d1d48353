package store

import (
	"context"
	"database/sql"
	"fmt"

	"quire/internal/models"
)

// CommentStore handles comment database operations.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore with the given database connection.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

// Create inserts a comment. A missing post or author yields ErrInvalidReference.
func (s *CommentStore) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	created := &models.Comment{}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO comments (text, author_id, post_id)
		VALUES ($1, $2, $3)
		RETURNING id, text, author_id, post_id, created_at
	`, c.Text, c.AuthorID, c.PostID).Scan(
		&created.ID, &created.Text, &created.AuthorID, &created.PostID, &created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", classify(err))
	}
	return created, nil
}

// ListByPost returns the comments on a post, oldest first, with each
// author's display name.
func (s *CommentStore) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.text, c.author_id, c.post_id, u.name, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.id ASC
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.AuthorID, &c.PostID, &c.AuthorName, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
