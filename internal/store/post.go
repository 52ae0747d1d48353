// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quire/internal/models"
)

const postColumns = `id, title, subtitle, date, body, author, img_url, author_id`

// PostStore handles all blog post database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	p := &models.Post{}
	if err := row.Scan(
		&p.ID, &p.Title, &p.Subtitle, &p.Date, &p.Body, &p.Author, &p.ImgURL, &p.AuthorID,
	); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostStore) list(ctx context.Context, query string, args ...any) ([]models.Post, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// List returns every post in insertion order.
func (s *PostStore) List(ctx context.Context) ([]models.Post, error) {
	posts, err := s.list(ctx, `SELECT `+postColumns+` FROM blog_posts ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// ListByAuthor returns the posts whose author_id is authorID, oldest first.
func (s *PostStore) ListByAuthor(ctx context.Context, authorID int64) ([]models.Post, error) {
	posts, err := s.list(ctx,
		`SELECT `+postColumns+` FROM blog_posts WHERE author_id = $1 ORDER BY id ASC`, authorID)
	if err != nil {
		return nil, fmt.Errorf("list posts by author: %w", err)
	}
	return posts, nil
}

// FindByID retrieves a post by id.
func (s *PostStore) FindByID(ctx context.Context, id int64) (*models.Post, error) {
	p, err := scanPost(s.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM blog_posts WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// Create inserts a new post and returns it with the generated id.
func (s *PostStore) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	created, err := scanPost(s.db.QueryRowContext(ctx, `
		INSERT INTO blog_posts (title, subtitle, date, body, author, img_url, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+postColumns,
		p.Title, p.Subtitle, p.Date, p.Body, p.Author, p.ImgURL, p.AuthorID,
	))
	if err != nil {
		return nil, fmt.Errorf("create post: %w", classify(err))
	}
	return created, nil
}

// Update overwrites every editable field of the post with p.ID. The
// creation date is never changed.
func (s *PostStore) Update(ctx context.Context, p *models.Post) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE blog_posts SET
			title = $1, subtitle = $2, body = $3, author = $4, img_url = $5, author_id = $6
		WHERE id = $7
	`, p.Title, p.Subtitle, p.Body, p.Author, p.ImgURL, p.AuthorID, p.ID)
	if err != nil {
		return fmt.Errorf("update post: %w", classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a post and all of its comments in one transaction.
func (s *PostStore) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete post: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE post_id = $1`, id); err != nil {
		return fmt.Errorf("delete post comments: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete post: commit: %w", err)
	}
	return nil
}
