// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the blog. Handlers are
// grouped by concern (auth, public, admin) and receive their dependencies
// through the handler struct. Entities are re-read from the store on every
// request; nothing is cached between requests.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"quire/internal/models"
	"quire/internal/render"
)

// UserRepository is the user persistence the handlers need.
type UserRepository interface {
	Create(ctx context.Context, name, email, passwordHash string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// PostRepository is the post persistence the handlers need.
type PostRepository interface {
	Create(ctx context.Context, p *models.Post) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]models.Post, error)
	FindByID(ctx context.Context, id int64) (*models.Post, error)
	Update(ctx context.Context, p *models.Post) error
	Delete(ctx context.Context, id int64) error
}

// CommentRepository is the comment persistence the handlers need.
type CommentRepository interface {
	Create(ctx context.Context, c *models.Comment) (*models.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]models.Comment, error)
}

// Authenticator starts and ends browser sessions.
type Authenticator interface {
	Login(ctx context.Context, w http.ResponseWriter, r *http.Request, user *models.User) error
	Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// idParam parses the {id} URL parameter. ok is false for anything that
// is not a positive integer.
func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// notFound renders the 404 page.
func notFound(rn *render.Renderer, w http.ResponseWriter, r *http.Request) {
	rn.Error(w, r, http.StatusNotFound, "The page you are looking for does not exist.")
}

// serverError logs err and renders a generic 500 page.
func serverError(rn *render.Renderer, w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.Error(msg, "error", err, "path", r.URL.Path)
	rn.Error(w, r, http.StatusInternalServerError, "Something went wrong. Please try again later.")
}
