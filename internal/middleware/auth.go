// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"quire/internal/auth"
	"quire/internal/models"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// UserKey is the context key for the current *models.User.
	UserKey contextKey = "user"
)

// UserResolver resolves a request to the signed-in user, or nil.
type UserResolver interface {
	CurrentUser(ctx context.Context, r *http.Request) (*models.User, error)
}

// LoadUser resolves the session to a user and stores it in the request
// context. It does NOT enforce authentication; anonymous requests pass
// through with no user set. A resolver error means the session or user
// store is unreachable and the request ends with a 500.
func LoadUser(resolver UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolver.CurrentUser(r.Context(), r)
			if err != nil {
				slog.Error("load user failed", "error", err, "path", r.URL.Path)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			if user != nil {
				r = r.WithContext(WithUser(r.Context(), user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin answers 401 unless the current user is an administrator.
// Must be applied after LoadUser.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := auth.RequireAdmin(UserFromCtx(r.Context())); err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// UserFromCtx extracts the current user from the request context.
// Returns nil for anonymous visitors.
func UserFromCtx(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserKey).(*models.User)
	return user
}
