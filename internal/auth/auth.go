// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth ties sessions to users. It decides who the current user is
// and whether that user may perform administrative actions.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"quire/internal/models"
	"quire/internal/session"
	"quire/internal/store"
)

// ErrUnauthorized is returned when an action requires an administrator.
var ErrUnauthorized = errors.New("unauthorized")

// SessionStore is the subset of *session.Store the manager needs.
type SessionStore interface {
	Create(ctx context.Context, w http.ResponseWriter, userID int64) (string, error)
	Get(ctx context.Context, r *http.Request) (*session.Data, error)
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// UserFinder loads users by id.
type UserFinder interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// Manager moves a browser between the anonymous and authenticated states.
type Manager struct {
	sessions SessionStore
	users    UserFinder
}

// NewManager creates a Manager.
func NewManager(sessions SessionStore, users UserFinder) *Manager {
	return &Manager{sessions: sessions, users: users}
}

// Login replaces any existing session on the request with a new one for user.
func (m *Manager) Login(ctx context.Context, w http.ResponseWriter, r *http.Request, user *models.User) error {
	if err := m.sessions.Destroy(ctx, w, r); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if _, err := m.sessions.Create(ctx, w, user.ID); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

// CurrentUser resolves the request's session to a freshly loaded user.
// Returns nil, nil for anonymous requests, including sessions whose user
// no longer exists.
func (m *Manager) CurrentUser(ctx context.Context, r *http.Request) (*models.User, error) {
	data, err := m.sessions.Get(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	user, err := m.users.FindByID(ctx, data.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return user, nil
}

// Logout ends the session. Calling it without a session is not an error.
func (m *Manager) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if err := m.sessions.Destroy(ctx, w, r); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// IsAdmin reports whether user may create, edit and delete posts.
func IsAdmin(user *models.User) bool {
	return user.IsAdmin()
}

// RequireAdmin returns ErrUnauthorized unless user is an administrator.
func RequireAdmin(user *models.User) error {
	if !IsAdmin(user) {
		return ErrUnauthorized
	}
	return nil
}
