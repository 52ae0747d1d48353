package handlers

import (
	"errors"
	"net/http"
	"strings"

	"quire/internal/middleware"
	"quire/internal/password"
	"quire/internal/render"
	"quire/internal/session"
	"quire/internal/store"
)

// Flash messages shown after an authentication redirect.
const (
	flashUserExists   = "User already exists"
	flashUserNotFound = "User not found"
	flashWrongPass    = "Wrong password!"
)

// Auth groups registration, login and logout handlers.
type Auth struct {
	renderer *render.Renderer
	users    UserRepository
	sessions Authenticator
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, users UserRepository, sessions Authenticator) *Auth {
	return &Auth{
		renderer: renderer,
		users:    users,
		sessions: sessions,
	}
}

// RegisterPage renders the registration form.
func (a *Auth) RegisterPage(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "register", &render.PageData{Title: "Register"})
}

// RegisterSubmit creates an account and signs it in. An email or name that
// is already taken sends the visitor to the login page instead.
func (a *Auth) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	plaintext := r.FormValue("password")

	if msg := validateRegistration(name, email, plaintext); msg != "" {
		a.renderer.Page(w, r, "register", &render.PageData{
			Title: "Register",
			Data:  map[string]any{"Error": msg, "Name": name, "Email": email},
		})
		return
	}

	_, err := a.users.FindByEmail(r.Context(), email)
	if err == nil {
		session.SetFlash(w, flashUserExists)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		serverError(a.renderer, w, r, "register lookup failed", err)
		return
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		serverError(a.renderer, w, r, "password hash failed", err)
		return
	}

	user, err := a.users.Create(r.Context(), name, email, hash)
	if errors.Is(err, store.ErrDuplicate) {
		session.SetFlash(w, flashUserExists)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err != nil {
		serverError(a.renderer, w, r, "create user failed", err)
		return
	}

	if err := a.sessions.Login(r.Context(), w, r, user); err != nil {
		serverError(a.renderer, w, r, "session create failed", err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// LoginPage renders the login form, or sends signed-in users home.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.UserFromCtx(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	a.renderer.Page(w, r, "login", &render.PageData{Title: "Log in"})
}

// LoginSubmit checks the credentials and starts a session.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	plaintext := r.FormValue("password")

	if email == "" || plaintext == "" {
		a.renderer.Page(w, r, "login", &render.PageData{
			Title: "Log in",
			Data:  map[string]any{"Error": "Email and password are required.", "Email": email},
		})
		return
	}

	user, err := a.users.FindByEmail(r.Context(), email)
	if errors.Is(err, store.ErrNotFound) {
		session.SetFlash(w, flashUserNotFound)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err != nil {
		serverError(a.renderer, w, r, "login lookup failed", err)
		return
	}

	if !password.Verify(plaintext, user.PasswordHash) {
		session.SetFlash(w, flashWrongPass)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := a.sessions.Login(r.Context(), w, r, user); err != nil {
		serverError(a.renderer, w, r, "session create failed", err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout ends the session, if any, and returns to the post list.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Logout(r.Context(), w, r); err != nil {
		serverError(a.renderer, w, r, "session destroy failed", err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
