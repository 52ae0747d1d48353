// Package router sets up all HTTP routes and middleware chains for the
// blog. Public routes, the auth pages and the admin group share one
// middleware stack; the admin group adds the admin gate.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"quire/internal/handlers"
	"quire/internal/middleware"
	"quire/web"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. secureCookies sets the Secure flag on the
// CSRF cookie and turns on HSTS.
func New(users middleware.UserResolver, auth *handlers.Auth, public *handlers.Public, admin *handlers.Admin, secureCookies bool) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecureHeaders(secureCookies))

	// Health check and assets: no session, no CSRF.
	r.Get("/health", healthHandler)
	static, _ := fs.Sub(web.StaticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewCSRF(secureCookies))
		r.Use(middleware.LoadUser(users))

		r.Get("/", public.Index)
		r.Get("/post/{id}", public.ShowPost)
		r.Post("/post/{id}", public.SubmitComment)
		r.Get("/author/{id}", public.AuthorPosts)
		r.Get("/about", public.About)
		r.Get("/contact", public.Contact)

		r.Get("/register", auth.RegisterPage)
		r.Post("/register", auth.RegisterSubmit)
		r.Get("/login", auth.LoginPage)
		r.Post("/login", auth.LoginSubmit)
		r.Get("/logout", auth.Logout)

		// Post lifecycle: administrators only.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/new-post", admin.NewPost)
			r.Post("/new-post", admin.CreatePost)
			r.Get("/edit-post/{id}", admin.EditPost)
			r.Post("/edit-post/{id}", admin.UpdatePost)
			r.Get("/delete/{id}", admin.DeletePost)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
