package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"quire/internal/middleware"
	"quire/internal/models"
	"quire/internal/render"
	"quire/internal/session"
	"quire/internal/store"
)

const flashLoginToComment = "You must login or register first to be able to comment."

// Public serves the pages anyone can read, plus comment submission.
type Public struct {
	renderer *render.Renderer
	posts    PostRepository
	comments CommentRepository
	users    UserRepository
}

// NewPublic creates a new Public handler group.
func NewPublic(renderer *render.Renderer, posts PostRepository, comments CommentRepository, users UserRepository) *Public {
	return &Public{
		renderer: renderer,
		posts:    posts,
		comments: comments,
		users:    users,
	}
}

// Index lists every post in insertion order.
func (p *Public) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := p.posts.List(r.Context())
	if err != nil {
		serverError(p.renderer, w, r, "list posts failed", err)
		return
	}

	p.renderer.Page(w, r, "index", &render.PageData{
		Title: "All posts",
		Data:  map[string]any{"Posts": posts},
	})
}

// ShowPost renders a post with its comments.
func (p *Public) ShowPost(w http.ResponseWriter, r *http.Request) {
	post, ok := p.loadPost(w, r)
	if !ok {
		return
	}
	p.renderPost(w, r, post, "", "")
}

// SubmitComment attaches a comment from the signed-in user to the post.
// Anonymous visitors are sent to the login page and nothing is stored.
func (p *Public) SubmitComment(w http.ResponseWriter, r *http.Request) {
	post, ok := p.loadPost(w, r)
	if !ok {
		return
	}

	user := middleware.UserFromCtx(r.Context())
	if user == nil {
		session.SetFlash(w, flashLoginToComment)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	text := r.FormValue("comment_text")
	if strings.TrimSpace(text) == "" {
		p.renderPost(w, r, post, "Comment cannot be empty.", text)
		return
	}

	_, err := p.comments.Create(r.Context(), &models.Comment{
		Text:     text,
		AuthorID: user.ID,
		PostID:   post.ID,
	})
	if errors.Is(err, store.ErrInvalidReference) {
		notFound(p.renderer, w, r)
		return
	}
	if err != nil {
		serverError(p.renderer, w, r, "create comment failed", err)
		return
	}

	http.Redirect(w, r, postURL(post.ID), http.StatusSeeOther)
}

// AuthorPosts lists the posts written by one user.
func (p *Public) AuthorPosts(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		notFound(p.renderer, w, r)
		return
	}

	author, err := p.users.FindByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		notFound(p.renderer, w, r)
		return
	}
	if err != nil {
		serverError(p.renderer, w, r, "find author failed", err)
		return
	}

	posts, err := p.posts.ListByAuthor(r.Context(), author.ID)
	if err != nil {
		serverError(p.renderer, w, r, "list author posts failed", err)
		return
	}

	p.renderer.Page(w, r, "index", &render.PageData{
		Title: "Posts by " + author.Name,
		Data:  map[string]any{"Posts": posts},
	})
}

// About renders the static about page.
func (p *Public) About(w http.ResponseWriter, r *http.Request) {
	p.renderer.Page(w, r, "about", &render.PageData{Title: "About"})
}

// Contact renders the static contact page.
func (p *Public) Contact(w http.ResponseWriter, r *http.Request) {
	p.renderer.Page(w, r, "contact", &render.PageData{Title: "Contact"})
}

// loadPost fetches the post named by the URL, writing a 404 or 500
// response itself when it cannot.
func (p *Public) loadPost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	id, ok := idParam(r)
	if !ok {
		notFound(p.renderer, w, r)
		return nil, false
	}

	post, err := p.posts.FindByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		notFound(p.renderer, w, r)
		return nil, false
	}
	if err != nil {
		serverError(p.renderer, w, r, "find post failed", err)
		return nil, false
	}
	return post, true
}

func (p *Public) renderPost(w http.ResponseWriter, r *http.Request, post *models.Post, commentErr, commentText string) {
	comments, err := p.comments.ListByPost(r.Context(), post.ID)
	if err != nil {
		serverError(p.renderer, w, r, "list comments failed", err)
		return
	}

	p.renderer.Page(w, r, "post", &render.PageData{
		Title: post.Title,
		Data: map[string]any{
			"Post":         post,
			"Comments":     comments,
			"CommentError": commentErr,
			"CommentText":  commentText,
		},
	})
}

func postURL(id int64) string {
	return "/post/" + strconv.FormatInt(id, 10)
}
