// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"quire/internal/auth"
	"quire/internal/middleware"
	"quire/internal/models"
	"quire/internal/render"
	"quire/internal/store"
)

const msgDuplicateTitle = "A post with that title already exists."

// Admin groups the post lifecycle handlers. Every handler checks the
// current user itself, independent of any router middleware.
type Admin struct {
	renderer *render.Renderer
	posts    PostRepository
	now      func() time.Time
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(renderer *render.Renderer, posts PostRepository) *Admin {
	return &Admin{
		renderer: renderer,
		posts:    posts,
		now:      time.Now,
	}
}

// NewPost renders an empty post form.
func (a *Admin) NewPost(w http.ResponseWriter, r *http.Request) {
	if _, ok := a.currentAdmin(w, r); !ok {
		return
	}
	a.renderForm(w, r, "New Post", "/new-post", postForm{}, "")
}

// CreatePost stores a new post dated today with the admin as author.
func (a *Admin) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := a.currentAdmin(w, r)
	if !ok {
		return
	}

	form := parsePostForm(r)
	if msg := validatePost(form); msg != "" {
		a.renderForm(w, r, "New Post", "/new-post", form, msg)
		return
	}

	_, err := a.posts.Create(r.Context(), &models.Post{
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Date:     models.FormatDate(a.now()),
		Body:     form.Body,
		Author:   user.Name,
		ImgURL:   form.ImgURL,
		AuthorID: user.ID,
	})
	if errors.Is(err, store.ErrDuplicate) {
		a.renderForm(w, r, "New Post", "/new-post", form, msgDuplicateTitle)
		return
	}
	if err != nil {
		serverError(a.renderer, w, r, "create post failed", err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// EditPost renders the form pre-filled with the stored post.
func (a *Admin) EditPost(w http.ResponseWriter, r *http.Request) {
	if _, ok := a.currentAdmin(w, r); !ok {
		return
	}
	post, ok := a.loadPost(w, r)
	if !ok {
		return
	}

	a.renderForm(w, r, "Edit Post", editURL(post.ID), postForm{
		Title:    post.Title,
		Subtitle: post.Subtitle,
		ImgURL:   post.ImgURL,
		Body:     post.Body,
	}, "")
}

// UpdatePost overwrites the post's content. The original date is kept and
// the editing admin becomes the author.
func (a *Admin) UpdatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := a.currentAdmin(w, r)
	if !ok {
		return
	}
	post, ok := a.loadPost(w, r)
	if !ok {
		return
	}

	form := parsePostForm(r)
	if msg := validatePost(form); msg != "" {
		a.renderForm(w, r, "Edit Post", editURL(post.ID), form, msg)
		return
	}

	post.Title = form.Title
	post.Subtitle = form.Subtitle
	post.ImgURL = form.ImgURL
	post.Body = form.Body
	post.Author = user.Name
	post.AuthorID = user.ID

	err := a.posts.Update(r.Context(), post)
	switch {
	case errors.Is(err, store.ErrDuplicate):
		a.renderForm(w, r, "Edit Post", editURL(post.ID), form, msgDuplicateTitle)
		return
	case errors.Is(err, store.ErrNotFound):
		notFound(a.renderer, w, r)
		return
	case err != nil:
		serverError(a.renderer, w, r, "update post failed", err)
		return
	}

	http.Redirect(w, r, postURL(post.ID), http.StatusSeeOther)
}

// DeletePost removes a post and its comments.
func (a *Admin) DeletePost(w http.ResponseWriter, r *http.Request) {
	if _, ok := a.currentAdmin(w, r); !ok {
		return
	}
	id, ok := idParam(r)
	if !ok {
		notFound(a.renderer, w, r)
		return
	}

	err := a.posts.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		notFound(a.renderer, w, r)
		return
	}
	if err != nil {
		serverError(a.renderer, w, r, "delete post failed", err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// currentAdmin returns the signed-in administrator. For anyone else it
// writes a 401 response and returns false.
func (a *Admin) currentAdmin(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user := middleware.UserFromCtx(r.Context())
	if err := auth.RequireAdmin(user); err != nil {
		a.renderer.Error(w, r, http.StatusUnauthorized, "You are not allowed to do that.")
		return nil, false
	}
	return user, true
}

func (a *Admin) loadPost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	id, ok := idParam(r)
	if !ok {
		notFound(a.renderer, w, r)
		return nil, false
	}

	post, err := a.posts.FindByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		notFound(a.renderer, w, r)
		return nil, false
	}
	if err != nil {
		serverError(a.renderer, w, r, "find post failed", err)
		return nil, false
	}
	return post, true
}

func (a *Admin) renderForm(w http.ResponseWriter, r *http.Request, title, action string, form postForm, errMsg string) {
	a.renderer.Page(w, r, "post_form", &render.PageData{
		Title: title,
		Data: map[string]any{
			"Action": action,
			"Form":   form,
			"Error":  errMsg,
		},
	})
}

func editURL(id int64) string {
	return "/edit-post/" + strconv.FormatInt(id, 10)
}
