// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests:
// an in-memory implementation of the repositories with the same
// uniqueness, referential and cascade rules as the PostgreSQL schema.
package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"quire/internal/middleware"
	"quire/internal/models"
	"quire/internal/password"
	"quire/internal/render"
	"quire/internal/session"
	"quire/internal/store"
)

// memDB holds users, posts and comments for one test.
type memDB struct {
	mu       sync.Mutex
	users    map[int64]*models.User
	posts    map[int64]*models.Post
	comments map[int64]*models.Comment
	nextID   int64
}

func newMemDB() *memDB {
	return &memDB{
		users:    map[int64]*models.User{},
		posts:    map[int64]*models.Post{},
		comments: map[int64]*models.Comment{},
	}
}

func (db *memDB) id() int64 {
	db.nextID++
	return db.nextID
}

type memUsers struct{ db *memDB }

func (s memUsers) Create(_ context.Context, name, email, hash string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Name == name || u.Email == email {
			return nil, store.ErrDuplicate
		}
	}
	role := models.RoleReader
	if len(s.db.users) == 0 {
		role = models.RoleAdmin
	}
	u := &models.User{ID: s.db.id(), Name: name, Email: email, PasswordHash: hash, Role: role, CreatedAt: time.Now()}
	s.db.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (s memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s memUsers) FindByID(_ context.Context, id int64) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if u, ok := s.db.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

type memPosts struct{ db *memDB }

func (s memPosts) titleTaken(title string, except int64) bool {
	for _, p := range s.db.posts {
		if p.Title == title && p.ID != except {
			return true
		}
	}
	return false
}

func (s memPosts) Create(_ context.Context, p *models.Post) (*models.Post, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.titleTaken(p.Title, 0) {
		return nil, store.ErrDuplicate
	}
	if _, ok := s.db.users[p.AuthorID]; !ok {
		return nil, store.ErrInvalidReference
	}
	cp := *p
	cp.ID = s.db.id()
	s.db.posts[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (s memPosts) sorted(keep func(*models.Post) bool) []models.Post {
	var out []models.Post
	for _, p := range s.db.posts {
		if keep(p) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s memPosts) List(context.Context) ([]models.Post, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.sorted(func(*models.Post) bool { return true }), nil
}

func (s memPosts) ListByAuthor(_ context.Context, authorID int64) ([]models.Post, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.sorted(func(p *models.Post) bool { return p.AuthorID == authorID }), nil
}

func (s memPosts) FindByID(_ context.Context, id int64) (*models.Post, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if p, ok := s.db.posts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func (s memPosts) Update(_ context.Context, p *models.Post) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	old, ok := s.db.posts[p.ID]
	if !ok {
		return store.ErrNotFound
	}
	if s.titleTaken(p.Title, p.ID) {
		return store.ErrDuplicate
	}
	cp := *p
	cp.Date = old.Date
	s.db.posts[p.ID] = &cp
	return nil
}

func (s memPosts) Delete(_ context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.posts[id]; !ok {
		return store.ErrNotFound
	}
	for cid, c := range s.db.comments {
		if c.PostID == id {
			delete(s.db.comments, cid)
		}
	}
	delete(s.db.posts, id)
	return nil
}

type memComments struct{ db *memDB }

func (s memComments) Create(_ context.Context, c *models.Comment) (*models.Comment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.posts[c.PostID]; !ok {
		return nil, store.ErrInvalidReference
	}
	if _, ok := s.db.users[c.AuthorID]; !ok {
		return nil, store.ErrInvalidReference
	}
	cp := *c
	cp.ID = s.db.id()
	cp.CreatedAt = time.Now()
	s.db.comments[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (s memComments) ListByPost(_ context.Context, postID int64) ([]models.Comment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []models.Comment
	for _, c := range s.db.comments {
		if c.PostID == postID {
			cp := *c
			cp.AuthorName = s.db.users[c.AuthorID].Name
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// fakeAuth records which user each login was for.
type fakeAuth struct {
	logins  []int64
	logouts int
}

func (f *fakeAuth) Login(_ context.Context, _ http.ResponseWriter, _ *http.Request, user *models.User) error {
	f.logins = append(f.logins, user.ID)
	return nil
}

func (f *fakeAuth) Logout(context.Context, http.ResponseWriter, *http.Request) error {
	f.logouts++
	return nil
}

// testEnv wires every handler group to one memDB.
type testEnv struct {
	db     *memDB
	auth   *fakeAuth
	authH  *Auth
	public *Public
	admin  *Admin
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	rn, err := render.New()
	require.NoError(t, err)

	db := newMemDB()
	fa := &fakeAuth{}
	users, posts, comments := memUsers{db}, memPosts{db}, memComments{db}
	return &testEnv{
		db:     db,
		auth:   fa,
		authH:  NewAuth(rn, users, fa),
		public: NewPublic(rn, posts, comments, users),
		admin:  NewAdmin(rn, posts),
	}
}

// routes mounts the handlers without router-level auth middleware, so the
// handlers' own checks are what is under test.
func (e *testEnv) routes(user *models.User) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if user != nil {
				req = req.WithContext(middleware.WithUser(req.Context(), user))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/register", e.authH.RegisterPage)
	r.Post("/register", e.authH.RegisterSubmit)
	r.Get("/login", e.authH.LoginPage)
	r.Post("/login", e.authH.LoginSubmit)
	r.Get("/logout", e.authH.Logout)
	r.Get("/", e.public.Index)
	r.Get("/post/{id}", e.public.ShowPost)
	r.Post("/post/{id}", e.public.SubmitComment)
	r.Get("/author/{id}", e.public.AuthorPosts)
	r.Get("/about", e.public.About)
	r.Get("/contact", e.public.Contact)
	r.Get("/new-post", e.admin.NewPost)
	r.Post("/new-post", e.admin.CreatePost)
	r.Get("/edit-post/{id}", e.admin.EditPost)
	r.Post("/edit-post/{id}", e.admin.UpdatePost)
	r.Get("/delete/{id}", e.admin.DeletePost)
	return r
}

func (e *testEnv) get(user *models.User, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.routes(user).ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func (e *testEnv) post(user *models.User, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	e.routes(user).ServeHTTP(w, req)
	return w
}

// addUser inserts a user directly with a real password hash.
func (e *testEnv) addUser(t *testing.T, name, email, plaintext string) *models.User {
	t.Helper()
	hash, err := password.Hash(plaintext)
	require.NoError(t, err)
	u, err := memUsers{e.db}.Create(context.Background(), name, email, hash)
	require.NoError(t, err)
	return u
}

// addPost inserts a post by author directly.
func (e *testEnv) addPost(t *testing.T, author *models.User, title string) *models.Post {
	t.Helper()
	p, err := memPosts{e.db}.Create(context.Background(), &models.Post{
		Title: title, Subtitle: "sub", Date: "March 04, 2026", Body: "body",
		Author: author.Name, ImgURL: "https://example.com/a.jpg", AuthorID: author.ID,
	})
	require.NoError(t, err)
	return p
}

func (e *testEnv) counts() (users, posts, comments int) {
	e.db.mu.Lock()
	defer e.db.mu.Unlock()
	return len(e.db.users), len(e.db.posts), len(e.db.comments)
}

// flashOf returns the flash message set on the response, if any.
func flashOf(w *httptest.ResponseRecorder) string {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		if c.Name == session.FlashCookieName {
			r.AddCookie(c)
		}
	}
	return session.PopFlash(httptest.NewRecorder(), r)
}

func validPostForm(title string) url.Values {
	return url.Values{
		"title":    {title},
		"subtitle": {"S"},
		"body":     {"B"},
		"img_url":  {"https://example.com/u.jpg"},
	}
}
