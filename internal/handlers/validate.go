package handlers

import (
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Validation limits mirror the column widths in the schema.
const (
	maxNameLen   = 250
	maxEmailLen  = 250
	maxTitleLen  = 250
	maxImgURLLen = 250
)

// postForm holds the editable fields of a post as submitted.
type postForm struct {
	Title    string
	Subtitle string
	ImgURL   string
	Body     string
}

func parsePostForm(r *http.Request) postForm {
	return postForm{
		Title:    strings.TrimSpace(r.FormValue("title")),
		Subtitle: strings.TrimSpace(r.FormValue("subtitle")),
		ImgURL:   strings.TrimSpace(r.FormValue("img_url")),
		Body:     r.FormValue("body"),
	}
}

// validatePost checks post form inputs and returns the first error found.
func validatePost(f postForm) string {
	if f.Title == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(f.Title) > maxTitleLen {
		return "Title is too long (max 250 characters)."
	}
	if f.Subtitle == "" {
		return "Subtitle is required."
	}
	if utf8.RuneCountInString(f.Subtitle) > maxTitleLen {
		return "Subtitle is too long (max 250 characters)."
	}
	if f.ImgURL == "" {
		return "Image URL is required."
	}
	if utf8.RuneCountInString(f.ImgURL) > maxImgURLLen {
		return "Image URL is too long (max 250 characters)."
	}
	if strings.TrimSpace(f.Body) == "" {
		return "Content is required."
	}
	return ""
}

// validateRegistration checks the registration form and returns the first
// error found.
func validateRegistration(name, email, password string) string {
	if name == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 250 characters)."
	}
	if email == "" {
		return "Email is required."
	}
	if utf8.RuneCountInString(email) > maxEmailLen || !isEmail(email) {
		return "Please enter a valid email address."
	}
	if password == "" {
		return "Password is required."
	}
	return ""
}

// isEmail accepts a bare addr-spec such as a@example.com, without a
// display name or angle brackets.
func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s && strings.Contains(s, "@")
}
