// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// DateLayout is the display format of a post's creation date,
// e.g. "March 04, 2026".
const DateLayout = "January 02, 2006"

// Post is a blog article. Date is a display string fixed at creation;
// Author is a copy of the author's display name taken at the last write.
type Post struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Date     string `json:"date"`
	Body     string `json:"body"`
	Author   string `json:"author"`
	ImgURL   string `json:"img_url"`
	AuthorID int64  `json:"author_id"`
}

// FormatDate renders t in the layout used for Post.Date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
