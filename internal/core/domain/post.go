package domain

import (
	"strings"
	"time"
)

// Post is a single entry authored by a user. Author is populated on reads.
type Post struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	CreatedDate time.Time  `json:"createdDate"`
	AuthorID    string     `json:"authorId"`
	Author      PublicUser `json:"author"`
}

// NewPostInput carries the fields a user supplies when creating a post.
type NewPostInput struct {
	Title string `json:"title" form:"title"`
	Body  string `json:"body"  form:"body"`
}

// Validate trims the input in place and reports missing fields.
func (in *NewPostInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Body = strings.TrimSpace(in.Body)

	var msgs []string
	if in.Title == "" {
		msgs = append(msgs, MsgTitleRequired)
	}
	if in.Body == "" {
		msgs = append(msgs, MsgBodyRequired)
	}
	return NewValidationErrors(msgs...)
}
