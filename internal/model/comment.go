package model

import (
	"time"
)

// Comment represents a comment on a shout-out. Content may embed inline
// mention tokens of the form @[display](id).
type Comment struct {
	ID         int64     `json:"id"`
	ShoutoutID int64     `json:"shoutout_id"`
	User       User      `json:"user"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}

// CommentCreate represents data for creating a comment. Mentions carries the
// user ids extracted from the content's mention tokens, in order of appearance.
type CommentCreate struct {
	Content  string  `json:"content" validate:"required"`
	Mentions []int64 `json:"mentions"`
}
