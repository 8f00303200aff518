package model

import (
	"time"
)

// Reaction types a viewer may toggle on a shout-out.
const (
	ReactionLike = "like"
	ReactionClap = "clap"
	ReactionStar = "star"
)

// Attachment represents a file attached to a shout-out
type Attachment struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Shoutout represents a recognition post as rendered in the feed
type Shoutout struct {
	ID             int64          `json:"id"`
	Sender         User           `json:"sender"`
	Message        string         `json:"message"`
	Recipients     []User         `json:"recipients"`
	ReactionCounts map[string]int `json:"reaction_counts"`
	UserReactions  []string       `json:"user_reactions"`
	CommentCount   int            `json:"comment_count"`
	Attachments    []Attachment   `json:"attachments,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at,omitempty"`
}

// ViewerReacted reports whether the current viewer already applied the given
// reaction type to this shout-out.
func (s *Shoutout) ViewerReacted(reactionType string) bool {
	for _, r := range s.UserReactions {
		if r == reactionType {
			return true
		}
	}
	return false
}

// ShoutoutCreate represents data for creating a shout-out
type ShoutoutCreate struct {
	Message      string  `json:"message" validate:"required"`
	RecipientIDs []int64 `json:"recipient_ids" validate:"required,min=1"`
}

// ReactionCreate represents the body of an add-reaction request
type ReactionCreate struct {
	Type string `json:"type" validate:"required,oneof=like clap star"`
}
