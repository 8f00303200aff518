package model

import (
	"time"
)

// Report resolution states.
const (
	ReportPending  = "pending"
	ReportApproved = "approved"
	ReportRejected = "rejected"
)

// Report represents a moderation flag raised against a shout-out
type Report struct {
	ID         int64     `json:"id"`
	ShoutoutID int64     `json:"shoutout_id"`
	ReportedBy int64     `json:"reported_by,omitempty"`
	Reason     string    `json:"reason"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReportCreate represents the body of a report submission
type ReportCreate struct {
	Reason string `json:"reason" validate:"required"`
}
