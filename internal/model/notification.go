package model

import (
	"time"
)

// Reference types a notification may point at.
const (
	ReferenceShoutout         = "shoutout"
	ReferenceComment          = "comment"
	ReferenceAdmin            = "admin"
	ReferenceDepartmentChange = "department_change"
)

// NotificationActor identifies the user whose action produced a notification
type NotificationActor struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// NotificationPayload carries optional routing data embedded in a notification
type NotificationPayload struct {
	Redirect string `json:"redirect,omitempty"`
}

// Notification represents a single notification entry
type Notification struct {
	ID            int64                `json:"id"`
	Title         string               `json:"title"`
	Message       string               `json:"message"`
	IsRead        bool                 `json:"is_read"`
	ReadAt        *time.Time           `json:"read_at,omitempty"`
	Actor         *NotificationActor   `json:"actor,omitempty"`
	ReferenceType string               `json:"reference_type,omitempty"`
	Payload       *NotificationPayload `json:"payload,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

// NotificationList represents the poll response: the most recent entries in
// descending recency order plus the server's unread count.
type NotificationList struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unread_count"`
}

// MarkReadRequest represents the body of a read-acknowledgment request
type MarkReadRequest struct {
	IDs []int64 `json:"ids"`
}
