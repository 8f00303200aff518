package client

import (
	"context"
	"fmt"

	"github.com/yourorg/bragboard-client/internal/model"
)

// NotificationClient handles communication with the notification endpoints
type NotificationClient struct {
	*Client
}

// NewNotificationClient creates a new notification client
func NewNotificationClient(c *Client) *NotificationClient {
	return &NotificationClient{Client: c}
}

// List retrieves up to limit most-recent notifications plus the unread count
func (c *NotificationClient) List(ctx context.Context, limit int) (*model.NotificationList, error) {
	path := "/api/notifications"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}
	var list model.NotificationList
	if err := c.get(ctx, path, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// MarkRead acknowledges the given notification ids as read
func (c *NotificationClient) MarkRead(ctx context.Context, ids []int64) error {
	req := model.MarkReadRequest{IDs: ids}
	return c.post(ctx, "/api/notifications/read", req, nil)
}

// ClearAll deletes all of the viewer's notifications
func (c *NotificationClient) ClearAll(ctx context.Context) error {
	return c.delete(ctx, "/api/notifications")
}
