package client

import (
	"context"
	"fmt"

	"github.com/yourorg/bragboard-client/internal/model"
)

// ShoutoutClient handles communication with the shout-out endpoints
type ShoutoutClient struct {
	*Client
}

// NewShoutoutClient creates a new shout-out client
func NewShoutoutClient(c *Client) *ShoutoutClient {
	return &ShoutoutClient{Client: c}
}

// List retrieves the feed for the viewer's department
func (c *ShoutoutClient) List(ctx context.Context) ([]model.Shoutout, error) {
	var shoutouts []model.Shoutout
	if err := c.get(ctx, "/api/shoutouts", &shoutouts); err != nil {
		return nil, err
	}
	return shoutouts, nil
}

// Get retrieves a single shout-out by id
func (c *ShoutoutClient) Get(ctx context.Context, id int64) (*model.Shoutout, error) {
	var shoutout model.Shoutout
	if err := c.get(ctx, fmt.Sprintf("/api/shoutouts/%d", id), &shoutout); err != nil {
		return nil, err
	}
	return &shoutout, nil
}

// Create posts a new shout-out
func (c *ShoutoutClient) Create(ctx context.Context, create model.ShoutoutCreate) (*model.Shoutout, error) {
	var shoutout model.Shoutout
	if err := c.post(ctx, "/api/shoutouts", create, &shoutout); err != nil {
		return nil, err
	}
	return &shoutout, nil
}
