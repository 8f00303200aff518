package client

import (
	"context"
	"fmt"

	"github.com/yourorg/bragboard-client/internal/model"
)

// ReactionClient handles communication with the reaction endpoints
type ReactionClient struct {
	*Client
}

// NewReactionClient creates a new reaction client
func NewReactionClient(c *Client) *ReactionClient {
	return &ReactionClient{Client: c}
}

// Add applies a reaction of the given type to a shout-out
func (c *ReactionClient) Add(ctx context.Context, shoutoutID int64, reactionType string) error {
	req := model.ReactionCreate{Type: reactionType}
	return c.post(ctx, fmt.Sprintf("/api/shoutouts/%d/reactions", shoutoutID), req, nil)
}

// Remove withdraws the viewer's reaction of the given type
func (c *ReactionClient) Remove(ctx context.Context, shoutoutID int64, reactionType string) error {
	return c.delete(ctx, fmt.Sprintf("/api/shoutouts/%d/reactions/%s", shoutoutID, reactionType))
}

// Users lists the users who applied the given reaction type to a shout-out
func (c *ReactionClient) Users(ctx context.Context, shoutoutID int64, reactionType string) ([]model.User, error) {
	var users []model.User
	path := fmt.Sprintf("/api/shoutouts/%d/reactions/%s/users", shoutoutID, reactionType)
	if err := c.get(ctx, path, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AllUsers lists reacting users for a shout-out grouped by reaction type
func (c *ReactionClient) AllUsers(ctx context.Context, shoutoutID int64) (map[string][]model.User, error) {
	var users map[string][]model.User
	path := fmt.Sprintf("/api/shoutouts/%d/reactions/users", shoutoutID)
	if err := c.get(ctx, path, &users); err != nil {
		return nil, err
	}
	return users, nil
}
