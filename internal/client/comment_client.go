package client

import (
	"context"
	"fmt"

	"github.com/yourorg/bragboard-client/internal/model"
)

// CommentClient handles communication with the comment endpoints
type CommentClient struct {
	*Client
}

// NewCommentClient creates a new comment client
func NewCommentClient(c *Client) *CommentClient {
	return &CommentClient{Client: c}
}

// List retrieves the comments on a shout-out, oldest first
func (c *CommentClient) List(ctx context.Context, shoutoutID int64) ([]model.Comment, error) {
	var comments []model.Comment
	if err := c.get(ctx, fmt.Sprintf("/api/shoutouts/%d/comments", shoutoutID), &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// Create posts a comment on a shout-out
func (c *CommentClient) Create(ctx context.Context, shoutoutID int64, create model.CommentCreate) (*model.Comment, error) {
	var comment model.Comment
	if err := c.post(ctx, fmt.Sprintf("/api/shoutouts/%d/comments", shoutoutID), create, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}
