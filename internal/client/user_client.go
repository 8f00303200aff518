package client

import (
	"context"
	"net/url"

	"github.com/yourorg/bragboard-client/internal/model"
)

// UserClient handles communication with the user endpoints
type UserClient struct {
	*Client
}

// NewUserClient creates a new user client
func NewUserClient(c *Client) *UserClient {
	return &UserClient{Client: c}
}

// Me retrieves the authenticated user's profile
func (c *UserClient) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.get(ctx, "/api/users/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMe applies a partial profile update and returns the updated profile
func (c *UserClient) UpdateMe(ctx context.Context, update model.UserUpdate) (*model.User, error) {
	var user model.User
	if err := c.put(ctx, "/api/users/me", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves active users, optionally filtered by department
func (c *UserClient) List(ctx context.Context, department string) ([]model.User, error) {
	path := "/api/users"
	if department != "" {
		path += "?department=" + url.QueryEscape(department)
	}
	var users []model.User
	if err := c.get(ctx, path, &users); err != nil {
		return nil, err
	}
	return users, nil
}
