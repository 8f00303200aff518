package client

import (
	"context"

	"github.com/yourorg/bragboard-client/internal/model"
)

// AuthClient handles communication with the auth endpoints
type AuthClient struct {
	*Client
}

// NewAuthClient creates a new auth client
func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{Client: c}
}

// Login exchanges credentials for an access/refresh token pair. Invalid
// credentials surface as an AuthError carrying the server's detail message.
func (c *AuthClient) Login(ctx context.Context, email, password string) (*model.TokenPair, error) {
	req := model.LoginRequest{Email: email, Password: password}
	var pair model.TokenPair
	if err := c.post(ctx, "/api/auth/login", req, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// Register submits a registration. Depending on backend version the response
// either requires email verification or carries a legacy token pair.
func (c *AuthClient) Register(ctx context.Context, req model.RegisterRequest) (*model.RegisterResponse, error) {
	var resp model.RegisterResponse
	if err := c.post(ctx, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Refresh exchanges a refresh token for a new token pair.
func (c *AuthClient) Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error) {
	req := model.RefreshRequest{RefreshToken: refreshToken}
	var pair model.TokenPair
	if err := c.post(ctx, "/api/auth/refresh", req, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}
