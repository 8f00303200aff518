package model

// LoginRequest represents data needed for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest represents data submitted on registration
type RegisterRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Department string `json:"department" validate:"required"`
	Role       string `json:"role,omitempty" validate:"omitempty,oneof=admin employee"`
}

// TokenPair represents the credential pair returned on successful authentication
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type,omitempty"`
}

// RegisterResponse represents the registration outcome. Newer backends require
// email verification and return no tokens; legacy backends return a token pair.
type RegisterResponse struct {
	RequiresVerification bool   `json:"requires_verification,omitempty"`
	AccessToken          string `json:"access_token,omitempty"`
	RefreshToken         string `json:"refresh_token,omitempty"`
	TokenType            string `json:"token_type,omitempty"`
}

// RefreshRequest represents a request to exchange a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}
