package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// AuthError indicates invalid or expired credentials. Callers holding a
// session must treat it as a signal to clear that session.
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string {
	if e.Detail == "" {
		return "authentication failed"
	}
	return e.Detail
}

// ValidationError represents a client-side or server-rejected input failure.
// It blocks submission and is shown inline next to the initiating form.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// NetworkError wraps a transport-level failure: the request never produced
// an HTTP response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServerError carries a non-2xx response that is neither an auth nor a
// validation failure.
type ServerError struct {
	StatusCode int
	Detail     string
}

func (e *ServerError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server returned status code %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status code %d: %s", e.StatusCode, e.Detail)
}

// FromResponse maps an HTTP error response to the client error taxonomy.
// The backend reports failures as {"detail": "..."}; the detail is surfaced
// when present, else the caller falls back to a generic message.
func FromResponse(statusCode int, body []byte) error {
	detail := extractDetail(body)
	switch statusCode {
	case http.StatusUnauthorized:
		return &AuthError{Detail: detail}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &ValidationError{Message: detail}
	default:
		return &ServerError{StatusCode: statusCode, Detail: detail}
	}
}

func extractDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Detail
}

// IsAuth reports whether err is an AuthError anywhere in its chain.
func IsAuth(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// IsValidation reports whether err is a ValidationError anywhere in its chain.
func IsValidation(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
