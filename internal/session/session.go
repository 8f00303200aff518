// Package session holds the authenticated user's identity and the
// login/registration/logout operations that establish or destroy it. All
// other session-scoped components key their lifecycle off this store's
// change notifications.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/yourorg/bragboard-client/internal/apperr"
	"github.com/yourorg/bragboard-client/internal/localstate"
	"github.com/yourorg/bragboard-client/internal/model"
)

// AuthAPI is the auth collaborator surface the store depends on.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*model.TokenPair, error)
	Register(ctx context.Context, req model.RegisterRequest) (*model.RegisterResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error)
}

// UserAPI is the profile collaborator surface the store depends on.
type UserAPI interface {
	Me(ctx context.Context) (*model.User, error)
	UpdateMe(ctx context.Context, update model.UserUpdate) (*model.User, error)
}

// Store resolves stored credentials into a user profile on startup and
// exposes the session lifecycle. Invariant: the in-memory user is nil iff
// no valid credential pair is held.
type Store struct {
	auth     AuthAPI
	users    UserAPI
	creds    *localstate.Credentials
	logger   *zap.Logger
	validate *validator.Validate

	mu          sync.RWMutex
	user        *model.User
	loading     bool
	loadingOnce sync.Once
	subscribers []func(*model.User)
}

// NewStore creates a session store. The store starts in the loading state
// until Initialize completes.
func NewStore(auth AuthAPI, users UserAPI, creds *localstate.Credentials, logger *zap.Logger) *Store {
	return &Store{
		auth:     auth,
		users:    users,
		creds:    creds,
		logger:   logger,
		validate: validator.New(),
		loading:  true,
	}
}

// Initialize resolves a stored credential into a profile. On any failure the
// stored credentials are cleared and the store treats the user as signed
// out. It always returns, and flips the loading flag to false exactly once.
func (s *Store) Initialize(ctx context.Context) {
	defer s.loadingOnce.Do(func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	})

	token, ok := s.creds.AccessToken()
	if !ok {
		return
	}

	// A token that is already expired cannot resolve; skip the round trip.
	if tokenExpired(token, time.Now()) {
		s.logger.Info("stored access token expired, clearing credentials")
		s.creds.Clear()
		return
	}

	user, err := s.users.Me(ctx)
	if err != nil {
		s.logger.Warn("failed to resolve stored credentials", zap.Error(err))
		s.creds.Clear()
		return
	}
	s.setUser(user)
}

// Login exchanges credentials for a token pair, persists it, and resolves the
// profile. The store is not mutated on failure.
func (s *Store) Login(ctx context.Context, email, password string) (*model.User, error) {
	req := model.LoginRequest{Email: email, Password: password}
	if err := s.validate.Struct(req); err != nil {
		return nil, &apperr.ValidationError{Message: "email and password are required"}
	}

	pair, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, pair.AccessToken, pair.RefreshToken)
}

// Register submits a registration. When the backend requires email
// verification no session is established and the response is returned for
// the caller to act on. Legacy backends return tokens instead, in which case
// registration behaves like login.
func (s *Store) Register(ctx context.Context, req model.RegisterRequest) (*model.RegisterResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, &apperr.ValidationError{Message: validationMessage(err)}
	}

	resp, err := s.auth.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.RequiresVerification {
		return resp, nil
	}
	if resp.AccessToken != "" && resp.RefreshToken != "" {
		if _, err := s.establish(ctx, resp.AccessToken, resp.RefreshToken); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// establish persists the pair and resolves the profile. If the profile fetch
// fails the pair is cleared again so the session invariant keeps holding.
func (s *Store) establish(ctx context.Context, accessToken, refreshToken string) (*model.User, error) {
	if err := s.creds.SetPair(accessToken, refreshToken); err != nil {
		return nil, err
	}
	user, err := s.users.Me(ctx)
	if err != nil {
		s.creds.Clear()
		return nil, err
	}
	s.setUser(user)
	return user, nil
}

// Refresh exchanges the stored refresh token for a new pair.
func (s *Store) Refresh(ctx context.Context) error {
	refreshToken, ok := s.creds.RefreshToken()
	if !ok {
		return &apperr.AuthError{Detail: "no refresh token held"}
	}
	pair, err := s.auth.Refresh(ctx, refreshToken)
	if err != nil {
		return err
	}
	return s.creds.SetPair(pair.AccessToken, pair.RefreshToken)
}

// Logout clears the persisted credentials and the in-memory profile
// synchronously. Dependent teardown (e.g. stopping the notification poller)
// is driven by the change notification.
func (s *Store) Logout() {
	s.creds.Clear()
	s.setUser(nil)
}

// UpdateProfile applies a name/department update. Admins cannot move
// themselves to another department.
func (s *Store) UpdateProfile(ctx context.Context, name, department string) (*model.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &apperr.ValidationError{Field: "name", Message: "name cannot be empty"}
	}

	update := model.UserUpdate{Name: &name}
	s.mu.RLock()
	isAdmin := s.user.IsAdmin()
	s.mu.RUnlock()
	if !isAdmin {
		if strings.TrimSpace(department) == "" {
			return nil, &apperr.ValidationError{Field: "department", Message: "department cannot be empty"}
		}
		update.Department = &department
	}

	user, err := s.users.UpdateMe(ctx, update)
	if err != nil {
		return nil, err
	}
	s.setUser(user)
	return user, nil
}

// User returns the signed-in user, or nil.
func (s *Store) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Active reports whether a session is established.
func (s *Store) Active() bool {
	return s.User() != nil
}

// Loading reports whether the initial credential resolution is still running.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// OnChange registers a subscriber invoked with the new user (nil on sign-out)
// after every session-state change.
func (s *Store) OnChange(fn func(*model.User)) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

func (s *Store) setUser(user *model.User) {
	s.mu.Lock()
	s.user = user
	subscribers := make([]func(*model.User), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(user)
	}
}

// tokenExpired decodes the access token without verifying its signature and
// reports whether its expiry claim lies in the past. Tokens that cannot be
// decoded are left to the server to judge.
func tokenExpired(token string, now time.Time) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(now)
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return strings.ToLower(fieldErrs[0].Field()) + " is missing or invalid"
	}
	return "invalid registration data"
}
