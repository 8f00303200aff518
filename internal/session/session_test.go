package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/yourorg/bragboard-client/internal/apperr"
	"github.com/yourorg/bragboard-client/internal/localstate"
	"github.com/yourorg/bragboard-client/internal/model"
)

type fakeAuthAPI struct {
	loginPair    *model.TokenPair
	loginErr     error
	loginCalls   int
	registerResp *model.RegisterResponse
	registerErr  error
	refreshPair  *model.TokenPair
	refreshErr   error
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (*model.TokenPair, error) {
	f.loginCalls++
	return f.loginPair, f.loginErr
}

func (f *fakeAuthAPI) Register(ctx context.Context, req model.RegisterRequest) (*model.RegisterResponse, error) {
	return f.registerResp, f.registerErr
}

func (f *fakeAuthAPI) Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error) {
	return f.refreshPair, f.refreshErr
}

type fakeUserAPI struct {
	me      *model.User
	meErr   error
	meCalls int
}

func (f *fakeUserAPI) Me(ctx context.Context) (*model.User, error) {
	f.meCalls++
	return f.me, f.meErr
}

func (f *fakeUserAPI) UpdateMe(ctx context.Context, update model.UserUpdate) (*model.User, error) {
	if update.Name != nil {
		f.me.Name = *update.Name
	}
	if update.Department != nil {
		f.me.Department = *update.Department
	}
	return f.me, nil
}

func employee() *model.User {
	return &model.User{ID: 7, Name: "Jane Doe", Email: "jane@example.com", Department: "Engineering", Role: model.RoleEmployee}
}

// signedToken builds an unsigned-but-well-formed JWT with the given expiry.
func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "jane@example.com",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestInitializeWithoutStoredCredentials(t *testing.T) {
	creds := localstate.NewCredentials(localstate.NewMemoryStore())
	users := &fakeUserAPI{me: employee()}
	store := NewStore(&fakeAuthAPI{}, users, creds, zap.NewNop())

	if !store.Loading() {
		t.Fatal("store should start loading")
	}
	store.Initialize(context.Background())

	if store.Loading() {
		t.Fatal("loading should flip false after Initialize")
	}
	if store.User() != nil {
		t.Fatal("no credentials held, user must be nil")
	}
	if users.meCalls != 0 {
		t.Fatalf("profile fetched %d times without credentials", users.meCalls)
	}
}

func TestInitializeResolvesStoredCredential(t *testing.T) {
	creds := localstate.NewCredentials(localstate.NewMemoryStore())
	creds.SetPair(signedToken(t, time.Now().Add(time.Hour)), "ref")
	users := &fakeUserAPI{me: employee()}
	store := NewStore(&fakeAuthAPI{}, users, creds, zap.NewNop())

	store.Initialize(context.Background())

	if store.User() == nil || store.User().ID != 7 {
		t.Fatalf("User = %+v, want resolved profile", store.User())
	}
}

func TestInitializeClearsCredentialsOnProfileFailure(t *testing.T) {
	creds := localstate.NewCredentials(localstate.NewMemoryStore())
	creds.SetPair(signedToken(t, time.Now().Add(time.Hour)), "ref")
	users := &fakeUserAPI{meErr: &apperr.AuthError{Detail: "token revoked"}}
	store := NewStore(&fakeAuthAPI{}, users, creds, zap.NewNop())

	store.Initialize(context.Background())

	if store.User() != nil {
		t.Fatal("user must stay nil on resolution failure")
	}
	if _, ok := creds.AccessToken(); ok {
		t.Fatal("stored credentials must be cleared on resolution failure")
	}
	if store.Loading() {
		t.Fatal("loading must flip false even on failure")
	}
}

func TestInitializeSkipsRoundTripForExpiredToken(t *testing.T) {
	creds := localstate.NewCredentials(localstate.NewMemoryStore())
	creds.SetPair(signedToken(t, time.Now().Add(-time.Hour)), "ref")
	users := &fakeUserAPI{me: employee()}
	store := NewStore(&fakeAuthAPI{}, users, creds, zap.NewNop())

	store.Initialize(context.Background())

	if users.meCalls != 0 {
		t.Fatalf("expired token should not be resolved, got %d profile calls", users.meCalls)
	}
	if _, ok := creds.AccessToken(); ok {
		t.Fatal("expired credentials must be cleared")
	}
}

func TestLoginEstablishesSessionAndNotifies(t *testing.T) {
	creds := localstate.NewCredentials(localstate.NewMemoryStore())
	auth := &fakeAuthAPI{loginPair: &model.TokenPair{AccessToken: "acc", RefreshToken: "ref"}}
	users := &fakeUserAPI{me: employee()}
	store := NewStore(auth, users, creds, zap.NewNop())

	var changes []*model.User
	store.OnChange(func(u *model.User) { changes = append(changes, u) })

	user, err := store.Login(context.Background(), "jane@example.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != 7 {
		t.Fatalf("Login user = %+v", user)
	}
	if access, _ := creds.AccessToken(); access != "acc" {
		t.Fatalf("access token = %q, want acc", access)
	}
	if len(changes) != 1 || changes[0] == nil {
		t.Fatalf("change notifications = %v, want one signed-in event", changes)
	}
}

func TestLoginFailureLeavesStoreUntouched(t *testing.T) {
	creds := localstate.NewCredentials(localstate.NewMemoryStore())
	auth := &fakeAuthAPI{loginErr: &apperr.AuthError{Detail: "Incorrect email or password"}}
	store := NewStore(auth, &fakeUserAPI{}, creds, zap.NewNop())

	_, err := store.Login(context.Background(), "jane@example.com", "wrong")
	if !apperr.IsAuth(err) {
		t.Fatalf("err = %v, want AuthError", err)
	}
	if store.User() != nil {
		t.Fatal("user must stay nil after failed login")
	}
	if _, ok := creds.AccessToken(); ok {
		t.Fatal("no credentials may be persisted after failed login")
	}
}

func TestLoginValidatesBeforeCalling(t *testing.T) {
	auth := &fakeAuthAPI{}
	store := NewStore(auth, &fakeUserAPI{}, localstate.NewCredentials(localstate.NewMemoryStore()), zap.NewNop())

	_, err := store.Login(context.Background(), "not-an-email", "secret")
	if !apperr.IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if auth.loginCalls != 0 {
		t.Fatal("invalid input must not reach the auth collaborator")
	}
}

func TestLoginClearsPairWhenProfileFetchFails(t *testing.T) {
	creds := localstate.NewCredentials(localstate.NewMemoryStore())
	auth := &fakeAuthAPI{loginPair: &model.TokenPair{AccessToken: "acc", RefreshToken: "ref"}}
	users := &fakeUserAPI{meErr: &apperr.ServerError{StatusCode: 500}}
	store := NewStore(auth, users, creds, zap.NewNop())

	if _, err := store.Login(context.Background(), "jane@example.com", "secret"); err == nil {
		t.Fatal("expected error")
	}
	if _, ok := creds.AccessToken(); ok {
		t.Fatal("pair must be cleared when the profile fetch fails")
	}
	if store.User() != nil {
		t.Fatal("user must stay nil")
	}
}

func TestRegisterWithVerificationDoesNotEstablishSession(t *testing.T) {
	creds := localstate.NewCredentials(localstate.NewMemoryStore())
	auth := &fakeAuthAPI{registerResp: &model.RegisterResponse{RequiresVerification: true}}
	store := NewStore(auth, &fakeUserAPI{}, creds, zap.NewNop())

	resp, err := store.Register(context.Background(), model.RegisterRequest{
		Name: "Jane Doe", Email: "jane@example.com", Password: "longenough", Department: "Engineering",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !resp.RequiresVerification {
		t.Fatal("response should require verification")
	}
	if store.User() != nil {
		t.Fatal("no session may be established while verification is pending")
	}
	if _, ok := creds.AccessToken(); ok {
		t.Fatal("no credentials may be persisted while verification is pending")
	}
}

func TestRegisterLegacyTokensBehaveLikeLogin(t *testing.T) {
	creds := localstate.NewCredentials(localstate.NewMemoryStore())
	auth := &fakeAuthAPI{registerResp: &model.RegisterResponse{AccessToken: "acc", RefreshToken: "ref"}}
	users := &fakeUserAPI{me: employee()}
	store := NewStore(auth, users, creds, zap.NewNop())

	if _, err := store.Register(context.Background(), model.RegisterRequest{
		Name: "Jane Doe", Email: "jane@example.com", Password: "longenough", Department: "Engineering",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if store.User() == nil {
		t.Fatal("legacy token response should establish a session")
	}
}

func TestLogoutClearsEverythingAndNotifies(t *testing.T) {
	creds := localstate.NewCredentials(localstate.NewMemoryStore())
	auth := &fakeAuthAPI{loginPair: &model.TokenPair{AccessToken: "acc", RefreshToken: "ref"}}
	users := &fakeUserAPI{me: employee()}
	store := NewStore(auth, users, creds, zap.NewNop())

	if _, err := store.Login(context.Background(), "jane@example.com", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	var last *model.User = employee()
	store.OnChange(func(u *model.User) { last = u })

	store.Logout()

	if store.User() != nil {
		t.Fatal("user must be nil after logout")
	}
	if _, ok := creds.AccessToken(); ok {
		t.Fatal("credentials must be cleared after logout")
	}
	if last != nil {
		t.Fatal("subscribers must see the signed-out state")
	}
}

func TestUpdateProfileAdminKeepsDepartment(t *testing.T) {
	creds := localstate.NewCredentials(localstate.NewMemoryStore())
	admin := employee()
	admin.Role = model.RoleAdmin
	auth := &fakeAuthAPI{loginPair: &model.TokenPair{AccessToken: "acc", RefreshToken: "ref"}}
	users := &fakeUserAPI{me: admin}
	store := NewStore(auth, users, creds, zap.NewNop())
	if _, err := store.Login(context.Background(), "jane@example.com", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	updated, err := store.UpdateProfile(context.Background(), "Jane Q. Doe", "Sales")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Name != "Jane Q. Doe" {
		t.Fatalf("name = %q", updated.Name)
	}
	if updated.Department != "Engineering" {
		t.Fatalf("admin department changed to %q", updated.Department)
	}
}
