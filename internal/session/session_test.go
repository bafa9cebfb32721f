package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/TheManchineel/ludika-go/internal/adapters/tokenfile"
	"github.com/TheManchineel/ludika-go/internal/domain/model"
	apperrors "github.com/TheManchineel/ludika-go/internal/errors"
	"github.com/TheManchineel/ludika-go/internal/mocks"
	"github.com/TheManchineel/ludika-go/internal/ports"
)

var testUserID = uuid.MustParse("7a9f8f6e-1c2d-4e3f-9a8b-0c1d2e3f4a5b")

func testProfile() model.User {
	return model.User{
		UUID:        testUserID,
		VisibleName: "Tester",
		Role:        model.RoleUser,
		Enabled:     true,
		CreatedAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func newFileStore(t *testing.T) *tokenfile.Store {
	t.Helper()
	store, err := tokenfile.New(filepath.Join(t.TempDir(), "token"))
	require.NoError(t, err)
	return store
}

func newStore(t *testing.T, baseURL string, tokens ports.TokenStore) *Store {
	t.Helper()
	store, err := New(Options{BaseURL: baseURL, Tokens: tokens})
	require.NoError(t, err)
	return store
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)
}

func TestLoginSuccessStoresTokenAndProfile(t *testing.T) {
	ctx := context.Background()
	tokens := newFileStore(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "a@b.com", r.PostForm.Get("username"))
			assert.Equal(t, "x", r.PostForm.Get("password"))
			writeJSON(t, w, http.StatusOK, model.AuthToken{AccessToken: "T1", TokenType: "bearer"})
		case "/users/me":
			assert.Equal(t, "Bearer T1", r.Header.Get("Authorization"))
			writeJSON(t, w, http.StatusOK, testProfile())
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	store := newStore(t, server.URL, tokens)
	err := store.Login(ctx, model.LoginCredentials{Username: "a@b.com", Password: "x"})
	require.NoError(t, err)

	assert.True(t, store.IsAuthenticated())
	assert.False(t, store.IsLoading())
	token, held := store.Token()
	assert.True(t, held)
	assert.Equal(t, "T1", token)
	require.NotNil(t, store.User())
	assert.Equal(t, testUserID, store.User().UUID)

	persisted, err := tokens.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "T1", persisted, "durable storage holds exactly the returned token")
}

func TestLoginRejectedClearsEverything(t *testing.T) {
	ctx := context.Background()
	tokens := newFileStore(t)
	require.NoError(t, tokens.Save(ctx, "stale-token"))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "Invalid credentials"})
	}))
	defer server.Close()

	store := newStore(t, server.URL, tokens)
	err := store.Login(ctx, model.LoginCredentials{Username: "a@b.com", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Contains(t, err.Error(), "Invalid credentials")

	assert.False(t, store.IsAuthenticated())
	assert.False(t, store.IsLoading())
	assert.Nil(t, store.User())
	_, held := store.Token()
	assert.False(t, held)

	_, err = tokens.Load(ctx)
	assert.ErrorIs(t, err, ports.ErrNoToken, "durable storage is cleared on credential failure")
}

func TestLoginProfileFetchFailureClearsSession(t *testing.T) {
	ctx := context.Background()
	tokens := newFileStore(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			writeJSON(t, w, http.StatusOK, model.AuthToken{AccessToken: "T1"})
		case "/users/me":
			writeJSON(t, w, http.StatusInternalServerError, map[string]string{"detail": "boom"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	store := newStore(t, server.URL, tokens)
	err := store.Login(ctx, model.LoginCredentials{Username: "a@b.com", Password: "x"})
	require.Error(t, err)

	assert.False(t, store.IsAuthenticated())
	_, held := store.Token()
	assert.False(t, held)
	_, err = tokens.Load(ctx)
	assert.ErrorIs(t, err, ports.ErrNoToken)
}

func TestLoginThenLogoutLeavesNothingBehind(t *testing.T) {
	ctx := context.Background()
	tokens := newFileStore(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			writeJSON(t, w, http.StatusOK, model.AuthToken{AccessToken: "T1"})
		case "/users/me":
			writeJSON(t, w, http.StatusOK, testProfile())
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	store := newStore(t, server.URL, tokens)
	require.NoError(t, store.Login(ctx, model.LoginCredentials{Username: "a@b.com", Password: "x"}))

	store.Logout(ctx)

	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.User())
	_, held := store.Token()
	assert.False(t, held)
	_, err := tokens.Load(ctx)
	assert.ErrorIs(t, err, ports.ErrNoToken)
}

func TestSignupLogsInWithSignupEmail(t *testing.T) {
	ctx := context.Background()
	var loginUsername atomic.Value

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/signup":
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "new@user.dev", r.PostForm.Get("email"))
			assert.Equal(t, "New User", r.PostForm.Get("visible_name"))
			assert.Equal(t, "hunter2", r.PostForm.Get("password"))
			writeJSON(t, w, http.StatusOK, testProfile())
		case "/auth/login":
			require.NoError(t, r.ParseForm())
			loginUsername.Store(r.PostForm.Get("username"))
			writeJSON(t, w, http.StatusOK, model.AuthToken{AccessToken: "T2"})
		case "/users/me":
			writeJSON(t, w, http.StatusOK, testProfile())
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	store := newStore(t, server.URL, newFileStore(t))
	err := store.Signup(ctx, model.SignupCredentials{
		Email:       "new@user.dev",
		VisibleName: "New User",
		Password:    "hunter2",
	})
	require.NoError(t, err)

	assert.Equal(t, "new@user.dev", loginUsername.Load(), "signup chains into login with the email as username")
	assert.True(t, store.IsAuthenticated())
}

func TestSignupFailureClearsSession(t *testing.T) {
	ctx := context.Background()
	tokens := newFileStore(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, map[string]string{"detail": "Email already registered"})
	}))
	defer server.Close()

	store := newStore(t, server.URL, tokens)
	err := store.Signup(ctx, model.SignupCredentials{Email: "dup@user.dev", Password: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email already registered")
	assert.False(t, store.IsAuthenticated())
}

func TestCurrentUserWithoutTokenIsNoOp(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	store := newStore(t, server.URL, ports.NoopTokenStore{})
	require.NoError(t, store.CurrentUser(context.Background()))

	assert.Zero(t, requests.Load(), "no network call without a token")
	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.User())
}

func TestCurrentUserStaleTokenLogsOut(t *testing.T) {
	ctx := context.Background()
	tokens := newFileStore(t)
	var rejectProfile atomic.Bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			writeJSON(t, w, http.StatusOK, model.AuthToken{AccessToken: "T1"})
		case "/users/me":
			if rejectProfile.Load() {
				writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
				return
			}
			writeJSON(t, w, http.StatusOK, testProfile())
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	store := newStore(t, server.URL, tokens)
	require.NoError(t, store.Login(ctx, model.LoginCredentials{Username: "a@b.com", Password: "x"}))

	rejectProfile.Store(true)
	err := store.CurrentUser(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))

	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.User())
	_, err = tokens.Load(ctx)
	assert.ErrorIs(t, err, ports.ErrNoToken, "stale token self-heals to logged out")
}

func TestInitializeRestoresPersistedToken(t *testing.T) {
	ctx := context.Background()
	tokens := newFileStore(t)
	require.NoError(t, tokens.Save(ctx, "T9"))

	var profileFetches atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/me", r.URL.Path)
		assert.Equal(t, "Bearer T9", r.Header.Get("Authorization"))
		profileFetches.Add(1)
		writeJSON(t, w, http.StatusOK, testProfile())
	}))
	defer server.Close()

	store := newStore(t, server.URL, tokens)
	require.NoError(t, store.Initialize(ctx))

	assert.True(t, store.IsAuthenticated())
	require.NotNil(t, store.User())
	assert.Equal(t, testUserID, store.User().UUID)

	// Repeated initialization is a no-op once a token is held.
	require.NoError(t, store.Initialize(ctx))
	assert.Equal(t, int64(1), profileFetches.Load())
}

func TestInitializeWithoutPersistenceIsNoOp(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	store := newStore(t, server.URL, ports.NoopTokenStore{})
	require.NoError(t, store.Initialize(context.Background()))

	assert.Zero(t, requests.Load())
	assert.False(t, store.IsAuthenticated())
}

func TestInitializeStaleTokenSelfHeals(t *testing.T) {
	ctx := context.Background()
	tokens := newFileStore(t)
	require.NoError(t, tokens.Save(ctx, "expired"))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
	}))
	defer server.Close()

	store := newStore(t, server.URL, tokens)
	require.NoError(t, store.Initialize(ctx), "a rejected persisted token is not an initialization failure")

	assert.False(t, store.IsAuthenticated())
	_, err := tokens.Load(ctx)
	assert.ErrorIs(t, err, ports.ErrNoToken)
}

func TestLoadingFlagSetDuringLogin(t *testing.T) {
	ctx := context.Background()
	var store *Store
	var sawLoading atomic.Bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			sawLoading.Store(store.IsLoading())
			writeJSON(t, w, http.StatusOK, model.AuthToken{AccessToken: "T1"})
		case "/users/me":
			writeJSON(t, w, http.StatusOK, testProfile())
		}
	}))
	defer server.Close()

	store = newStore(t, server.URL, newFileStore(t))
	require.NoError(t, store.Login(ctx, model.LoginCredentials{Username: "a@b.com", Password: "x"}))

	assert.True(t, sawLoading.Load(), "loading is true while the login call is in flight")
	assert.False(t, store.IsLoading(), "loading resets on exit")
}

func TestLoginSurvivesPersistenceFailure(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			writeJSON(t, w, http.StatusOK, model.AuthToken{AccessToken: "T1"})
		case "/users/me":
			writeJSON(t, w, http.StatusOK, testProfile())
		}
	}))
	defer server.Close()

	tokens := mocks.NewMockTokenStore(ctrl)
	tokens.EXPECT().Save(gomock.Any(), "T1").Return(errors.New("disk full"))

	store := newStore(t, server.URL, tokens)
	require.NoError(t, store.Login(ctx, model.LoginCredentials{Username: "a@b.com", Password: "x"}))

	assert.True(t, store.IsAuthenticated(), "an unpersistable token still yields a working session")
}

func TestRoleQueries(t *testing.T) {
	store := newStore(t, "http://unused", ports.NoopTokenStore{})

	assert.False(t, store.IsPrivileged(), "no profile means no roles")
	assert.False(t, store.HasRole(model.RoleUser))

	store.mu.Lock()
	store.user = &model.User{UUID: testUserID, Role: model.RoleContentModerator}
	store.mu.Unlock()

	assert.True(t, store.IsContentModerator())
	assert.True(t, store.IsPrivileged())
	assert.False(t, store.IsAdmin())
	assert.False(t, store.IsUser())
}

func TestCanEditGameDecision(t *testing.T) {
	store := newStore(t, "http://unused", ports.NoopTokenStore{})
	owner := testUserID
	draft := model.Game{ProposingUser: &owner, Status: model.GameStatusDraft}

	assert.False(t, store.CanEditGame(draft), "anonymous sessions edit nothing")

	store.mu.Lock()
	store.user = &model.User{UUID: testUserID, Role: model.RoleUser}
	store.mu.Unlock()

	assert.True(t, store.CanEditGame(draft))

	submitted := draft
	submitted.Status = model.GameStatusSubmitted
	assert.False(t, store.CanEditGame(submitted))

	store.mu.Lock()
	store.user.Role = model.RolePlatformAdministrator
	store.mu.Unlock()
	assert.True(t, store.CanEditGame(submitted), "administrators edit regardless of owner and status")
}
