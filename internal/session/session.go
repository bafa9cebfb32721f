package session

// Package session holds the client-wide authentication state: the current
// bearer token, the fetched profile, and the loading flag. One Store instance
// is constructed at startup and shared by reference with every consumer.
// Discipline: one writer, many readers — only Store methods mutate the state.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/TheManchineel/ludika-go/internal/domain/model"
	apperrors "github.com/TheManchineel/ludika-go/internal/errors"
	"github.com/TheManchineel/ludika-go/internal/ports"
)

const defaultTimeout = 30 * time.Second

// Options groups dependencies for the session Store.
type Options struct {
	// BaseURL is the API base path (e.g. "https://ludika.app/api/v1").
	BaseURL string
	// HTTPClient is the client for auth endpoints. Defaults to a 30s-timeout client.
	HTTPClient *http.Client
	// Tokens is the durable token storage. Defaults to ports.NoopTokenStore,
	// which models the non-interactive execution context.
	Tokens ports.TokenStore
	Logger *slog.Logger
}

// Store is the single source of truth for "who is logged in".
type Store struct {
	baseURL string
	client  *http.Client
	tokens  ports.TokenStore
	logger  *slog.Logger

	mu            sync.Mutex
	user          *model.User
	token         string
	authenticated bool
	loading       bool
}

// New constructs a session Store. Callers should create exactly one per process
// and share it by reference.
func New(opts Options) (*Store, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	tokens := opts.Tokens
	if tokens == nil {
		tokens = ports.NoopTokenStore{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		baseURL: baseURL,
		client:  client,
		tokens:  tokens,
		logger:  logger,
	}, nil
}

// Initialize primes the session from durable storage. A previously persisted
// token is adopted optimistically and then validated with a profile fetch; a
// rejected token self-heals to the logged-out state. Safe to call repeatedly:
// it is a no-op once a token is held, and under the no-op token store (the
// non-interactive context) it never finds anything to restore.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	if s.token != "" {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	token, err := s.tokens.Load(ctx)
	if errors.Is(err, ports.ErrNoToken) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load persisted token: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.authenticated = true
	s.mu.Unlock()

	if err := s.CurrentUser(ctx); err != nil {
		// CurrentUser already logged us out; a stale token on disk is routine.
		s.logger.InfoContext(ctx, "persisted token rejected", "error", err)
	}
	return nil
}

// Login submits credentials and, on success, stores the returned token in the
// session and in durable storage before fetching the profile. Any failure
// clears the entire session and is returned to the caller.
func (s *Store) Login(ctx context.Context, creds model.LoginCredentials) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.login(ctx, creds); err != nil {
		s.Logout(ctx)
		return err
	}
	return nil
}

func (s *Store) login(ctx context.Context, creds model.LoginCredentials) error {
	form := url.Values{}
	form.Set("username", creds.Username)
	form.Set("password", creds.Password)

	body, err := s.postForm(ctx, "/auth/login", form)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	var token model.AuthToken
	if err = json.Unmarshal(body, &token); err != nil {
		return apperrors.Internal("decode login response", err)
	}
	if token.AccessToken == "" {
		return apperrors.Internal("login response carried no token", nil)
	}

	s.mu.Lock()
	s.token = token.AccessToken
	s.authenticated = true
	s.mu.Unlock()

	if err = s.tokens.Save(ctx, token.AccessToken); err != nil {
		// The in-memory session is still usable; the token just won't survive
		// a restart.
		s.logger.WarnContext(ctx, "persist token failed", "error", err)
	}

	return s.CurrentUser(ctx)
}

// Signup registers a new account and immediately logs in with the signup email
// as username. Signup never yields a session of its own; failures clear the
// session exactly like a failed login.
func (s *Store) Signup(ctx context.Context, creds model.SignupCredentials) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.signup(ctx, creds); err != nil {
		s.Logout(ctx)
		return err
	}
	return nil
}

func (s *Store) signup(ctx context.Context, creds model.SignupCredentials) error {
	form := url.Values{}
	form.Set("email", creds.Email)
	form.Set("visible_name", creds.VisibleName)
	form.Set("password", creds.Password)

	if _, err := s.postForm(ctx, "/auth/signup", form); err != nil {
		return fmt.Errorf("signup: %w", err)
	}

	return s.login(ctx, model.LoginCredentials{
		Username: creds.Email,
		Password: creds.Password,
	})
}

// Logout unconditionally clears the token, profile, authenticated flag, and the
// durable storage entry. It never fails; storage errors are only logged.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.authenticated = false
	s.mu.Unlock()

	if err := s.tokens.Delete(ctx); err != nil {
		s.logger.WarnContext(ctx, "clear persisted token failed", "error", err)
	}
}

// CurrentUser fetches the profile for the held token. With no token it is a
// no-op. A failed fetch means the token is stale or invalid: the session is
// logged out and the error returned.
func (s *Store) CurrentUser(ctx context.Context) error {
	token, ok := s.Token()
	if !ok {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/users/me", nil)
	if err != nil {
		return apperrors.Internal("create profile request", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	body, err := s.send(req)
	if err != nil {
		s.Logout(ctx)
		return fmt.Errorf("fetch profile: %w", err)
	}

	var user model.User
	if err = json.Unmarshal(body, &user); err != nil {
		s.Logout(ctx)
		return apperrors.Internal("decode profile response", err)
	}

	s.mu.Lock()
	// A logout may have raced the fetch; only adopt the profile if the token
	// that produced it is still the current one.
	if s.token == token {
		s.user = &user
	}
	s.mu.Unlock()
	return nil
}

// Token returns the held bearer token, if any.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

// User returns a copy of the fetched profile, or nil when absent. The profile
// may be absent even while authenticated (fetch pending or failed).
func (s *Store) User() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a token is currently held. This is not proof
// of validity; the server may still reject the token.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// IsLoading reports whether a login or signup call is in flight.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// HasRole reports whether the fetched profile carries role.
func (s *Store) HasRole(role model.UserRole) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.user.Role == role
}

// IsUser reports whether the profile holds the plain user role.
func (s *Store) IsUser() bool { return s.HasRole(model.RoleUser) }

// IsContentModerator reports whether the profile holds the content moderator role.
func (s *Store) IsContentModerator() bool { return s.HasRole(model.RoleContentModerator) }

// IsAdmin reports whether the profile holds the platform administrator role.
func (s *Store) IsAdmin() bool { return s.HasRole(model.RolePlatformAdministrator) }

// IsPrivileged reports whether the profile is a moderator or administrator.
func (s *Store) IsPrivileged() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.user.IsPrivileged()
}

// CanEditGame reports whether the current user may edit g. This mirrors the
// server-side authorization check and gates UI affordances only.
func (s *Store) CanEditGame(g model.Game) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.user.CanEditGame(g)
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Store) postForm(ctx context.Context, path string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, s.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, apperrors.Internal("create request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.send(req)
}

func (s *Store) send(req *http.Request) ([]byte, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apperrors.Transient("request failed", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.logger.Warn("close response body failed", "error", cerr)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Transient("read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.FromStatus(resp.StatusCode, errorDetail(body))
	}
	return body, nil
}

// errorDetail extracts the server's "detail" field from an error body, when present.
func errorDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Detail
}
