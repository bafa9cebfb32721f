package transport

// Package transport dispatches API requests with uniform credential handling.
// Every outgoing call goes through Gateway.Do, which attaches the session
// bearer token and applies the bounded 401 recovery policy: clear the session,
// retry the identical request once anonymously, and redirect to login when the
// retry fails too. Callers rely on this so they never handle 401s themselves.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/TheManchineel/ludika-go/internal/errors"
	"github.com/TheManchineel/ludika-go/internal/ports"
)

// Session is the narrow view of the session store the gateway needs: read the
// token, lazily recover a persisted session, and clear it on rejection.
type Session interface {
	Token() (string, bool)
	Initialize(ctx context.Context) error
	Logout(ctx context.Context)
}

// Options groups dependencies for the Gateway.
type Options struct {
	// BaseURL is the API base path (e.g. "https://ludika.app/api/v1").
	BaseURL string
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
	// Session is required.
	Session Session
	// Navigator defaults to ports.NoopNavigator (non-interactive context).
	Navigator ports.Navigator
	Logger    *slog.Logger
}

// Gateway performs authenticated request dispatch.
type Gateway struct {
	baseURL   string
	client    *http.Client
	session   Session
	navigator ports.Navigator
	logger    *slog.Logger
}

// New constructs a Gateway. Callers should pass the process-wide session store.
func New(opts Options) (*Gateway, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if opts.Session == nil {
		return nil, errors.New("session is required")
	}

	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	navigator := opts.Navigator
	if navigator == nil {
		navigator = ports.NoopNavigator{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Gateway{
		baseURL:   baseURL,
		client:    client,
		session:   opts.Session,
		navigator: navigator,
		logger:    logger,
	}, nil
}

// Request describes one logical API call. Body must be fully materialized so
// the anonymous retry can replay it byte for byte.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Header      http.Header
	Body        []byte
	ContentType string
}

// Response is the undecoded outcome of a successful call.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Do dispatches req with the bearer token attached when one is held. A 401
// clears the session and triggers exactly one anonymous retry of the identical
// request (endpoints open to anonymous access then still succeed); if that
// retry fails for any reason the navigator is sent to the login screen once
// and the retry's error is returned. Every other failure is returned
// immediately without retry or session mutation. Hard bound: at most two HTTP
// attempts per call.
func (g *Gateway) Do(ctx context.Context, req Request) (*Response, error) {
	// Lazy session recovery: a call can arrive before the store was primed
	// from durable storage. Under the no-op store this finds nothing.
	if _, held := g.session.Token(); !held {
		if err := g.session.Initialize(ctx); err != nil {
			g.logger.WarnContext(ctx, "session recovery failed", "error", err)
		}
	}

	resp, err := g.attempt(ctx, req, true)
	if err == nil {
		return resp, nil
	}
	if !apperrors.IsUnauthorized(err) {
		return nil, err
	}

	// The token was rejected: the session is gone either way. Fall back to
	// anonymous access, once.
	g.logger.InfoContext(ctx, "authorization rejected, retrying anonymously",
		"method", req.Method, "path", req.Path)
	g.session.Logout(ctx)

	resp, retryErr := g.attempt(ctx, req, false)
	if retryErr == nil {
		return resp, nil
	}

	if navErr := g.navigator.ToLogin(ctx); navErr != nil {
		g.logger.WarnContext(ctx, "navigate to login failed", "error", navErr)
	}
	return nil, retryErr
}

// attempt performs a single HTTP exchange. withAuth controls whether the
// Authorization header is attached; it is omitted entirely when no token is held.
func (g *Gateway) attempt(ctx context.Context, req Request, withAuth bool) (*Response, error) {
	target := g.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, apperrors.Internal("create request", err)
	}
	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}
	if withAuth {
		if token, held := g.session.Token(); held {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	httpResp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, apperrors.Transient(fmt.Sprintf("%s %s failed", req.Method, req.Path), err)
	}
	defer func() {
		if cerr := httpResp.Body.Close(); cerr != nil {
			g.logger.Warn("close response body failed", "error", cerr)
		}
	}()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, apperrors.Transient("read response body", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, apperrors.FromStatus(httpResp.StatusCode, errorDetail(respBody))
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       respBody,
	}, nil
}

// GetJSON performs a GET and decodes the response into out (skipped when nil).
func (g *Gateway) GetJSON(ctx context.Context, path string, query url.Values, out any) (*Response, error) {
	return g.sendJSON(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

// PostJSON performs a POST with a JSON body and decodes the response into out.
func (g *Gateway) PostJSON(ctx context.Context, path string, in, out any) (*Response, error) {
	return g.encodeAndSend(ctx, http.MethodPost, path, in, out)
}

// PatchJSON performs a PATCH with a JSON body and decodes the response into out.
func (g *Gateway) PatchJSON(ctx context.Context, path string, in, out any) (*Response, error) {
	return g.encodeAndSend(ctx, http.MethodPatch, path, in, out)
}

// PutJSON performs a PUT with a JSON body and decodes the response into out.
func (g *Gateway) PutJSON(ctx context.Context, path string, in, out any) (*Response, error) {
	return g.encodeAndSend(ctx, http.MethodPut, path, in, out)
}

// Delete performs a DELETE, discarding any response payload.
func (g *Gateway) Delete(ctx context.Context, path string) error {
	_, err := g.Do(ctx, Request{Method: http.MethodDelete, Path: path})
	return err
}

// Upload sends r as a multipart file field and decodes the response into out.
// The multipart body is materialized up front so the 401 retry can replay it.
func (g *Gateway) Upload(
	ctx context.Context, method, path, field, filename string, r io.Reader, out any,
) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return apperrors.Internal("create multipart field", err)
	}
	if _, err = io.Copy(part, r); err != nil {
		return apperrors.Internal("copy upload payload", err)
	}
	if err = writer.Close(); err != nil {
		return apperrors.Internal("finalize multipart body", err)
	}

	_, err = g.sendJSON(ctx, Request{
		Method:      method,
		Path:        path,
		Body:        buf.Bytes(),
		ContentType: writer.FormDataContentType(),
	}, out)
	return err
}

func (g *Gateway) encodeAndSend(ctx context.Context, method, path string, in, out any) (*Response, error) {
	var body []byte
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return nil, apperrors.Internal("encode request body", err)
		}
		body = encoded
	}
	return g.sendJSON(ctx, Request{
		Method:      method,
		Path:        path,
		Body:        body,
		ContentType: "application/json",
	}, out)
}

func (g *Gateway) sendJSON(ctx context.Context, req Request, out any) (*Response, error) {
	resp, err := g.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	if out != nil && len(resp.Body) > 0 {
		if err = json.Unmarshal(resp.Body, out); err != nil {
			return nil, apperrors.Internal("decode response body", err)
		}
	}
	return resp, nil
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
