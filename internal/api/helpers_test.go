package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TheManchineel/ludika-go/internal/transport"
)

// staticSession satisfies transport.Session with a fixed token. An empty
// token yields anonymous requests.
type staticSession struct {
	token string
}

func (s staticSession) Token() (string, bool) { return s.token, s.token != "" }

func (s staticSession) Initialize(context.Context) error { return nil }

func (s staticSession) Logout(context.Context) {}

func newTestGateway(t *testing.T, baseURL string) *transport.Gateway {
	t.Helper()
	gw, err := transport.New(transport.Options{
		BaseURL: baseURL,
		Session: staticSession{token: "test-token"},
	})
	require.NoError(t, err)
	return gw
}
