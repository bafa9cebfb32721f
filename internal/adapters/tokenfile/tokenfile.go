package tokenfile

// Package tokenfile stores the bearer token in a single file, the durable
// client storage for interactive use. The file holds exactly one value and
// survives process restarts until logout or a rejected token clears it.

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/TheManchineel/ludika-go/internal/ports"
)

const (
	dirMode  fs.FileMode = 0o700
	fileMode fs.FileMode = 0o600
)

// Ensure compile-time conformance.
var _ ports.TokenStore = (*Store)(nil)

// Store is a file-backed token store.
type Store struct {
	path string
}

// New builds a Store writing to path. The parent directory is created lazily
// on the first Save.
func New(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("token file path is required")
	}
	return &Store{path: path}, nil
}

// Load reads the persisted token. A missing or empty file reports ports.ErrNoToken.
func (s *Store) Load(_ context.Context) (string, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ports.ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}

	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", ports.ErrNoToken
	}
	return token, nil
}

// Save writes token to the file with owner-only permissions.
func (s *Store) Save(_ context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), dirMode); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), fileMode); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

// Delete removes the token file. An already absent file is not an error.
func (s *Store) Delete(_ context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
