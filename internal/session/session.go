// Package session owns the authentication token pair and the user identity
// decoded from it, persisted across runs in a single durable slot.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gastoctl/gastoctl/internal/api"
	"github.com/gastoctl/gastoctl/internal/config"
)

// Claims is the user identity carried inside the access token.
type Claims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Store holds the current session. Claims are always derived from the
// access token at set time; the two can never drift apart.
type Store struct {
	mu     sync.RWMutex
	path   string
	tokens api.TokenPair
	claims *Claims
}

// DefaultPath returns the durable token slot under the config dir.
func DefaultPath() string {
	return filepath.Join(config.Dir(), "tokens.json")
}

// Open hydrates a store from the durable slot at path. A missing file means
// logged out. A stored token that no longer decodes is treated the same
// way, never as a failure: startup must not crash on a stale slot.
func Open(path string) *Store {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}

	var pair api.TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return s
	}

	claims, err := DecodeClaims(pair.Access)
	if err != nil {
		// Malformed token in the slot; drop it rather than carrying a
		// token pair with no consistent identity.
		return s
	}

	s.tokens = pair
	s.claims = claims
	return s
}

// DecodeClaims extracts the identity claims from an access token without
// validating the signature. Validation is the server's job; the client
// only needs the embedded identity.
func DecodeClaims(access string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(access, claims); err != nil {
		return nil, fmt.Errorf("session: decoding access token: %w", err)
	}
	return claims, nil
}

// Login exchanges credentials for a token pair and replaces the session
// wholesale. On any failure the prior session is left untouched and the
// server's message is returned; this boundary never returns an error.
func (s *Store) Login(ctx context.Context, client *api.Client, email, password string) (bool, string) {
	pair, err := client.Login(ctx, email, password)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Detail != "" {
			return false, apiErr.Detail
		}
		return false, "No se pudo iniciar sesión. Intenta más tarde."
	}

	if err := s.Set(pair); err != nil {
		return false, err.Error()
	}
	return true, ""
}

// Set replaces the session with a new token pair, decoding the user
// identity from the access token and persisting both together.
func (s *Store) Set(pair api.TokenPair) error {
	claims, err := DecodeClaims(pair.Access)
	if err != nil {
		return err
	}

	data, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("session: encoding tokens: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("session: creating token dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("session: saving tokens: %w", err)
	}

	s.mu.Lock()
	s.tokens = pair
	s.claims = claims
	s.mu.Unlock()
	return nil
}

// Logout clears the session and the durable slot unconditionally.
// Calling it while already logged out is a no-op.
func (s *Store) Logout() {
	s.mu.Lock()
	s.tokens = api.TokenPair{}
	s.claims = nil
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		// Best effort; in-memory state is already cleared.
		_ = err
	}
}

// LoggedIn reports whether a session is present. Presence only; token
// expiry is discovered when a protected call comes back 401.
func (s *Store) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.claims != nil
}

// AccessToken implements api.TokenSource.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens.Access
}

// User returns the decoded identity, or nil when logged out.
func (s *Store) User() *Claims {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.claims
}
