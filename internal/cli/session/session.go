package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	configDirName = "canteenctl"

	// userFileName is the fixed key under which the current user record is
	// persisted.
	userFileName = "user.json"
)

// Role is the backend's user role enum.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleCanteen  Role = "CANTEEN"
	RoleAdmin    Role = "ADMIN"
)

// Session is the client-held record of the current authenticated identity
// and its bearer token. At most one session is active at a time.
type Session struct {
	UserID      int64  `json:"userId"`
	Username    string `json:"username,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Role        Role   `json:"role"`

	// Token is kept out of the user record file; it lives in the token store.
	Token string `json:"-"`
}

// Store persists the session across invocations: the user record as JSON
// under the user config dir, the bearer token behind a TokenStore.
// The normalizer and the route guard only ever read it; login, register and
// logout are the only writers.
type Store struct {
	dir    string
	tokens TokenStore
}

// NewStore returns a store rooted at ~/.config/canteenctl with the token
// kept in the OS keyring.
func NewStore() (*Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	dir := filepath.Join(homeDir, ".config", configDirName)
	return NewStoreAt(dir, DefaultTokenStore), nil
}

// NewStoreAt returns a store rooted at dir using the given token store.
// Tests use this with a temp dir and an in-memory token store.
func NewStoreAt(dir string, tokens TokenStore) *Store {
	return &Store{dir: dir, tokens: tokens}
}

// Current returns the active session, or nil when there is none.
// A missing or malformed user record degrades to "no session" rather than
// failing; a missing token yields a session with an empty token.
func (s *Store) Current() (*Session, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, userFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read user record: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// Corrupt record: treat as logged out
		return nil, nil
	}

	token, err := s.tokens.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}
	sess.Token = token

	return &sess, nil
}

// Set persists the session, replacing any previous one.
func (s *Store) Set(sess Session) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user record: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, userFileName), data, 0600); err != nil {
		return fmt.Errorf("failed to write user record: %w", err)
	}

	if err := s.tokens.Save(sess.Token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Clearing an absent session is a no-op.
func (s *Store) Clear() error {
	if err := os.Remove(filepath.Join(s.dir, userFileName)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove user record: %w", err)
	}
	if err := s.tokens.Delete(); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}
