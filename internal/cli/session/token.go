package session

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "canteenctl"

	// tokenKey is the fixed key under which the bearer token is persisted.
	tokenKey = "token"
)

// TokenStore defines the interface for token storage operations.
// This allows us to mock the keyring in tests.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Delete() error
}

// keyringTokenStore implements TokenStore using the OS keychain/credential
// manager.
type keyringTokenStore struct{}

// DefaultTokenStore is the production token store.
var DefaultTokenStore TokenStore = &keyringTokenStore{}

func (k *keyringTokenStore) Save(token string) error {
	if err := keyring.Set(keyringService, tokenKey, token); err != nil {
		return fmt.Errorf("keyring set: %w", err)
	}
	return nil
}

// Load returns the stored token, or an empty string when none is stored.
func (k *keyringTokenStore) Load() (string, error) {
	token, err := keyring.Get(keyringService, tokenKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("keyring get: %w", err)
	}
	return token, nil
}

func (k *keyringTokenStore) Delete() error {
	if err := keyring.Delete(keyringService, tokenKey); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil // Already deleted
		}
		return fmt.Errorf("keyring delete: %w", err)
	}
	return nil
}

// MemoryTokenStore is an in-memory TokenStore for tests and for environments
// without a usable keyring.
type MemoryTokenStore struct {
	token string
	set   bool
}

func (m *MemoryTokenStore) Save(token string) error {
	m.token = token
	m.set = true
	return nil
}

func (m *MemoryTokenStore) Load() (string, error) {
	if !m.set {
		return "", nil
	}
	return m.token, nil
}

func (m *MemoryTokenStore) Delete() error {
	m.token = ""
	m.set = false
	return nil
}
