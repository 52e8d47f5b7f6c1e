package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStoreAt(t.TempDir(), &MemoryTokenStore{})
}

func TestStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	want := Session{
		UserID:      1,
		Username:    "alice",
		DisplayName: "Alice",
		Role:        RoleCustomer,
		Token:       "t1",
	}
	require.NoError(t, store.Set(want))

	got, err := store.Current()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func TestStore_NoSession(t *testing.T) {
	store := newTestStore(t)

	sess, err := store.Current()
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestStore_SetReplacesPrevious(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set(Session{UserID: 1, Role: RoleCustomer, Token: "t1"}))
	require.NoError(t, store.Set(Session{UserID: 2, Role: RoleAdmin, Token: "t2"}))

	sess, err := store.Current()
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, int64(2), sess.UserID)
	assert.Equal(t, RoleAdmin, sess.Role)
	assert.Equal(t, "t2", sess.Token)
}

func TestStore_Clear(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set(Session{UserID: 1, Role: RoleCustomer, Token: "t1"}))

	require.NoError(t, store.Clear())

	sess, err := store.Current()
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestStore_ClearWithoutSession(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Clear())
}

func TestStore_MalformedRecordDegradesToLoggedOut(t *testing.T) {
	dir := t.TempDir()
	store := NewStoreAt(dir, &MemoryTokenStore{})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user.json"), []byte("{not json"), 0600))

	sess, err := store.Current()
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestStore_TokenStaysOutOfUserRecord(t *testing.T) {
	dir := t.TempDir()
	store := NewStoreAt(dir, &MemoryTokenStore{})
	require.NoError(t, store.Set(Session{UserID: 1, Role: RoleCustomer, Token: "t1"}))

	data, err := os.ReadFile(filepath.Join(dir, "user.json"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "t1")
}

func TestMemoryTokenStore(t *testing.T) {
	tokens := &MemoryTokenStore{}

	token, err := tokens.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, tokens.Save("t1"))
	token, err = tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, "t1", token)

	require.NoError(t, tokens.Delete())
	token, err = tokens.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}
