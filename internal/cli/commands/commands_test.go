package commands

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canteen-dev/canteenctl/internal/cli/client"
	"github.com/canteen-dev/canteenctl/internal/cli/guard"
	"github.com/canteen-dev/canteenctl/internal/cli/session"
	"github.com/canteen-dev/canteenctl/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init("error", "console")
	m.Run()
}

// newTestEnv builds an env around a temp-dir session store, an in-memory
// token store and an httptest backend.
func newTestEnv(t *testing.T, handler http.HandlerFunc) *env {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.NewStoreAt(t.TempDir(), &session.MemoryTokenStore{})
	routes, err := guard.NewTable()
	require.NoError(t, err)

	api := client.New(server.URL, 0, store)
	api.SetNotifier(client.NotifierFunc(func(string) {}))

	return &env{store: store, api: api, routes: routes}
}

func TestRunLogin_PersistsSession(t *testing.T) {
	e := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/login", r.URL.Path)
		w.Write([]byte(`{"code":0,"data":{"userId":1,"displayName":"Alice","role":"CUSTOMER","token":"t1"}}`))
	})

	require.NoError(t, runLogin(e, "alice", "secret"))

	sess, err := e.store.Current()
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, int64(1), sess.UserID)
	assert.Equal(t, session.RoleCustomer, sess.Role)
	assert.Equal(t, "t1", sess.Token)
}

func TestRunLogin_RequiresUsername(t *testing.T) {
	t.Setenv("CANTEEN_USERNAME", "")
	t.Setenv("CANTEEN_PASSWORD", "")

	e := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the server")
	})

	err := runLogin(e, "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username is required")
}

func TestRunLogin_BadCredentialsLeaveNoSession(t *testing.T) {
	e := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":40100,"message":"bad credentials"}`))
	})

	err := runLogin(e, "alice", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad credentials")

	sess, err := e.store.Current()
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestRunLogout(t *testing.T) {
	e := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("logout is purely local")
	})
	require.NoError(t, e.store.Set(session.Session{UserID: 1, Role: session.RoleCustomer, Token: "t1"}))

	require.NoError(t, runLogout(e))

	sess, err := e.store.Current()
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestVisit_NotLoggedIn(t *testing.T) {
	e := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("guard must stop the command before any request")
	})

	err := runUsersList(e, client.UserListParams{Page: 1, Size: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
	assert.Contains(t, err.Error(), "/admin/users")
}

func TestVisit_WrongRoleGoesHome(t *testing.T) {
	e := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("guard must stop the command before any request")
	})
	require.NoError(t, e.store.Set(session.Session{UserID: 1, Role: session.RoleCustomer, Token: "t1"}))

	err := runUsersList(e, client.UserListParams{Page: 1, Size: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "role CUSTOMER has no access")
	assert.Contains(t, err.Error(), guard.CustomerHome)
	assert.NotContains(t, err.Error(), "login")
}

func TestVisit_CanteenStaffReachesAdminPages(t *testing.T) {
	e := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":0,"data":{"items":[],"total":0,"page":1,"size":10}}`))
	})
	require.NoError(t, e.store.Set(session.Session{UserID: 3, Role: session.RoleCanteen, Token: "t3"}))

	require.NoError(t, runOrdersByCanteen(e, 1, 1, 10, ""))
}

func TestFinish_SessionExpiredClearsStore(t *testing.T) {
	e := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	require.NoError(t, e.store.Set(session.Session{UserID: 1, Role: session.RoleCustomer, Token: "stale"}))

	err := runOrdersMy(e, 1, 10, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session expired")
	assert.Contains(t, err.Error(), "canteenctl login")

	sess, err := e.store.Current()
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestFinish_OtherFailuresKeepSession(t *testing.T) {
	e := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	require.NoError(t, e.store.Set(session.Session{UserID: 1, Role: session.RoleCustomer, Token: "t1"}))

	err := runOrdersMy(e, 1, 10, "")
	require.Error(t, err)

	sess, err := e.store.Current()
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "t1", sess.Token)
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "12.50", formatCents(1250))
	assert.Equal(t, "0.05", formatCents(5))
}
