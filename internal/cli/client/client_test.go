package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canteen-dev/canteenctl/internal/cli/session"
	"github.com/canteen-dev/canteenctl/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init("error", "console")
	m.Run()
}

// staticSessions serves a fixed session to the client under test.
type staticSessions struct {
	sess *session.Session
}

func (s staticSessions) Current() (*session.Session, error) {
	return s.sess, nil
}

// captureNotifier records every message the client surfaces.
type captureNotifier struct {
	messages []string
}

func (n *captureNotifier) Notify(message string) {
	n.messages = append(n.messages, message)
}

func newTestClient(t *testing.T, sess *session.Session, handler http.HandlerFunc) (*Client, *captureNotifier) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := New(server.URL, 0, staticSessions{sess: sess})
	notifier := &captureNotifier{}
	c.SetNotifier(notifier)
	return c, notifier
}

func TestClient_Login(t *testing.T) {
	c, notifier := newTestClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/users/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.UsernameOrPhone)
		assert.Equal(t, "secret", req.Password)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":0,"data":{"userId":1,"role":"CUSTOMER","token":"t1"}}`))
	})

	result, err := c.Login(LoginRequest{UsernameOrPhone: "alice", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.UserID)
	assert.Equal(t, session.RoleCustomer, result.Role)
	assert.Equal(t, "t1", result.Token)
	assert.Empty(t, notifier.messages)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	sess := &session.Session{UserID: 1, Username: "alice", Role: session.RoleCustomer, Token: "t1"}
	c, _ := newTestClient(t, sess, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer t1", r.Header.Get("Authorization"))
		w.Write([]byte(`{"code":0,"data":{"items":[],"total":0,"page":1,"size":10}}`))
	})

	_, err := c.ListCanteens(CanteenListParams{Page: 1, Size: 10})
	require.NoError(t, err)
}

func TestClient_Unauthorized(t *testing.T) {
	c, notifier := newTestClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.Self()
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, msgSessionExpired, apiErr.Message)
	assert.True(t, apiErr.SessionExpired())
	assert.Equal(t, []string{msgSessionExpired}, notifier.messages)
}

func TestClient_BackendMessagePrecedence(t *testing.T) {
	t.Run("message field", func(t *testing.T) {
		c, notifier := newTestClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"database unavailable"}`))
		})
		_, err := c.Self()
		require.Error(t, err)
		assert.Equal(t, "database unavailable", err.Error())
		assert.Equal(t, []string{"database unavailable"}, notifier.messages)
	})

	t.Run("error field", func(t *testing.T) {
		c, _ := newTestClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid credentials"}`))
		})
		_, err := c.Self()
		require.Error(t, err)
		assert.Equal(t, "invalid credentials", err.Error())
	})

	t.Run("status default when body has neither", func(t *testing.T) {
		c, _ := newTestClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"detail":"ignored"}`))
		})
		_, err := c.Self()
		require.Error(t, err)
		assert.Equal(t, msgServerBusy, err.Error())
	})
}

func TestClient_ApplicationFailureEnvelope(t *testing.T) {
	c, notifier := newTestClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"not found"}`))
	})

	_, err := c.GetCanteen(42)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "not found", apiErr.Message)
	assert.False(t, apiErr.SessionExpired())
	assert.Equal(t, []string{"not found"}, notifier.messages)
}

func TestClient_TransportError(t *testing.T) {
	// Point the client at a server that is already gone.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c := New(server.URL, 0, staticSessions{})
	notifier := &captureNotifier{}
	c.SetNotifier(notifier)

	_, err := c.Self()
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.StatusCode)
	assert.NotEmpty(t, apiErr.Message)
	assert.Len(t, notifier.messages, 1)
}

func TestClient_ValidatesPayloadBeforeSending(t *testing.T) {
	c, notifier := newTestClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the server")
	})

	_, err := c.Login(LoginRequest{UsernameOrPhone: "alice"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid request payload")
	assert.Empty(t, notifier.messages)
}

func TestClient_QueryParameters(t *testing.T) {
	sess := &session.Session{UserID: 9, Role: session.RoleAdmin, Token: "t9"}
	c, _ := newTestClient(t, sess, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "20", r.URL.Query().Get("size"))
		w.Write([]byte(`{"code":0,"data":{"items":[],"total":0,"page":2,"size":20}}`))
	})

	page, err := c.ListUsers(UserListParams{Page: 2, Size: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 20, page.Size)
}

func TestClient_PassthroughResponse(t *testing.T) {
	c, _ := newTestClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"name":"east"},{"id":2,"name":"west"}]`))
	})

	var canteens []Canteen
	require.NoError(t, c.get("/api/canteens/all", nil, &canteens))
	require.Len(t, canteens, 2)
	assert.Equal(t, "west", canteens[1].Name)
}

func TestClient_NullDataLeavesOutUntouched(t *testing.T) {
	c, _ := newTestClient(t, nil, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":0,"message":"OK","data":null}`))
	})

	var out map[string]any
	require.NoError(t, c.get("/api/anything", url.Values{}, &out))
	assert.Nil(t, out)
}
