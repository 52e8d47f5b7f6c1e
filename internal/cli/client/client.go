package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/canteen-dev/canteenctl/internal/cli/session"
	"github.com/canteen-dev/canteenctl/internal/logger"
)

// SessionReader provides read access to the current session. The client only
// reads it to attach the bearer token; it never mutates it, not even on 401.
type SessionReader interface {
	Current() (*session.Session, error)
}

// Notifier surfaces a transient, user-facing failure message. Every failed
// call is reported here in addition to being returned as an error.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// Client represents an HTTP client for the canteen ordering API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   SessionReader
	notifier   Notifier
	validate   *validator.Validate
	log        zerolog.Logger
}

// New creates a new API client. Requests are bounded by timeout; a call that
// exceeds it fails as a transport error. No call is retried automatically.
func New(baseURL string, timeout time.Duration, sessions SessionReader) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		sessions: sessions,
		notifier: NotifierFunc(func(message string) {
			log := logger.GetLogger()
			log.Warn().Msg(message)
		}),
		validate: validator.New(),
		log:      logger.GetLogger(),
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// SetNotifier replaces the default failure notifier.
func (c *Client) SetNotifier(n Notifier) {
	c.notifier = n
}

func (c *Client) get(path string, query url.Values, out any) error {
	return c.do(http.MethodGet, path, query, nil, out)
}

func (c *Client) post(path string, query url.Values, body, out any) error {
	return c.do(http.MethodPost, path, query, body, out)
}

func (c *Client) patch(path string, query url.Values, body, out any) error {
	return c.do(http.MethodPatch, path, query, body, out)
}

func (c *Client) delete(path string, query url.Values) error {
	return c.do(http.MethodDelete, path, query, nil, nil)
}

// do performs a single API call: validate the outbound payload, attach the
// bearer token when a session exists, run the request, and normalize the
// response into out.
func (c *Client) do(method, path string, query url.Values, body, out any) error {
	if body != nil {
		if err := c.validate.Struct(body); err != nil {
			return fmt.Errorf("invalid request payload: %w", err)
		}
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", ulid.Make().String())

	// Attach the current bearer token, if any. A logout while this request
	// is in flight is the caller's race to resolve, not ours.
	if sess, err := c.sessions.Current(); err == nil && sess != nil && sess.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", sess.Token))
	}

	c.log.Debug().Str("method", method).Str("url", reqURL).Msg("api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = msgNetworkError
		}
		return c.fail(&APIError{Message: msg, Err: err})
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fail(&APIError{StatusCode: resp.StatusCode, Message: msgNetworkError, Err: err})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := httpFailureMessage(resp.StatusCode, parseFields(respBody))
		return c.fail(&APIError{StatusCode: resp.StatusCode, Message: msg})
	}

	data, apiErr := normalize(respBody)
	if apiErr != nil {
		apiErr.StatusCode = resp.StatusCode
		return c.fail(apiErr)
	}

	if out == nil || len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// fail notifies the user and hands the failure back to the caller.
func (c *Client) fail(apiErr *APIError) error {
	c.log.Debug().Int("status", apiErr.StatusCode).Str("message", apiErr.Message).Msg("api request failed")
	c.notifier.Notify(apiErr.Message)
	return apiErr
}
