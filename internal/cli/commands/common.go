package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/canteen-dev/canteenctl/internal/cli/client"
	"github.com/canteen-dev/canteenctl/internal/cli/config"
	"github.com/canteen-dev/canteenctl/internal/cli/guard"
	"github.com/canteen-dev/canteenctl/internal/cli/session"
	"github.com/canteen-dev/canteenctl/internal/logger"
)

// env bundles the pieces every command needs: config, session store, API
// client and the route table. Tests build it by hand with a temp-dir store
// and an httptest backend.
type env struct {
	cfg    *config.Config
	store  *session.Store
	api    *client.Client
	routes *guard.Table
}

func newEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	store, err := session.NewStore()
	if err != nil {
		return nil, err
	}

	routes, err := guard.NewTable()
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:    cfg,
		store:  store,
		api:    client.New(cfg.APIBaseURL, cfg.RequestTimeout, store),
		routes: routes,
	}, nil
}

// visit runs the route guard for the destination a command stands for,
// translating a redirect decision into operator guidance. Destinations not in
// the table just require a session.
func (e *env) visit(path string) (*session.Session, error) {
	sess, err := e.store.Current()
	if err != nil {
		return nil, err
	}

	route, ok := e.routes.Resolve(path)
	if !ok {
		route = guard.Route{Path: path}
	}

	decision := guard.Decide(route, sess)
	if decision.Allowed {
		return sess, nil
	}
	if decision.Target == guard.LoginPath {
		return nil, fmt.Errorf("not logged in. Please run 'canteenctl login' first (you will land back on %s)",
			decision.Query.Get("redirect"))
	}
	return nil, fmt.Errorf("role %s has no access to %s; your pages live under %s",
		sess.Role, path, decision.Target)
}

// finish applies the session-expiry contract to a failed call: a 401 means
// the stored session is stale, so drop it and point the user at login.
func (e *env) finish(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.SessionExpired() {
		_ = e.store.Clear()
		return fmt.Errorf("%s (run 'canteenctl login' to sign in again)", apiErr.Message)
	}
	return err
}

// formatCents renders an amount in cents as yuan.
func formatCents(cents int) string {
	return fmt.Sprintf("%.2f", float64(cents)/100)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
