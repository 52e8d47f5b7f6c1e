package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canteen-dev/canteenctl/internal/cli/session"
)

func TestDecide(t *testing.T) {
	customer := &session.Session{UserID: 1, Role: session.RoleCustomer}
	admin := &session.Session{UserID: 2, Role: session.RoleAdmin}
	canteen := &session.Session{UserID: 3, Role: session.RoleCanteen}

	adminRoute := Route{Path: "/admin/users", Roles: []session.Role{session.RoleAdmin, session.RoleCanteen}}
	customerRoute := Route{Path: "/user/orders", Roles: []session.Role{session.RoleCustomer}}

	t.Run("public destination is allowed without a session", func(t *testing.T) {
		d := Decide(Route{Path: "/login", Public: true}, nil)
		assert.True(t, d.Allowed)
	})

	t.Run("public destination is allowed with any session", func(t *testing.T) {
		d := Decide(Route{Path: "/register", Public: true}, customer)
		assert.True(t, d.Allowed)
	})

	t.Run("no session redirects to login with the original path", func(t *testing.T) {
		d := Decide(customerRoute, nil)
		assert.False(t, d.Allowed)
		assert.Equal(t, LoginPath, d.Target)
		assert.Equal(t, "/user/orders", d.Query.Get("redirect"))
	})

	t.Run("customer at an admin destination goes home, not to login", func(t *testing.T) {
		d := Decide(adminRoute, customer)
		assert.False(t, d.Allowed)
		assert.Equal(t, CustomerHome, d.Target)
	})

	t.Run("admin at a customer destination goes to the dashboard", func(t *testing.T) {
		d := Decide(customerRoute, admin)
		assert.False(t, d.Allowed)
		assert.Equal(t, AdminHome, d.Target)
	})

	t.Run("canteen staff shares the admin area", func(t *testing.T) {
		d := Decide(adminRoute, canteen)
		assert.True(t, d.Allowed)
	})

	t.Run("matching role is allowed", func(t *testing.T) {
		d := Decide(customerRoute, customer)
		assert.True(t, d.Allowed)
	})

	t.Run("no role set means any session suffices", func(t *testing.T) {
		d := Decide(Route{Path: "/orders/7"}, customer)
		assert.True(t, d.Allowed)

		d = Decide(Route{Path: "/orders/7"}, nil)
		assert.False(t, d.Allowed)
		assert.Equal(t, LoginPath, d.Target)
	})
}

func TestHomeFor(t *testing.T) {
	assert.Equal(t, CustomerHome, HomeFor(session.RoleCustomer))
	assert.Equal(t, AdminHome, HomeFor(session.RoleAdmin))
	assert.Equal(t, AdminHome, HomeFor(session.RoleCanteen))
}

func TestTableResolve(t *testing.T) {
	table, err := NewTable()
	require.NoError(t, err)

	t.Run("exact match", func(t *testing.T) {
		route, ok := table.Resolve("/login")
		require.True(t, ok)
		assert.True(t, route.Public)
	})

	t.Run("nested path inherits the enclosing descriptor", func(t *testing.T) {
		route, ok := table.Resolve("/admin/users/42")
		require.True(t, ok)
		assert.False(t, route.Public)
		assert.Contains(t, route.Roles, session.RoleAdmin)
	})

	t.Run("resolved route keeps the requested path", func(t *testing.T) {
		route, ok := table.Resolve("/user/orders")
		require.True(t, ok)
		assert.Equal(t, "/user/orders", route.Path)
		assert.Equal(t, []session.Role{session.RoleCustomer}, route.Roles)

		// A login redirect must carry the full requested path back.
		d := Decide(route, nil)
		assert.Equal(t, "/user/orders", d.Query.Get("redirect"))
	})

	t.Run("unknown path has no descriptor", func(t *testing.T) {
		_, ok := table.Resolve("/nowhere")
		assert.False(t, ok)
	})
}
