package client

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/canteen-dev/canteenctl/internal/cli/session"
)

func pageQuery(page, size int) url.Values {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	return query
}

// UserListParams filters the admin user listing.
type UserListParams struct {
	Page   int
	Size   int
	Role   session.Role
	Status UserStatus
}

// ListUsers returns a page of user accounts (admin only).
func (c *Client) ListUsers(params UserListParams) (*Page[User], error) {
	query := pageQuery(params.Page, params.Size)
	if params.Role != "" {
		query.Set("role", string(params.Role))
	}
	if params.Status != "" {
		query.Set("status", string(params.Status))
	}

	var page Page[User]
	if err := c.get("/api/users", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SearchUsers searches accounts by keyword (admin only).
func (c *Client) SearchUsers(keyword string, page, size int) (*Page[User], error) {
	query := pageQuery(page, size)
	query.Set("keyword", keyword)

	var result Page[User]
	if err := c.get("/api/users/search", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetUser returns a single account by id.
func (c *Client) GetUser(id int64) (*User, error) {
	var user User
	if err := c.get(fmt.Sprintf("/api/users/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserStatus locks, disables or re-activates an account.
func (c *Client) UpdateUserStatus(id int64, status UserStatus) error {
	query := url.Values{}
	query.Set("status", string(status))
	return c.patch(fmt.Sprintf("/api/users/%d/status", id), query, nil, nil)
}

// UpdateUserRole changes an account's role.
func (c *Client) UpdateUserRole(id int64, role session.Role) error {
	query := url.Values{}
	query.Set("role", string(role))
	return c.patch(fmt.Sprintf("/api/users/%d/role", id), query, nil, nil)
}
