package client

import (
	"github.com/canteen-dev/canteenctl/internal/cli/session"
)

// LoginRequest represents the login request body
type LoginRequest struct {
	UsernameOrPhone string `json:"usernameOrPhone" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

// LoginResult is the payload of a successful login.
type LoginResult struct {
	UserID      int64        `json:"userId"`
	Username    string       `json:"username,omitempty"`
	DisplayName string       `json:"displayName,omitempty"`
	Role        session.Role `json:"role"`
	Token       string       `json:"token"`
}

// Login authenticates the user and returns the identity plus a bearer token.
// Persisting the session is the caller's job.
func (c *Client) Login(req LoginRequest) (*LoginResult, error) {
	var result LoginResult
	if err := c.post("/api/users/login", nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Username    string `json:"username" validate:"required,max=64"`
	DisplayName string `json:"displayName" validate:"required,max=100"`
	Password    string `json:"password" validate:"required,min=6,max=64"`
	Phone       string `json:"phone,omitempty" validate:"omitempty,max=32"`
}

// Register creates a new customer account.
func (c *Client) Register(req RegisterRequest) (*User, error) {
	var user User
	if err := c.post("/api/users/register", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Self returns the server's view of the authenticated user.
func (c *Client) Self() (*User, error) {
	var user User
	if err := c.get("/api/users/self", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
