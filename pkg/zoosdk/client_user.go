package zoosdk

import (
	"context"
	"fmt"
	"net/http"
)

// ListUsers retrieves every user. Requires ADMIN or MANAGER server-side.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/user/list", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser retrieves a single user by id.
func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/user/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a new user and returns the stored record.
func (c *Client) CreateUser(ctx context.Context, user UserInput) (*User, error) {
	var created User
	if err := c.do(ctx, http.MethodPost, "/user/add", user, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateUser replaces the user with the given id.
func (c *Client) UpdateUser(ctx context.Context, id int64, user UserInput) (*User, error) {
	var updated User
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/user/update/%d", id), user, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteUser deletes the user with the given id.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/user/delete/%d", id), nil, nil)
}

// GroupUsersByRole buckets users for display.
func GroupUsersByRole(users []User) map[Role][]User {
	grouped := make(map[Role][]User)
	for _, u := range users {
		grouped[u.Role] = append(grouped[u.Role], u)
	}
	return grouped
}
