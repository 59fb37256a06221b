package zoosdk

import (
	"context"
	"fmt"
	"net/http"
)

// ListEnclosures retrieves every enclosure.
func (c *Client) ListEnclosures(ctx context.Context) ([]Enclosure, error) {
	var enclosures []Enclosure
	if err := c.do(ctx, http.MethodGet, "/enclosure/list", nil, &enclosures); err != nil {
		return nil, err
	}
	return enclosures, nil
}

// GetEnclosure retrieves a single enclosure by id.
func (c *Client) GetEnclosure(ctx context.Context, id int64) (*Enclosure, error) {
	var enclosure Enclosure
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/enclosure/%d", id), nil, &enclosure); err != nil {
		return nil, err
	}
	return &enclosure, nil
}

// CreateEnclosure creates a new enclosure and returns the stored record.
func (c *Client) CreateEnclosure(ctx context.Context, enclosure Enclosure) (*Enclosure, error) {
	var created Enclosure
	if err := c.do(ctx, http.MethodPost, "/enclosure/add", enclosure, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateEnclosure replaces the enclosure with the given id. Note the
// backend uses PUT /enclosure/{id} here, unlike the /update/{id} style of
// the animal and user resources.
func (c *Client) UpdateEnclosure(ctx context.Context, id int64, enclosure Enclosure) (*Enclosure, error) {
	var updated Enclosure
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/enclosure/%d", id), enclosure, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteEnclosure deletes the enclosure with the given id.
func (c *Client) DeleteEnclosure(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/enclosure/%d", id), nil, nil)
}
