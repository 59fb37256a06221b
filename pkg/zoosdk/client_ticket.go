package zoosdk

import (
	"context"
	"fmt"
	"net/http"
)

// DashboardTickets retrieves the unassigned tickets shown on the shared
// dashboard.
func (c *Client) DashboardTickets(ctx context.Context) ([]Ticket, error) {
	var tickets []Ticket
	if err := c.do(ctx, http.MethodGet, "/ticket/dashboard", nil, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// MyTickets retrieves the tickets assigned to the calling operator.
func (c *Client) MyTickets(ctx context.Context) ([]Ticket, error) {
	var tickets []Ticket
	if err := c.do(ctx, http.MethodGet, "/ticket/my-tickets", nil, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// AllTickets retrieves every ticket. Requires ADMIN or MANAGER server-side.
func (c *Client) AllTickets(ctx context.Context) ([]Ticket, error) {
	var tickets []Ticket
	if err := c.do(ctx, http.MethodGet, "/ticket/all", nil, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// GetTicket retrieves a single ticket by id.
func (c *Client) GetTicket(ctx context.Context, id int64) (*Ticket, error) {
	var ticket Ticket
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/ticket/%d", id), nil, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// CreateTicket creates a new ticket and returns the stored record.
func (c *Client) CreateTicket(ctx context.Context, ticket Ticket) (*Ticket, error) {
	var created Ticket
	if err := c.do(ctx, http.MethodPost, "/ticket/add", ticket, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTicket replaces the ticket with the given id.
func (c *Client) UpdateTicket(ctx context.Context, id int64, ticket Ticket) (*Ticket, error) {
	var updated Ticket
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/ticket/%d", id), ticket, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTicket deletes the ticket with the given id.
func (c *Client) DeleteTicket(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/ticket/%d", id), nil, nil)
}

// AcceptTicket assigns an unassigned ticket to the calling operator. This
// is a narrow state transition (unassigned to assigned), so it is modeled
// as an explicit POST action with no body rather than a generic update.
func (c *Client) AcceptTicket(ctx context.Context, id int64) (*Ticket, error) {
	var accepted Ticket
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/ticket/%d/accept", id), nil, &accepted); err != nil {
		return nil, err
	}
	return &accepted, nil
}

// CompleteTicket closes a ticket the calling operator previously accepted.
// The backend removes completed tickets, so a subsequent read fails with
// ErrNotFound.
func (c *Client) CompleteTicket(ctx context.Context, id int64) (*Ticket, error) {
	var completed Ticket
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/ticket/%d/complete", id), nil, &completed); err != nil {
		return nil, err
	}
	return &completed, nil
}
