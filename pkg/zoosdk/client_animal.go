package zoosdk

import (
	"context"
	"fmt"
	"net/http"
)

// ListAnimals retrieves every animal.
func (c *Client) ListAnimals(ctx context.Context) ([]Animal, error) {
	var animals []Animal
	if err := c.do(ctx, http.MethodGet, "/animal/list", nil, &animals); err != nil {
		return nil, err
	}
	return animals, nil
}

// GetAnimal retrieves a single animal by id.
func (c *Client) GetAnimal(ctx context.Context, id int64) (*Animal, error) {
	var animal Animal
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/animal/%d", id), nil, &animal); err != nil {
		return nil, err
	}
	return &animal, nil
}

// CreateAnimal creates a new animal and returns the stored record.
func (c *Client) CreateAnimal(ctx context.Context, animal Animal) (*Animal, error) {
	var created Animal
	if err := c.do(ctx, http.MethodPost, "/animal/add", animal, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateAnimal replaces the animal with the given id.
func (c *Client) UpdateAnimal(ctx context.Context, id int64, animal Animal) (*Animal, error) {
	var updated Animal
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/animal/update/%d", id), animal, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteAnimal deletes the animal with the given id.
func (c *Client) DeleteAnimal(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/animal/delete/%d", id), nil, nil)
}

// GroupAnimalsByCategory buckets animals for display, preserving the
// canonical category order.
func GroupAnimalsByCategory(animals []Animal) map[AnimalCategory][]Animal {
	grouped := make(map[AnimalCategory][]Animal)
	for _, a := range animals {
		grouped[a.Category] = append(grouped[a.Category], a)
	}
	return grouped
}
