package store

import (
	"context"
	"errors"

	"github.com/finconsgroup/zooadmin/internal/sandbox/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface for the sandbox backend.
// Concrete drivers (sqlite for now) implement this. It exposes
// sub-repositories to keep concerns tidy and testable.
type Store interface {
	Users() Users
	Animals() Animals
	Enclosures() Enclosures
	Tickets() Tickets

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	GetByID(ctx context.Context, id int64) (domain.User, error)

	// GetByUsername is used during Basic auth verification.
	GetByUsername(ctx context.Context, username string) (domain.User, error)

	List(ctx context.Context) ([]domain.User, error)

	// Create inserts a new user and returns the assigned id.
	Create(ctx context.Context, u domain.User) (int64, error)

	// Update replaces every mutable field. An empty PasswordHash keeps
	// the existing hash.
	Update(ctx context.Context, u domain.User) error

	// Delete orphans the user's animals, enclosures and tickets
	// (per schema, foreign keys are set null).
	Delete(ctx context.Context, id int64) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Animals interface {
	GetByID(ctx context.Context, id int64) (domain.Animal, error)
	List(ctx context.Context) ([]domain.Animal, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Animal, error)
	ListByEnclosure(ctx context.Context, enclosureID int64) ([]domain.Animal, error)
	Create(ctx context.Context, a domain.Animal) (int64, error)
	Update(ctx context.Context, a domain.Animal) error
	Delete(ctx context.Context, id int64) error
}

type Enclosures interface {
	GetByID(ctx context.Context, id int64) (domain.Enclosure, error)
	List(ctx context.Context) ([]domain.Enclosure, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Enclosure, error)
	Create(ctx context.Context, e domain.Enclosure) (int64, error)
	Update(ctx context.Context, e domain.Enclosure) error
	Delete(ctx context.Context, id int64) error
}

type Tickets interface {
	GetByID(ctx context.Context, id int64) (domain.Ticket, error)
	List(ctx context.Context) ([]domain.Ticket, error)

	// ListUnassigned returns the shared dashboard: tickets no operator
	// has accepted yet.
	ListUnassigned(ctx context.Context) ([]domain.Ticket, error)

	// ListByUser returns tickets accepted by the given operator.
	ListByUser(ctx context.Context, userID int64) ([]domain.Ticket, error)

	Create(ctx context.Context, t domain.Ticket) (int64, error)
	Update(ctx context.Context, t domain.Ticket) error

	// Assign sets the accepting operator.
	Assign(ctx context.Context, id, userID int64) error

	Delete(ctx context.Context, id int64) error
}
