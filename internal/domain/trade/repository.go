package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence.
// Create and CreateItems are separate steps; callers that need both to
// succeed or fail together use OrderTransactor when the store provides it.
type OrderRepository interface {
	// FindByID finds an order, optionally with its items
	FindByID(ctx context.Context, id uuid.UUID, withItems bool) (*Order, error)

	// FindAll returns every order newest first
	FindAll(ctx context.Context, withItems bool) ([]Order, error)

	// FindMetricProjections returns the minimal rows used by dashboards
	FindMetricProjections(ctx context.Context) ([]MetricProjection, error)

	// Create inserts the order row only
	Create(ctx context.Context, order *Order) error

	// CreateItems inserts line items for an existing order
	CreateItems(ctx context.Context, items []OrderItem) error

	// UpdateStatus changes the status and returns ErrNotFound for unknown ids
	UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) error

	// Delete removes the order row only
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteItems removes every item of an order
	DeleteItems(ctx context.Context, orderID uuid.UUID) error
}

// OrderTransactor writes an order and its items atomically
type OrderTransactor interface {
	CreateWithItems(ctx context.Context, order *Order) error
}

// OrphanFinder locates orders left without items by an interrupted write
type OrphanFinder interface {
	FindOrphanIDs(ctx context.Context, createdBefore time.Time) ([]uuid.UUID, error)
}
