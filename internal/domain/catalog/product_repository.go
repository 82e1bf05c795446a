package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductFilter narrows a product listing
type ProductFilter struct {
	ActiveOnly bool
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll returns products newest first
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, error)

	// Create inserts a new product
	Create(ctx context.Context, product *Product) error

	// Update writes every column of an existing product
	Update(ctx context.Context, product *Product) error

	// Delete hard-deletes a product
	Delete(ctx context.Context, id uuid.UUID) error
}
