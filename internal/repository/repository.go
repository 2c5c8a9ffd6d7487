package repository

import (
	"context"

	"product-catalog/internal/model"
)

// ProductRepository defines the interface for product data access operations.
// Implementations return model.ErrProductNotFound for unknown ids; every other
// error is storage specific and callers are expected to pass it on unchanged.
type ProductRepository interface {
	// Read retrieves every product in the catalogue.
	Read(ctx context.Context) ([]model.Product, error)

	// ReadByID retrieves a single product by its ID.
	ReadByID(ctx context.Context, id string) (model.Product, error)

	// Create stores a new product built from the payload and returns it with its ID.
	Create(ctx context.Context, payload model.ProductInput) (model.Product, error)

	// Update applies the non-nil payload fields to an existing product.
	Update(ctx context.Context, id string, payload model.ProductInput) (model.Product, error)

	// Delete removes a product and returns the removed entity.
	Delete(ctx context.Context, id string) (model.Product, error)
}

// apply copies the non-nil payload fields onto p.
func apply(p *model.Product, payload model.ProductInput) {
	if payload.Name != nil {
		p.Name = *payload.Name
	}
	if payload.Price != nil {
		price := *payload.Price
		p.Price = &price
	}
}
