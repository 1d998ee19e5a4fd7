package ports

import (
	"context"

	"github.com/mercadito/commerce-api/internal/core/domain"
)

// CreateProductInput carries all data needed to create a catalog entry.
// OwnerID is taken from the authenticated session, never from the payload.
type CreateProductInput struct {
	Name        string
	Price       float64
	Description string
	OwnerID     string
}

// ProductService defines use-case operations for the catalog.
type ProductService interface {
	List(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, upd ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
