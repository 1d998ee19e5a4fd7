package ports

import (
	"context"

	"github.com/mercadito/commerce-api/internal/core/domain"
)

// ProductUpdate carries the fields of a partial product update. Nil fields
// are left untouched by the repository.
type ProductUpdate struct {
	Name        *string
	Price       *float64
	Description *string
}

// ProductRepository defines persistence operations for catalog entries.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// List returns all products in insertion order.
	List(ctx context.Context) ([]*domain.Product, error)
	// Update applies the non-nil fields of upd and returns the updated document.
	Update(ctx context.Context, id string, upd ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
