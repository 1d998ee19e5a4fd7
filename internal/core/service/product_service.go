package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mercadito/commerce-api/internal/core/domain"
	"github.com/mercadito/commerce-api/internal/core/ports"
)

// ProductService implements catalog CRUD. Session checks happen at the API
// boundary; by the time a mutating call lands here the caller is
// authenticated and OwnerID is trusted.
type ProductService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

// List returns all products in insertion order.
func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

// Get returns a single product by id.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// Create validates and persists a new catalog entry owned by input.OwnerID.
func (s *ProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidProduct)
	}
	if input.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", domain.ErrInvalidProduct)
	}

	product := &domain.Product{
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		OwnerID:     input.OwnerID,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Str("product_id", created.ID).Str("owner_id", created.OwnerID).Msg("product created")
	return created, nil
}

// Update overwrites only the supplied fields, after validating each one with
// the same rules as Create.
func (s *ProductService) Update(ctx context.Context, id string, upd ports.ProductUpdate) (*domain.Product, error) {
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidProduct)
	}
	if upd.Price != nil && *upd.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", domain.ErrInvalidProduct)
	}
	if upd.Name == nil && upd.Price == nil && upd.Description == nil {
		return s.repo.FindByID(ctx, id)
	}

	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", id).Msg("product updated")
	return updated, nil
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}
