package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bakehouse/internal/domain"
	"bakehouse/internal/repository"
)

var (
	ErrUnknownCategory = errors.New("unknown product category")
	ErrInvalidPrice    = errors.New("base price must be non-negative")
)

// CatalogService defines the interface for catalog browsing and admin
// product management.
type CatalogService interface {
	ListProducts(ctx context.Context, category, search string) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) error
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	Categories() []string
}

type catalogService struct {
	productRepo repository.ProductRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogService{productRepo: productRepo}
}

// ListProducts returns the catalog filtered by category and search term.
// The two filters are independent predicates intersected; catalog order is
// preserved. An empty category or the "all" sentinel disables the category
// filter; the search term matches name and description case-insensitively.
func (s *catalogService) ListProducts(ctx context.Context, category, search string) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	term := strings.ToLower(strings.TrimSpace(search))
	filtered := []*domain.Product{}
	for _, p := range products {
		if !matchesCategory(p, category) {
			continue
		}
		if term != "" && !matchesSearch(p, term) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

func matchesCategory(p *domain.Product, category string) bool {
	if category == "" || strings.EqualFold(category, domain.CategoryAll) {
		return true
	}
	return p.Category == category
}

func matchesSearch(p *domain.Product, term string) bool {
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

// GetProduct retrieves a product by ID
func (s *catalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// CreateProduct adds a new product to the catalog
func (s *catalogService) CreateProduct(ctx context.Context, product *domain.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	return s.productRepo.Create(ctx, product)
}

// UpdateProduct replaces an existing product. Snapshots already held by
// carts or orders are not affected.
func (s *catalogService) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	return s.productRepo.Update(ctx, product)
}

// DeleteProduct removes a product from the catalog
func (s *catalogService) DeleteProduct(ctx context.Context, id int64) error {
	return s.productRepo.Delete(ctx, id)
}

// Categories returns the fixed category tags
func (s *catalogService) Categories() []string {
	return append([]string(nil), domain.Categories...)
}

func validateProduct(product *domain.Product) error {
	if !domain.ValidCategory(product.Category) {
		return ErrUnknownCategory
	}
	if product.BasePrice < 0 {
		return ErrInvalidPrice
	}
	for _, opts := range product.Options {
		for _, opt := range opts {
			if opt.ExtraCost < 0 {
				return ErrInvalidPrice
			}
		}
	}
	return nil
}
