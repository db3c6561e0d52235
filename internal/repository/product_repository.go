package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"bakehouse/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for catalog data access.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
}

// productRepository holds the catalog in memory. byID maps product id to
// the stored record; order preserves insertion order so listings are
// stable. All reads hand out deep copies.
type productRepository struct {
	mu    sync.RWMutex
	seq   int64
	byID  map[int64]*domain.Product
	order []int64
}

// NewProductRepository creates a new in-memory ProductRepository.
func NewProductRepository() ProductRepository {
	return &productRepository{
		byID: make(map[int64]*domain.Product),
	}
}

// Create stores a new product, assigning the next sequential id.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	product.ID = r.seq
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	r.byID[product.ID] = product.Clone()
	r.order = append(r.order, product.ID)
	return nil
}

// Update replaces an existing product wholesale.
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[product.ID]
	if !ok {
		return ErrProductNotFound
	}

	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now()
	r.byID[product.ID] = product.Clone()
	return nil
}

// Delete removes a product from the catalog. Snapshots already copied into
// carts or orders are unaffected.
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ErrProductNotFound
	}

	delete(r.byID, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// FindByID retrieves a product by id.
func (r *productRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.byID[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return product.Clone(), nil
}

// List returns every product in catalog (insertion) order.
func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*domain.Product, 0, len(r.order))
	for _, id := range r.order {
		products = append(products, r.byID[id].Clone())
	}
	return products, nil
}
