package repository

import (
	"context"
	"sync"

	"bakehouse/internal/domain"
)

// CartRepository defines the interface for cart data access. Each user has
// at most one cart, created lazily on first use. Unknown item ids are
// deliberately a no-op for RemoveItem and UpdateQuantity: the cart always
// converges to a valid state.
type CartRepository interface {
	Get(ctx context.Context, userID int64) (*domain.Cart, error)
	AddItem(ctx context.Context, userID int64, item *domain.CartItem) error
	RemoveItem(ctx context.Context, userID int64, itemID string) error
	UpdateQuantity(ctx context.Context, userID int64, itemID string, quantity int) error
	Clear(ctx context.Context, userID int64) error
}

type cartRepository struct {
	mu    sync.RWMutex
	carts map[int64]*domain.Cart
}

// NewCartRepository creates a new in-memory CartRepository.
func NewCartRepository() CartRepository {
	return &cartRepository{
		carts: make(map[int64]*domain.Cart),
	}
}

// Get returns a deep copy of the user's cart, empty if none exists yet.
func (r *cartRepository) Get(ctx context.Context, userID int64) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[userID]
	if !ok {
		return &domain.Cart{UserID: userID}, nil
	}
	return cart.Clone(), nil
}

// AddItem appends a line to the user's cart. Two additions of the same
// product and selections stay as two distinct lines.
func (r *cartRepository) AddItem(ctx context.Context, userID int64, item *domain.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[userID]
	if !ok {
		cart = &domain.Cart{UserID: userID}
		r.carts[userID] = cart
	}
	cart.Items = append(cart.Items, *item.Clone())
	return nil
}

// RemoveItem drops a line by id; absent ids are a no-op.
func (r *cartRepository) RemoveItem(ctx context.Context, userID int64, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[userID]
	if !ok {
		return nil
	}
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			break
		}
	}
	return nil
}

// UpdateQuantity sets a line's quantity, silently flooring requests below 1
// to 1. Absent ids are a no-op.
func (r *cartRepository) UpdateQuantity(ctx context.Context, userID int64, itemID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if quantity < 1 {
		quantity = 1
	}

	cart, ok := r.carts[userID]
	if !ok {
		return nil
	}
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items[i].Quantity = quantity
			break
		}
	}
	return nil
}

// Clear empties the user's cart unconditionally.
func (r *cartRepository) Clear(ctx context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart, ok := r.carts[userID]; ok {
		cart.Items = nil
	}
	return nil
}
