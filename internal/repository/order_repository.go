package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"bakehouse/internal/domain"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderRepository defines the interface for order data access. Orders are
// append-only: they are never deleted once created.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
}

type orderRepository struct {
	mu    sync.RWMutex
	seq   int64
	byID  map[string]*domain.Order
	order []string
}

// NewOrderRepository creates a new in-memory OrderRepository.
func NewOrderRepository() OrderRepository {
	return &orderRepository{
		byID: make(map[string]*domain.Order),
	}
}

// Create stores a new order with a fresh time-derived id and status New,
// and returns the id. Ids embed a monotonic sequence so creation order is
// always distinguishable even within the same second.
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	now := time.Now()
	order.ID = fmt.Sprintf("ORD-%d-%04d", now.Unix(), r.seq)
	order.Status = domain.StatusNew
	order.CreatedAt = now

	r.byID[order.ID] = order.Clone()
	r.order = append(r.order, order.ID)
	return order.ID, nil
}

// FindByID retrieves an order by id.
func (r *orderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.byID[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return order.Clone(), nil
}

// ListByUser returns the user's orders in creation order.
func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := []*domain.Order{}
	for _, id := range r.order {
		if o := r.byID[id]; o.UserID == userID {
			orders = append(orders, o.Clone())
		}
	}
	return orders, nil
}

// ListAll returns every order in creation order.
func (r *orderRepository) ListAll(ctx context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]*domain.Order, 0, len(r.order))
	for _, id := range r.order {
		orders = append(orders, r.byID[id].Clone())
	}
	return orders, nil
}

// UpdateStatus replaces the status of the matching order.
func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.byID[id]
	if !ok {
		return ErrOrderNotFound
	}
	order.Status = status
	return nil
}
