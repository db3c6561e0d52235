package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bakehouse/internal/domain"
	"bakehouse/internal/repository"
)

// Status transition policies.
const (
	StatusPolicyAny     = "any"
	StatusPolicyForward = "forward"
)

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrDeliveryTooSoon     = errors.New("delivery time is below the minimum lead time")
	ErrMissingCustomerInfo = errors.New("customer name, phone and address are required")
	ErrInvalidStatus       = errors.New("unknown order status")
	ErrIllegalTransition   = errors.New("status transition not allowed by policy")
)

// OrderService defines the interface for checkout and order lifecycle.
type OrderService interface {
	Checkout(ctx context.Context, userID int64, customer domain.Customer, deliveryAt time.Time) (*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	LatestOrder(ctx context.Context, userID int64) (*domain.Order, error)
	ListUserOrders(ctx context.Context, userID int64) ([]*domain.Order, error)
	ListAllOrders(ctx context.Context) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
}

type orderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	deliveryFee float64
	minLead     time.Duration
	policy      string
	now         func() time.Time
}

// NewOrderService creates a new instance of OrderService. policy is one of
// StatusPolicyAny (default) or StatusPolicyForward.
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	deliveryFee float64,
	minLead time.Duration,
	policy string,
) OrderService {
	if policy != StatusPolicyForward {
		policy = StatusPolicyAny
	}
	return &orderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		deliveryFee: deliveryFee,
		minLead:     minLead,
		policy:      policy,
		now:         time.Now,
	}
}

// Checkout places an order from the user's cart. The delivery time must be
// at least the configured lead ahead of now; this is validated only here,
// never re-checked later. Cart lines are frozen into deep snapshots, the
// fixed delivery fee is added to the subtotal, and the cart is cleared on
// success.
func (s *orderService) Checkout(ctx context.Context, userID int64, customer domain.Customer, deliveryAt time.Time) (*domain.Order, error) {
	if strings.TrimSpace(customer.Name) == "" ||
		strings.TrimSpace(customer.Phone) == "" ||
		strings.TrimSpace(customer.Address) == "" {
		return nil, ErrMissingCustomerInfo
	}

	if deliveryAt.Before(s.now().Add(s.minLead)) {
		return nil, ErrDeliveryTooSoon
	}

	cart, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]domain.OrderItem, 0, len(cart.Items))
	for i := range cart.Items {
		line := &cart.Items[i]
		items = append(items, domain.OrderItem{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			Quantity:    line.Quantity,
			Selections:  line.Selections,
			UnitPrice:   line.UnitPrice,
			LineTotal:   line.LineTotal(),
		})
	}

	subtotal := cart.Subtotal()
	order := &domain.Order{
		UserID:      userID,
		Customer:    customer,
		DeliveryAt:  deliveryAt,
		Items:       items,
		Subtotal:    subtotal,
		DeliveryFee: s.deliveryFee,
		Total:       subtotal + s.deliveryFee,
	}

	id, err := s.orderRepo.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to clear cart after checkout: %w", err)
	}

	return s.orderRepo.FindByID(ctx, id)
}

// GetOrder retrieves an order by ID
func (s *orderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.orderRepo.FindByID(ctx, id)
}

// LatestOrder returns the user's most recently created order. Used by the
// confirmation view when no order id is supplied.
func (s *orderService) LatestOrder(ctx context.Context, userID int64) (*domain.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, repository.ErrOrderNotFound
	}
	return orders[len(orders)-1], nil
}

// ListUserOrders returns the user's orders in creation order
func (s *orderService) ListUserOrders(ctx context.Context, userID int64) ([]*domain.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

// ListAllOrders returns every order in creation order
func (s *orderService) ListAllOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.orderRepo.ListAll(ctx)
}

// UpdateStatus replaces an order's status. Under the "any" policy every
// status is reachable from every other; under "forward" only moves along
// the New → Confirmed → In Progress → Completed chain are allowed.
func (s *orderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	if s.policy == StatusPolicyForward {
		current, err := s.orderRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if status.Rank() <= current.Status.Rank() {
			return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, current.Status, status)
		}
	}

	return s.orderRepo.UpdateStatus(ctx, id, status)
}
