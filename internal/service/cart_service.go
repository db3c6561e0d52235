package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bakehouse/internal/domain"
	"bakehouse/internal/repository"
)

var (
	ErrUnknownOptionGroup = errors.New("product does not define this option group")
	ErrUnknownOption      = errors.New("option group does not define this choice")
	ErrMissingSelection   = errors.New("required option group has no selection")
)

// CartService defines the interface for cart business logic.
type CartService interface {
	Get(ctx context.Context, userID int64) (*domain.Cart, error)
	AddItem(ctx context.Context, userID, productID int64, selections map[string]string, quantity int) (*domain.CartItem, error)
	RemoveItem(ctx context.Context, userID int64, itemID string) error
	UpdateQuantity(ctx context.Context, userID int64, itemID string, quantity int) error
	Clear(ctx context.Context, userID int64) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates a new instance of CartService
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// UnitPrice computes the customization-driven unit price: base price plus
// the extra cost of each selected option. Selections must reference groups
// and options the product defines; every non-dietary group with at least
// one option must carry a selection.
func UnitPrice(product *domain.Product, selections map[string]string) (float64, error) {
	price := product.BasePrice

	for group, choice := range selections {
		if _, ok := product.Options[group]; !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownOptionGroup, group)
		}
		opt, ok := product.FindOption(group, choice)
		if !ok {
			return 0, fmt.Errorf("%w: %s/%s", ErrUnknownOption, group, choice)
		}
		price += opt.ExtraCost
	}

	for _, group := range product.RequiredGroups() {
		if _, ok := selections[group]; !ok {
			return 0, fmt.Errorf("%w: %s", ErrMissingSelection, group)
		}
	}

	return price, nil
}

// Get returns the user's cart
func (s *cartService) Get(ctx context.Context, userID int64) (*domain.Cart, error) {
	return s.cartRepo.Get(ctx, userID)
}

// AddItem snapshots the product and appends a new line to the cart. The
// same product/selection combination added twice produces two lines.
// Quantities below 1 are floored to 1.
func (s *cartService) AddItem(ctx context.Context, userID, productID int64, selections map[string]string, quantity int) (*domain.CartItem, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	unitPrice, err := UnitPrice(product, selections)
	if err != nil {
		return nil, err
	}

	if quantity < 1 {
		quantity = 1
	}

	now := time.Now()
	item := &domain.CartItem{
		// Line id is the product id plus the creation instant, unique
		// within a cart.
		ID:         fmt.Sprintf("%d-%d", productID, now.UnixNano()),
		Product:    *product,
		Quantity:   quantity,
		Selections: selections,
		UnitPrice:  unitPrice,
		CreatedAt:  now,
	}

	if err := s.cartRepo.AddItem(ctx, userID, item); err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}
	return item, nil
}

// RemoveItem drops a line; an unknown id is a successful no-op.
func (s *cartService) RemoveItem(ctx context.Context, userID int64, itemID string) error {
	return s.cartRepo.RemoveItem(ctx, userID, itemID)
}

// UpdateQuantity sets a line's quantity, flooring below-1 requests to 1.
func (s *cartService) UpdateQuantity(ctx context.Context, userID int64, itemID string, quantity int) error {
	return s.cartRepo.UpdateQuantity(ctx, userID, itemID, quantity)
}

// Clear empties the cart
func (s *cartService) Clear(ctx context.Context, userID int64) error {
	return s.cartRepo.Clear(ctx, userID)
}
