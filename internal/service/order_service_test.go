package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"bakehouse/internal/domain"
	"bakehouse/internal/repository"
)

const testLead = 25 * time.Hour

type orderFixture struct {
	orders   repository.OrderRepository
	carts    repository.CartRepository
	products repository.ProductRepository
	cartSvc  CartService
	orderSvc OrderService
}

func newOrderFixture(t *testing.T, policy string) *orderFixture {
	t.Helper()
	f := &orderFixture{
		orders:   repository.NewOrderRepository(),
		carts:    repository.NewCartRepository(),
		products: repository.NewProductRepository(),
	}
	f.cartSvc = NewCartService(f.carts, f.products)
	f.orderSvc = NewOrderService(f.orders, f.carts, 50, testLead, policy)

	if err := f.products.Create(context.Background(), vanillaCake()); err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}
	return f
}

func (f *orderFixture) fillCart(t *testing.T, userID int64) {
	t.Helper()
	if _, err := f.cartSvc.AddItem(context.Background(), userID, 1, map[string]string{"size": "Large"}, 2); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
}

func testCustomer() domain.Customer {
	return domain.Customer{Name: "Ana Cliente", Phone: "5551234", Address: "12 Oven Street"}
}

func TestCheckoutComputesTotalAndClearsCart(t *testing.T) {
	f := newOrderFixture(t, StatusPolicyAny)
	ctx := context.Background()
	f.fillCart(t, 1)

	order, err := f.orderSvc.Checkout(ctx, 1, testCustomer(), time.Now().Add(26*time.Hour))
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	if order.Subtotal != 1600 {
		t.Errorf("expected subtotal 1600, got %v", order.Subtotal)
	}
	if order.Total != 1650 {
		t.Errorf("expected total 1650 with delivery fee, got %v", order.Total)
	}
	if order.Status != domain.StatusNew {
		t.Errorf("expected status New, got %s", order.Status)
	}
	if order.ID == "" {
		t.Error("expected a fresh order id")
	}

	cart, err := f.cartSvc.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get cart failed: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("expected cart cleared after checkout, %d lines remain", len(cart.Items))
	}
}

func TestCheckoutAssignsDistinctIDs(t *testing.T) {
	f := newOrderFixture(t, StatusPolicyAny)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		f.fillCart(t, 1)
		order, err := f.orderSvc.Checkout(ctx, 1, testCustomer(), time.Now().Add(26*time.Hour))
		if err != nil {
			t.Fatalf("Checkout %d failed: %v", i, err)
		}
		if seen[order.ID] {
			t.Fatalf("duplicate order id %s", order.ID)
		}
		seen[order.ID] = true
	}
}

func TestCheckoutRejectsShortLeadTime(t *testing.T) {
	f := newOrderFixture(t, StatusPolicyAny)
	ctx := context.Background()
	f.fillCart(t, 1)

	_, err := f.orderSvc.Checkout(ctx, 1, testCustomer(), time.Now().Add(2*time.Hour))
	if !errors.Is(err, ErrDeliveryTooSoon) {
		t.Errorf("expected ErrDeliveryTooSoon, got %v", err)
	}

	// The failed checkout must not consume the cart
	cart, err := f.cartSvc.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get cart failed: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Errorf("expected cart untouched after failed checkout, got %d lines", len(cart.Items))
	}
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	f := newOrderFixture(t, StatusPolicyAny)

	_, err := f.orderSvc.Checkout(context.Background(), 1, testCustomer(), time.Now().Add(26*time.Hour))
	if !errors.Is(err, ErrEmptyCart) {
		t.Errorf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCheckoutRejectsMissingCustomerInfo(t *testing.T) {
	f := newOrderFixture(t, StatusPolicyAny)
	f.fillCart(t, 1)

	customer := testCustomer()
	customer.Phone = "  "
	_, err := f.orderSvc.Checkout(context.Background(), 1, customer, time.Now().Add(26*time.Hour))
	if !errors.Is(err, ErrMissingCustomerInfo) {
		t.Errorf("expected ErrMissingCustomerInfo, got %v", err)
	}
}

func TestStatusPolicyAny(t *testing.T) {
	f := newOrderFixture(t, StatusPolicyAny)
	ctx := context.Background()
	f.fillCart(t, 1)

	order, err := f.orderSvc.Checkout(ctx, 1, testCustomer(), time.Now().Add(26*time.Hour))
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	// Every status is reachable from every other, including reverts
	steps := []domain.OrderStatus{
		domain.StatusCompleted,
		domain.StatusNew,
		domain.StatusInProgress,
		domain.StatusConfirmed,
	}
	for _, status := range steps {
		if err := f.orderSvc.UpdateStatus(ctx, order.ID, status); err != nil {
			t.Errorf("transition to %s should be allowed under any policy: %v", status, err)
		}
	}

	if err := f.orderSvc.UpdateStatus(ctx, order.ID, domain.OrderStatus("Lost")); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus for unknown status, got %v", err)
	}
}

func TestStatusPolicyForward(t *testing.T) {
	f := newOrderFixture(t, StatusPolicyForward)
	ctx := context.Background()
	f.fillCart(t, 1)

	order, err := f.orderSvc.Checkout(ctx, 1, testCustomer(), time.Now().Add(26*time.Hour))
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	if err := f.orderSvc.UpdateStatus(ctx, order.ID, domain.StatusConfirmed); err != nil {
		t.Fatalf("forward move New -> Confirmed rejected: %v", err)
	}
	if err := f.orderSvc.UpdateStatus(ctx, order.ID, domain.StatusNew); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("expected ErrIllegalTransition for revert, got %v", err)
	}
	if err := f.orderSvc.UpdateStatus(ctx, order.ID, domain.StatusConfirmed); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("expected ErrIllegalTransition for same-status move, got %v", err)
	}
	if err := f.orderSvc.UpdateStatus(ctx, order.ID, domain.StatusCompleted); err != nil {
		t.Errorf("forward skip Confirmed -> Completed rejected: %v", err)
	}
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	f := newOrderFixture(t, StatusPolicyAny)

	err := f.orderSvc.UpdateStatus(context.Background(), "ORD-0-0000", domain.StatusConfirmed)
	if !errors.Is(err, repository.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderSnapshotImmuneToCatalogEdits(t *testing.T) {
	f := newOrderFixture(t, StatusPolicyAny)
	ctx := context.Background()
	f.fillCart(t, 1)

	order, err := f.orderSvc.Checkout(ctx, 1, testCustomer(), time.Now().Add(26*time.Hour))
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	edited := vanillaCake()
	edited.ID = 1
	edited.BasePrice = 9999
	if err := f.products.Update(ctx, edited); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if err := f.products.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	reread, err := f.orderSvc.GetOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetOrder failed: %v", err)
	}
	if reread.Total != 1650 {
		t.Errorf("historical order total changed after catalog edits: %v", reread.Total)
	}
	if reread.Items[0].UnitPrice != 800 {
		t.Errorf("historical line price changed after catalog edits: %v", reread.Items[0].UnitPrice)
	}
}

func TestLatestOrder(t *testing.T) {
	f := newOrderFixture(t, StatusPolicyAny)
	ctx := context.Background()

	if _, err := f.orderSvc.LatestOrder(ctx, 1); !errors.Is(err, repository.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound with no orders, got %v", err)
	}

	f.fillCart(t, 1)
	first, err := f.orderSvc.Checkout(ctx, 1, testCustomer(), time.Now().Add(26*time.Hour))
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	f.fillCart(t, 1)
	second, err := f.orderSvc.Checkout(ctx, 1, testCustomer(), time.Now().Add(26*time.Hour))
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	latest, err := f.orderSvc.LatestOrder(ctx, 1)
	if err != nil {
		t.Fatalf("LatestOrder failed: %v", err)
	}
	if latest.ID != second.ID {
		t.Errorf("expected latest order %s, got %s (first was %s)", second.ID, latest.ID, first.ID)
	}
}
