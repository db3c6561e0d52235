package repository

import (
	"context"
	"testing"

	"bakehouse/internal/domain"
)

func testLine(id string) *domain.CartItem {
	return &domain.CartItem{
		ID:        id,
		Product:   domain.Product{ID: 1, Name: "Vanilla Cake", BasePrice: 500},
		Quantity:  1,
		UnitPrice: 500,
	}
}

func TestCartQuantityFloor(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository()

	if err := repo.AddItem(ctx, 1, testLine("line-1")); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	for _, requested := range []int{0, -5, -1} {
		if err := repo.UpdateQuantity(ctx, 1, "line-1", requested); err != nil {
			t.Fatalf("UpdateQuantity(%d) failed: %v", requested, err)
		}
		cart, err := repo.Get(ctx, 1)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if cart.Items[0].Quantity != 1 {
			t.Errorf("requested %d: expected floor to 1, got %d", requested, cart.Items[0].Quantity)
		}
	}
}

func TestCartAbsentIDsAreNoOps(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository()

	if err := repo.AddItem(ctx, 1, testLine("line-1")); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	if err := repo.RemoveItem(ctx, 1, "missing"); err != nil {
		t.Errorf("RemoveItem on absent id should be a no-op, got %v", err)
	}
	if err := repo.UpdateQuantity(ctx, 1, "missing", 5); err != nil {
		t.Errorf("UpdateQuantity on absent id should be a no-op, got %v", err)
	}
	if err := repo.RemoveItem(ctx, 99, "line-1"); err != nil {
		t.Errorf("RemoveItem for user without a cart should be a no-op, got %v", err)
	}

	cart, err := repo.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 1 {
		t.Errorf("no-op operations changed the cart: %+v", cart.Items)
	}
}

func TestCartClear(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository()

	if err := repo.AddItem(ctx, 1, testLine("line-1")); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if err := repo.AddItem(ctx, 1, testLine("line-2")); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	if err := repo.Clear(ctx, 1); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	cart, err := repo.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("expected empty cart after clear, got %d lines", len(cart.Items))
	}

	// Clearing a user with no cart is fine too
	if err := repo.Clear(ctx, 99); err != nil {
		t.Errorf("Clear for user without a cart failed: %v", err)
	}
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository()

	if err := repo.AddItem(ctx, 1, testLine("line-1")); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	other, err := repo.Get(ctx, 2)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(other.Items) != 0 {
		t.Errorf("user 2 sees user 1's cart lines")
	}

	// Mutating a returned cart must not touch the stored one
	mine, err := repo.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	mine.Items[0].Quantity = 42

	again, err := repo.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if again.Items[0].Quantity != 1 {
		t.Errorf("stored cart mutated through a read snapshot")
	}
}
