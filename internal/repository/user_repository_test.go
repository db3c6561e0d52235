package repository

import (
	"context"
	"errors"
	"testing"

	"bakehouse/internal/domain"
)

func TestUserCreateRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	first := &domain.User{Name: "Ana", Email: "ana@example.com", Role: domain.RoleCustomer}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	dup := &domain.User{Name: "Impostor", Email: "ana@example.com", Role: domain.RoleCustomer}
	if err := repo.Create(ctx, dup); !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}

	// Email matching is case-sensitive: a different casing is a new account
	cased := &domain.User{Name: "Ana Upper", Email: "Ana@example.com", Role: domain.RoleCustomer}
	if err := repo.Create(ctx, cased); err != nil {
		t.Fatalf("differently-cased email rejected: %v", err)
	}

	stored, err := repo.FindByEmail(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("FindByEmail failed: %v", err)
	}
	if stored.Name != "Ana" {
		t.Errorf("original account mutated by duplicate create: %+v", stored)
	}
}

func TestUserSequentialIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	for i, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		user := &domain.User{Email: email, Role: domain.RoleCustomer}
		if err := repo.Create(ctx, user); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if user.ID != int64(i+1) {
			t.Errorf("expected id %d, got %d", i+1, user.ID)
		}
	}
}

func TestUserNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	if _, err := repo.FindByEmail(ctx, "ghost@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := repo.FindByID(ctx, 42); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
