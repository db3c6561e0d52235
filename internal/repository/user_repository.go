package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"bakehouse/internal/domain"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user with this email already exists")
)

// UserRepository defines the interface for user data access. Email
// uniqueness is case-sensitive, matching the exact-match login contract.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}

type userRepository struct {
	mu      sync.RWMutex
	seq     int64
	byID    map[int64]*domain.User
	byEmail map[string]int64
}

// NewUserRepository creates a new in-memory UserRepository.
func NewUserRepository() UserRepository {
	return &userRepository{
		byID:    make(map[int64]*domain.User),
		byEmail: make(map[string]int64),
	}
}

// Create stores a new user, assigning the next sequential id. A duplicate
// email leaves the user list untouched.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return ErrUserAlreadyExists
	}

	r.seq++
	user.ID = r.seq
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.byID[user.ID] = &stored
	r.byEmail[user.Email] = user.ID
	return nil
}

// FindByEmail retrieves a user by exact email match.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	user := *r.byID[id]
	return &user, nil
}

// FindByID retrieves a user by id.
func (r *userRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}
