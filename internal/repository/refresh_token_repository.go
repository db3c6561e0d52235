package repository

import (
	"context"
	"errors"
	"sync"

	"bakehouse/internal/domain"
)

var (
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenRevoked  = errors.New("refresh token has been revoked")
)

// RefreshTokenRepository defines the interface for refresh token storage.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	Revoke(ctx context.Context, token string) error
}

type refreshTokenRepository struct {
	mu     sync.RWMutex
	tokens map[string]*domain.RefreshToken
}

// NewRefreshTokenRepository creates a new in-memory RefreshTokenRepository.
func NewRefreshTokenRepository() RefreshTokenRepository {
	return &refreshTokenRepository{
		tokens: make(map[string]*domain.RefreshToken),
	}
}

// Create stores a new refresh token.
func (r *refreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *token
	r.tokens[token.Token] = &stored
	return nil
}

// FindByToken retrieves an active refresh token by its token string.
func (r *refreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	refreshToken, ok := r.tokens[token]
	if !ok {
		return nil, ErrRefreshTokenNotFound
	}
	if refreshToken.Revoked {
		return nil, ErrRefreshTokenRevoked
	}
	cp := *refreshToken
	return &cp, nil
}

// Revoke marks a refresh token as revoked.
func (r *refreshTokenRepository) Revoke(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	refreshToken, ok := r.tokens[token]
	if !ok {
		return ErrRefreshTokenNotFound
	}
	refreshToken.Revoked = true
	return nil
}
