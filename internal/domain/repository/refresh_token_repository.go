package repository

import (
	"context"
	"errors"

	"booknest/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific refresh token persistence errors.
var (
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
)

// RefreshTokenRepository defines the operations for session persistence.
type RefreshTokenRepository interface {
	// CreateRefreshToken persists a new refresh token, representing a session.
	CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error

	// FindRefreshTokenByHash retrieves a refresh token record by its stored
	// hash. Expired tokens surface as ErrRefreshTokenExpired.
	FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// DeleteRefreshTokenByHash removes the session identified by the hash.
	DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error

	// DeleteRefreshTokensByAccountID removes every session of an account.
	DeleteRefreshTokensByAccountID(ctx context.Context, accountID uuid.UUID) error
}
