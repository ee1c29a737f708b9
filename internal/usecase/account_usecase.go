package usecase

import (
	"context"

	"booknest/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// UpdateProfileInput defines the mutable profile fields of an account.
// Empty fields are left unchanged.
type UpdateProfileInput struct {
	AccountID    uuid.UUID
	Name         string
	Email        string
	BusinessName string
}

// UpdatePasswordInput carries a password change request. The current
// password must verify before the new one is accepted.
type UpdatePasswordInput struct {
	AccountID       uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// ToggleWishlistInput flips wishlist membership of one book.
type ToggleWishlistInput struct {
	AccountID uuid.UUID
	BookID    uuid.UUID
}

// --- Output DTOs ---

// ToggleWishlistOutput reports the new membership state and the resulting
// wishlist, in order.
type ToggleWishlistOutput struct {
	Added    bool
	Wishlist []uuid.UUID
}

// AccountUsecase defines the interface for account and admin business operations.
type AccountUsecase interface {
	// GetAccount returns the account behind the authenticated caller.
	GetAccount(ctx context.Context, accountID uuid.UUID) (*entity.Account, error)

	// UpdateProfile changes name and email of the acting account.
	UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.Account, error)

	// UpdatePassword verifies the current password and stores a new hash.
	// All other sessions of the account are revoked.
	UpdatePassword(ctx context.Context, input *UpdatePasswordInput) error

	// GetWishlist resolves the account's wishlist into book listings, in
	// wishlist order.
	GetWishlist(ctx context.Context, accountID uuid.UUID) ([]*entity.Book, error)

	// ToggleWishlist adds the book to the wishlist or removes it if present.
	ToggleWishlist(ctx context.Context, input *ToggleWishlistInput) (*ToggleWishlistOutput, error)

	// ListAccounts returns every account. Admin only.
	ListAccounts(ctx context.Context) ([]*entity.Account, error)

	// ApproveSeller marks a seller account as approved to publish listings.
	// Admin only.
	ApproveSeller(ctx context.Context, accountID uuid.UUID) (*entity.Account, error)

	// DeleteAccount removes an account. Admin only. Orders survive with the
	// account reference nulled.
	DeleteAccount(ctx context.Context, accountID uuid.UUID) error
}
