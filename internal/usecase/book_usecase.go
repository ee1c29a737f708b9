package usecase

import (
	"context"

	"booknest/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateBookInput defines the data required to publish a new listing.
// ActorID identifies the authenticated seller.
type CreateBookInput struct {
	ActorID     uuid.UUID
	Title       string
	Description string
	Price       float64
	Stock       int
	Authors     []string
	Genres      []string
	ImageURL    string
}

// UpdateBookInput defines the data for editing an existing listing.
// Only the owning seller or an admin may apply it.
type UpdateBookInput struct {
	ActorID     uuid.UUID
	ActorRoles  entity.Roles
	BookID      uuid.UUID
	Title       string
	Description string
	Price       float64
	Stock       int
	Authors     []string
	Genres      []string
	ImageURL    string
	IsActive    bool
}

// DeleteBookInput identifies the listing to remove and the acting account.
type DeleteBookInput struct {
	ActorID    uuid.UUID
	ActorRoles entity.Roles
	BookID     uuid.UUID
}

// BookUsecase defines the interface for book listing business operations.
type BookUsecase interface {
	// ListBooks returns active listings visible to everyone.
	ListBooks(ctx context.Context) ([]*entity.Book, error)

	// ListAllBooks returns every listing regardless of visibility. Admin only.
	ListAllBooks(ctx context.Context) ([]*entity.Book, error)

	// ListSellerBooks returns the listings owned by the acting seller.
	ListSellerBooks(ctx context.Context, sellerID uuid.UUID) ([]*entity.Book, error)

	// GetBook returns a single listing with seller info.
	GetBook(ctx context.Context, id uuid.UUID) (*entity.Book, error)

	// CreateBook publishes a new listing for an approved seller.
	CreateBook(ctx context.Context, input *CreateBookInput) (*entity.Book, error)

	// UpdateBook edits a listing owned by the actor (or any listing for admins).
	UpdateBook(ctx context.Context, input *UpdateBookInput) (*entity.Book, error)

	// DeleteBook removes a listing owned by the actor (or any listing for admins).
	DeleteBook(ctx context.Context, input *DeleteBookInput) error
}
