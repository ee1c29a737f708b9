package repository

import (
	"context"
	"errors"

	"booknest/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrBookNotFound is a domain-specific error returned when a book is not found.
var ErrBookNotFound = errors.New("book not found")

// BookRepository defines the standard operations for book listing persistence.
type BookRepository interface {
	// FindByID retrieves a single book by its unique ID with seller info joined.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Book, error)

	// FindByIDs retrieves the books matching the given IDs, keeping input order.
	// Missing IDs are silently skipped.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Book, error)

	// List retrieves active listings with seller info joined.
	List(ctx context.Context) ([]*entity.Book, error)

	// ListAll retrieves every listing, active or not, with seller info joined.
	ListAll(ctx context.Context) ([]*entity.Book, error)

	// ListBySeller retrieves all listings owned by the given seller.
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entity.Book, error)

	// Create persists a new book entity.
	Create(ctx context.Context, book *entity.Book) error

	// Update modifies an existing book entity.
	Update(ctx context.Context, book *entity.Book) error

	// Delete removes a book. Reviews cascade; order item snapshots survive
	// with their book reference nulled.
	Delete(ctx context.Context, id uuid.UUID) error

	// DecrementStock atomically subtracts quantity from the book's stock,
	// failing with ErrInsufficientStock when the floor would be crossed.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error

	// UpdateRating persists a recomputed rating aggregate onto the book.
	UpdateRating(ctx context.Context, id uuid.UUID, ratings float64, numReviews int) error
}

// ErrInsufficientStock is returned by DecrementStock when the requested
// quantity exceeds the remaining stock.
var ErrInsufficientStock = errors.New("insufficient stock")
