package repository

import (
	"context"
	"errors"

	"booknest/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific review persistence errors.
var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("review already exists for this account and book")
)

// ReviewRepository defines the standard operations for review persistence.
// Reviews are write-once: no update or delete is exposed.
type ReviewRepository interface {
	// FindByAccountAndBook retrieves the review a given account left on a
	// given book, or ErrReviewNotFound.
	FindByAccountAndBook(ctx context.Context, accountID, bookID uuid.UUID) (*entity.Review, error)

	// ListByBook retrieves all reviews for a book with reviewer names joined,
	// newest first.
	ListByBook(ctx context.Context, bookID uuid.UUID) ([]*entity.Review, error)

	// Create persists a new review. The unique (account, book) constraint
	// surfaces as ErrDuplicateReview.
	Create(ctx context.Context, review *entity.Review) error
}
