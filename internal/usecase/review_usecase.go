package usecase

import (
	"context"

	"booknest/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateReviewInput defines the data required to review a book.
type CreateReviewInput struct {
	AccountID uuid.UUID
	BookID    uuid.UUID
	Rating    int
	Comment   string
}

// ReviewUsecase defines the interface for review business operations.
type ReviewUsecase interface {
	// CreateReview stores a review and recomputes the book's rating aggregate
	// in the same transaction. One review per account and book.
	CreateReview(ctx context.Context, input *CreateReviewInput) (*entity.Review, error)

	// ListBookReviews returns all reviews of a book, newest first.
	ListBookReviews(ctx context.Context, bookID uuid.UUID) ([]*entity.Review, error)
}
