package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a reader's rating and comment on a book listing.
// At most one review exists per (account, book) pair.
type Review struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"user"`
	Reviewer  *Seller   `json:"reviewer,omitempty"` // Joined reviewer name for public reads.
	BookID    uuid.UUID `json:"book"`
	Rating    int       `json:"rating"` // Integer in [MinRating, MaxRating].
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// MeanRating computes the exact mean of the given reviews' ratings.
// Returns 0 for an empty slice.
func MeanRating(reviews []*Review) float64 {
	if len(reviews) == 0 {
		return 0
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}

	return float64(sum) / float64(len(reviews))
}
