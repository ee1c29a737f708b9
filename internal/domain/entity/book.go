package entity

import (
	"time"

	"github.com/google/uuid"
)

// Book is a listing offered for sale by a seller account.
type Book struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Authors     []string  `json:"authors"`
	Genres      []string  `json:"genres"`
	Ratings     float64   `json:"ratings"`    // Mean of all review ratings, 0 when unreviewed.
	NumReviews  int       `json:"numReviews"` // Count of reviews backing Ratings.
	SellerID    uuid.UUID `json:"sellerId"`
	Seller      *Seller   `json:"seller,omitempty"` // Joined seller info for public listings.
	ImageURL    string    `json:"imageUrl"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Seller is the public slice of an Account attached to listings and reviews.
type Seller struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	BusinessName string    `json:"businessName,omitempty"`
}

// OwnedBy reports whether the listing belongs to the given account.
func (b *Book) OwnedBy(accountID uuid.UUID) bool {
	return b.SellerID == accountID
}
