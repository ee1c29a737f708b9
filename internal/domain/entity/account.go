// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the core identity entity. Every caller of the API, whether a
// reader, a seller or an administrator, is backed by exactly one Account.
type Account struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"` // Never serialized; verified via PasswordHasher only.
	Role         Role        `json:"role"`
	BusinessName string      `json:"businessName,omitempty"` // Sellers only.
	IsApproved   bool        `json:"isApproved"`
	Wishlist     []uuid.UUID `json:"wishlist"` // Ordered list of wishlisted book IDs.
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// Roles returns the roles this account carries, for token claims.
// The role field is single-valued; admins implicitly retain reader abilities
// through route-level policy, not through extra roles here.
func (a *Account) Roles() Roles {
	return Roles{a.Role}
}

// ToggleWishlist flips wishlist membership for the given book and returns the
// new membership state. Removal preserves the order of the remaining entries.
func (a *Account) ToggleWishlist(bookID uuid.UUID) bool {
	for i, id := range a.Wishlist {
		if id == bookID {
			a.Wishlist = append(a.Wishlist[:i], a.Wishlist[i+1:]...)

			return false
		}
	}

	a.Wishlist = append(a.Wishlist, bookID)

	return true
}

// RefreshToken represents a stored, hashed refresh token (one active session).
type RefreshToken struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"accountId"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}
