package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// It is an exported type so it can be used by the GORM Gen tool from other packages.
type AccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'reader'"`
	BusinessName string    `gorm:"type:varchar(100)"`
	IsApproved   bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	WishlistItems []WishlistItemModel `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	RefreshTokens []RefreshTokenModel `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

// WishlistItemModel mirrors the 'wishlist_items' join table. Position keeps
// the wishlist ordered by insertion so toggling preserves the remaining order.
type WishlistItemModel struct {
	AccountID uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position  int       `gorm:"not null"`
	CreatedAt time.Time

	Book *BookModel `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (WishlistItemModel) TableName() string {
	return "wishlist_items"
}

// RefreshTokenModel mirrors the 'refresh_tokens' table. UUID columns align with PostgreSQL schema.
type RefreshTokenModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index"`
	TokenHash string    `gorm:"type:varchar(255);unique;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}
