package model

import (
	"time"

	"github.com/google/uuid"
)

// BookModel mirrors the 'books' table. Authors and genres are stored as JSONB
// arrays through the GORM JSON serializer.
type BookModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Price       float64   `gorm:"type:numeric(10,2);not null"`
	Stock       int       `gorm:"not null;default:0;check:stock >= 0"`
	Authors     []string  `gorm:"type:jsonb;serializer:json"`
	Genres      []string  `gorm:"type:jsonb;serializer:json"`
	Ratings     float64   `gorm:"type:numeric(4,2);not null;default:0"`
	NumReviews  int       `gorm:"not null;default:0"`
	SellerID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ImageURL    string    `gorm:"type:varchar(512)"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Seller  *AccountModel `gorm:"foreignKey:SellerID"`
	Reviews []ReviewModel `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (BookModel) TableName() string {
	return "books"
}
