package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table. AccountID is nullable so orders
// survive account deletion with the reference nulled (ON DELETE SET NULL).
type OrderModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	AccountID     *uuid.UUID `gorm:"type:uuid;index"`
	Status        string     `gorm:"type:varchar(20);not null;default:'Processing'"`
	PaymentMethod string     `gorm:"type:varchar(50);not null"`
	TotalPrice    float64    `gorm:"type:numeric(10,2);not null"`
	IsPaid        bool       `gorm:"not null;default:false"`
	PaidAt        *time.Time
	DeliveredAt   *time.Time

	ShipAddress    string `gorm:"type:varchar(255);not null"`
	ShipCity       string `gorm:"type:varchar(100);not null"`
	ShipPostalCode string `gorm:"type:varchar(20);not null"`
	ShipCountry    string `gorm:"type:varchar(100);not null"`
	ShipEmail      string `gorm:"type:varchar(255)"`
	ShipPhone      string `gorm:"type:varchar(50)"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Account *AccountModel    `gorm:"foreignKey:AccountID;constraint:OnDelete:SET NULL"`
	Items   []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. Title, image and price are
// point-in-time snapshots; BookID is nullable so snapshots outlive the listing
// (ON DELETE SET NULL).
type OrderItemModel struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	OrderID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	BookID   *uuid.UUID `gorm:"type:uuid;index"`
	Title    string     `gorm:"type:varchar(255);not null"`
	Quantity int        `gorm:"not null;check:quantity > 0"`
	Image    string     `gorm:"type:varchar(512)"`
	Price    float64    `gorm:"type:numeric(10,2);not null"`

	Book *BookModel `gorm:"foreignKey:BookID;constraint:OnDelete:SET NULL"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
