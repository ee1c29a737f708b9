package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the authoritative lifecycle field of an order.
// The isDelivered flag exposed over the API is derived from it.
type OrderStatus string

const (
	// OrderStatusProcessing is the initial state of every order.
	OrderStatusProcessing OrderStatus = "Processing"
	// OrderStatusShipped marks an order handed to the carrier.
	OrderStatusShipped OrderStatus = "Shipped"
	// OrderStatusDelivered marks a completed delivery.
	OrderStatusDelivered OrderStatus = "Delivered"
	// OrderStatusCancelled marks a cancelled order.
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// OrderItem is an immutable snapshot of a purchased line item. Title, image
// and price are copied at purchase time and never re-derived from the book.
type OrderItem struct {
	Title    string     `json:"title"`
	Quantity int        `json:"quantity"`
	Image    string     `json:"image"`
	Price    float64    `json:"price"`
	BookID   *uuid.UUID `json:"book"` // Nil once the referenced listing is deleted.
}

// ShippingAddress holds the destination captured at checkout.
type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// Order is a snapshot of purchased line items plus shipping/payment metadata.
type Order struct {
	ID              uuid.UUID       `json:"id"`
	AccountID       *uuid.UUID      `json:"user"` // Nil once the placing account is deleted.
	Customer        *Seller         `json:"customer,omitempty"`
	OrderItems      []OrderItem     `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	TotalPrice      float64         `json:"totalPrice"`
	IsPaid          bool            `json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	Status          OrderStatus     `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// IsDelivered derives the legacy delivery flag from the authoritative status.
func (o *Order) IsDelivered() bool {
	return o.Status == OrderStatusDelivered
}

// PlacedBy reports whether the order belongs to the given account.
func (o *Order) PlacedBy(accountID uuid.UUID) bool {
	return o.AccountID != nil && *o.AccountID == accountID
}

// MarkDelivered transitions the order to Delivered at the given time.
// Calling it on an already delivered order keeps the original delivery time,
// so the operation is idempotent.
func (o *Order) MarkDelivered(now time.Time) {
	if o.Status == OrderStatusDelivered {
		return
	}
	o.Status = OrderStatusDelivered
	o.DeliveredAt = &now
}
