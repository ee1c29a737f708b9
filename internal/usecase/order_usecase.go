package usecase

import (
	"context"

	"booknest/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// OrderItemInput is one requested line at checkout.
type OrderItemInput struct {
	BookID   uuid.UUID
	Quantity int
}

// CreateOrderInput defines the data required to place an order.
type CreateOrderInput struct {
	AccountID       uuid.UUID
	Items           []OrderItemInput
	ShippingAddress entity.ShippingAddress
	PaymentMethod   string
}

// GetOrderInput identifies an order and the acting account for the
// owner-or-admin read check.
type GetOrderInput struct {
	OrderID    uuid.UUID
	ActorID    uuid.UUID
	ActorRoles entity.Roles
}

// MarkDeliveredInput identifies the order an admin marks as delivered.
type MarkDeliveredInput struct {
	OrderID uuid.UUID
}

// OrderUsecase defines the interface for order business operations.
type OrderUsecase interface {
	// CreateOrder validates the requested lines, snapshots them and decrements
	// stock, all within one transaction.
	CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error)

	// GetOrder returns a single order, readable by its owner or an admin.
	GetOrder(ctx context.Context, input *GetOrderInput) (*entity.Order, error)

	// ListMyOrders returns the acting account's orders, newest first.
	ListMyOrders(ctx context.Context, accountID uuid.UUID) ([]*entity.Order, error)

	// ListAllOrders returns every order. Admin only.
	ListAllOrders(ctx context.Context) ([]*entity.Order, error)

	// ListSellerOrders returns orders containing at least one of the acting
	// seller's listings.
	ListSellerOrders(ctx context.Context, sellerID uuid.UUID) ([]*entity.Order, error)

	// MarkDelivered transitions an order to Delivered. Idempotent.
	MarkDelivered(ctx context.Context, input *MarkDeliveredInput) (*entity.Order, error)

	// OrderPickupQR renders a PNG QR code identifying the order for pickup,
	// readable by its owner or an admin.
	OrderPickupQR(ctx context.Context, input *GetOrderInput) ([]byte, error)
}
