package repository

import (
	"context"
	"errors"

	"booknest/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is a domain-specific error returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the standard operations for order persistence.
// Orders are append-mostly: line items are written once at checkout and
// only the delivery state mutates afterwards.
type OrderRepository interface {
	// FindByID retrieves a single order with its line items and customer info.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// ListByAccount retrieves all orders placed by the given account,
	// newest first.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Order, error)

	// List retrieves all orders with customer info joined, newest first.
	List(ctx context.Context) ([]*entity.Order, error)

	// ListContainingBooks retrieves orders holding at least one line item
	// referencing one of the given books.
	ListContainingBooks(ctx context.Context, bookIDs []uuid.UUID) ([]*entity.Order, error)

	// Create persists a new order together with its line item snapshots.
	Create(ctx context.Context, order *entity.Order) error

	// Update persists the mutable delivery state of an existing order.
	Update(ctx context.Context, order *entity.Order) error
}
