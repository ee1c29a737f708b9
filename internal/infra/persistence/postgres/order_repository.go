package postgres

import (
	"context"

	"booknest/internal/domain/entity"
	domainerrors "booknest/internal/domain/errors"
	"booknest/internal/domain/repository"
	"booknest/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the domain.OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// FindByID retrieves a single order with its line items and customer info.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items").
		Preload("Account").
		First(&orderM, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

// ListByAccount retrieves all orders placed by the given account, newest first.
func (repo *orderRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&orderModels).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders by account")
	}

	return toOrderDomainSlice(orderModels), nil
}

// List retrieves all orders with customer info joined, newest first.
func (repo *orderRepository) List(ctx context.Context) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items").
		Preload("Account").
		Order("created_at DESC").
		Find(&orderModels).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return toOrderDomainSlice(orderModels), nil
}

// ListContainingBooks retrieves orders holding at least one line item
// referencing one of the given books.
func (repo *orderRepository) ListContainingBooks(ctx context.Context, bookIDs []uuid.UUID) ([]*entity.Order, error) {
	if len(bookIDs) == 0 {
		return nil, nil
	}

	var orderModels []*model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items").
		Preload("Account").
		Where("id IN (?)", repo.db.
			Model(&model.OrderItemModel{}).
			Select("order_id").
			Where("book_id IN ?", bookIDs)).
		Order("created_at DESC").
		Find(&orderModels).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders containing books")
	}

	return toOrderDomainSlice(orderModels), nil
}

// Create persists a new order together with its line item snapshots.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrOrderNotFound.WrapMessage("order references an unknown account or book")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required order information")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("order item quantity must be positive")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt

	return nil
}

// Update persists the mutable delivery state of an existing order.
// Line item snapshots are immutable and never rewritten here.
func (repo *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", orderM.ID).
		Select("status", "is_paid", "paid_at", "delivered_at").
		Updates(orderM)

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]entity.OrderItem, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, entity.OrderItem{
			Title:    item.Title,
			Quantity: item.Quantity,
			Image:    item.Image,
			Price:    item.Price,
			BookID:   item.BookID,
		})
	}

	return &entity.Order{
		ID:         data.ID,
		AccountID:  data.AccountID,
		Customer:   toPublicAccount(data.Account),
		OrderItems: items,
		ShippingAddress: entity.ShippingAddress{
			Address:    data.ShipAddress,
			City:       data.ShipCity,
			PostalCode: data.ShipPostalCode,
			Country:    data.ShipCountry,
			Email:      data.ShipEmail,
			Phone:      data.ShipPhone,
		},
		PaymentMethod: data.PaymentMethod,
		TotalPrice:    data.TotalPrice,
		IsPaid:        data.IsPaid,
		PaidAt:        data.PaidAt,
		DeliveredAt:   data.DeliveredAt,
		Status:        entity.OrderStatus(data.Status),
		CreatedAt:     data.CreatedAt,
	}
}

func toOrderDomainSlice(data []*model.OrderModel) []*entity.Order {
	orders := make([]*entity.Order, 0, len(data))
	for _, orderM := range data {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel for persistence.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	items := make([]model.OrderItemModel, 0, len(data.OrderItems))
	for _, item := range data.OrderItems {
		items = append(items, model.OrderItemModel{
			OrderID:  data.ID,
			BookID:   item.BookID,
			Title:    item.Title,
			Quantity: item.Quantity,
			Image:    item.Image,
			Price:    item.Price,
		})
	}

	return &model.OrderModel{
		ID:             data.ID,
		AccountID:      data.AccountID,
		Status:         data.Status.String(),
		PaymentMethod:  data.PaymentMethod,
		TotalPrice:     data.TotalPrice,
		IsPaid:         data.IsPaid,
		PaidAt:         data.PaidAt,
		DeliveredAt:    data.DeliveredAt,
		ShipAddress:    data.ShippingAddress.Address,
		ShipCity:       data.ShippingAddress.City,
		ShipPostalCode: data.ShippingAddress.PostalCode,
		ShipCountry:    data.ShippingAddress.Country,
		ShipEmail:      data.ShippingAddress.Email,
		ShipPhone:      data.ShippingAddress.Phone,
		Items:          items,
	}
}
