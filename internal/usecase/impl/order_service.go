package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "booknest/internal/delivery/context"
	"booknest/internal/domain/entity"
	domainerrors "booknest/internal/domain/errors"
	"booknest/internal/domain/repository"
	"booknest/internal/domain/service"
	"booknest/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager     repository.TransactionManager
	orderRepo     repository.OrderRepository
	bookRepo      repository.BookRepository
	qrcodeService service.QRCodeService
	logger        *slog.Logger
}

// OrderServiceParams holds dependencies for orderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	OrderRepo     repository.OrderRepository
	BookRepo      repository.BookRepository
	QRCodeService service.QRCodeService
	Logger        *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:     params.TxManager,
		orderRepo:     params.OrderRepo,
		bookRepo:      params.BookRepo,
		qrcodeService: params.QRCodeService,
		logger:        params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateOrder places an order. Every line is snapshotted from the current
// listing and its stock decremented inside one transaction, so a failed
// decrement rolls the whole order back.
func (srv *orderService) CreateOrder(ctx context.Context, input *usecase.CreateOrderInput) (*entity.Order, error) {
	srv.log(ctx).Info("Creating order", slog.Any("accountID", input.AccountID), slog.Int("items", len(input.Items)))

	if len(input.Items) == 0 {
		return nil, errors.Wrap(domainerrors.ErrEmptyOrder, "order has no items")
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, errors.Wrap(domainerrors.ErrValidationFailed, "item quantity must be positive")
		}
	}

	accountID := input.AccountID
	order := &entity.Order{
		AccountID:       &accountID,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		Status:          entity.OrderStatusProcessing,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		bookRepo := repoFactory.BookRepo()
		orderRepo := repoFactory.OrderRepo()

		var total float64
		for _, item := range input.Items {
			book, err := bookRepo.FindByID(ctx, item.BookID)
			if err != nil {
				if errors.Is(err, repository.ErrBookNotFound) {
					return domainerrors.ErrBookNotFound.WrapMessage("ordered book does not exist")
				}

				return errors.Wrap(err, "failed to load ordered book")
			}
			if !book.IsActive {
				return domainerrors.ErrBookNotFound.WrapMessage("listing is no longer available")
			}

			if err := bookRepo.DecrementStock(ctx, book.ID, item.Quantity); err != nil {
				if errors.Is(err, repository.ErrInsufficientStock) {
					return domainerrors.ErrInsufficientStock.WrapMessage("not enough stock for " + book.Title)
				}

				return errors.Wrap(err, "failed to decrement stock")
			}

			bookID := book.ID
			order.OrderItems = append(order.OrderItems, entity.OrderItem{
				Title:    book.Title,
				Quantity: item.Quantity,
				Image:    book.ImageURL,
				Price:    book.Price,
				BookID:   &bookID,
			})
			total += book.Price * float64(item.Quantity)
		}

		order.TotalPrice = total

		return orderRepo.Create(ctx, order)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute order transaction", slog.Any("accountID", input.AccountID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute order transaction")
	}

	srv.log(ctx).Debug("Order created", slog.Any("orderID", order.ID), slog.Float64("total", order.TotalPrice))

	return order, nil
}

// GetOrder returns a single order, readable by its owner or an admin.
func (srv *orderService) GetOrder(ctx context.Context, input *usecase.GetOrderInput) (*entity.Order, error) {
	return srv.loadReadableOrder(ctx, input)
}

// ListMyOrders returns the acting account's orders, newest first.
func (srv *orderService) ListMyOrders(ctx context.Context, accountID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.ListByAccount(ctx, accountID)
	if err != nil {
		srv.log(ctx).Error("Failed to list orders", slog.Any("accountID", accountID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// ListAllOrders returns every order.
func (srv *orderService) ListAllOrders(ctx context.Context) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.List(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list all orders", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list all orders")
	}

	return orders, nil
}

// ListSellerOrders returns orders containing at least one of the seller's
// listings. Snapshots of deleted listings drop out because their book
// reference is nulled.
func (srv *orderService) ListSellerOrders(ctx context.Context, sellerID uuid.UUID) ([]*entity.Order, error) {
	books, err := srv.bookRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list seller books")
	}
	if len(books) == 0 {
		return []*entity.Order{}, nil
	}

	bookIDs := make([]uuid.UUID, 0, len(books))
	for _, book := range books {
		bookIDs = append(bookIDs, book.ID)
	}

	orders, err := srv.orderRepo.ListContainingBooks(ctx, bookIDs)
	if err != nil {
		srv.log(ctx).Error("Failed to list seller orders", slog.Any("sellerID", sellerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list seller orders")
	}

	return orders, nil
}

// MarkDelivered transitions an order to Delivered. Re-delivering keeps the
// original delivery time, so the operation is idempotent.
func (srv *orderService) MarkDelivered(ctx context.Context, input *usecase.MarkDeliveredInput) (*entity.Order, error) {
	srv.log(ctx).Info("Marking order delivered", slog.Any("orderID", input.OrderID))

	var order *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		var findErr error
		order, findErr = orderRepo.FindByID(ctx, input.OrderID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound
			}

			return errors.Wrap(findErr, "failed to load order")
		}

		if order.IsDelivered() {
			return nil
		}

		order.MarkDelivered(time.Now())

		return orderRepo.Update(ctx, order)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to mark order delivered", slog.Any("orderID", input.OrderID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to mark order delivered")
	}

	return order, nil
}

// OrderPickupQR renders a PNG QR code identifying the order for pickup.
func (srv *orderService) OrderPickupQR(ctx context.Context, input *usecase.GetOrderInput) ([]byte, error) {
	order, err := srv.loadReadableOrder(ctx, input)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrcodeService.GenerateOrderQR(order.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to generate order QR code", slog.Any("orderID", order.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate order QR code")
	}

	return png, nil
}

// loadReadableOrder fetches an order and enforces the owner-or-admin read rule.
func (srv *orderService) loadReadableOrder(ctx context.Context, input *usecase.GetOrderInput) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to load order")
	}

	if !order.PlacedBy(input.ActorID) && !input.ActorRoles.Contains(entity.RoleAdmin) {
		srv.log(ctx).Warn("Read denied on foreign order", slog.Any("orderID", input.OrderID), slog.Any("actorID", input.ActorID))

		return nil, errors.Wrap(domainerrors.ErrForbidden, "order belongs to another account")
	}

	return order, nil
}
