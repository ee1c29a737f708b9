package handler

import (
	"log/slog"
	"net/http"

	"booknest/internal/delivery/http/response"
	"booknest/internal/domain/entity"
	"booknest/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler holds dependencies for order handlers.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler.
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// OrderItemRequest is one requested line at checkout
type OrderItemRequest struct {
	BookID   uuid.UUID `json:"book" validate:"required"`
	Quantity int       `json:"quantity" validate:"required,gt=0"`
}

// ShippingAddressRequest is the checkout destination
type ShippingAddressRequest struct {
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone"`
}

// CreateOrderRequest represents the request body for placing an order
type CreateOrderRequest struct {
	Items           []OrderItemRequest     `json:"orderItems" validate:"required,min=1,dive"`
	ShippingAddress ShippingAddressRequest `json:"shippingAddress" validate:"required"`
	PaymentMethod   string                 `json:"paymentMethod" validate:"required"`
}

// CreateOrder handles placing a new order.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	accountID, err := getAccountID(c)
	if err != nil {
		return err
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	items := make([]usecase.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.OrderItemInput{
			BookID:   item.BookID,
			Quantity: item.Quantity,
		})
	}

	order, err := h.orderUC.CreateOrder(c.Request().Context(), &usecase.CreateOrderInput{
		AccountID: accountID,
		Items:     items,
		ShippingAddress: entity.ShippingAddress{
			Address:    req.ShippingAddress.Address,
			City:       req.ShippingAddress.City,
			PostalCode: req.ShippingAddress.PostalCode,
			Country:    req.ShippingAddress.Country,
			Email:      req.ShippingAddress.Email,
			Phone:      req.ShippingAddress.Phone,
		},
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, order, "Order placed successfully")
}

// ListMyOrders handles listing the acting account's own orders.
func (h *OrderHandler) ListMyOrders(c echo.Context) error {
	accountID, err := getAccountID(c)
	if err != nil {
		return err
	}

	orders, err := h.orderUC.ListMyOrders(c.Request().Context(), accountID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders retrieved successfully")
}

// ListAllOrders handles the admin listing of every order.
func (h *OrderHandler) ListAllOrders(c echo.Context) error {
	orders, err := h.orderUC.ListAllOrders(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders retrieved successfully")
}

// ListSellerOrders handles listing orders containing the seller's books.
func (h *OrderHandler) ListSellerOrders(c echo.Context) error {
	sellerID, err := getAccountID(c)
	if err != nil {
		return err
	}

	orders, err := h.orderUC.ListSellerOrders(c.Request().Context(), sellerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders retrieved successfully")
}

// GetOrder handles reading a single order, owner or admin only.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	actorID, err := getAccountID(c)
	if err != nil {
		return err
	}
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), &usecase.GetOrderInput{
		OrderID:    orderID,
		ActorID:    actorID,
		ActorRoles: getRoles(c),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order, "Order retrieved successfully")
}

// MarkDelivered handles transitioning an order to Delivered.
func (h *OrderHandler) MarkDelivered(c echo.Context) error {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orderUC.MarkDelivered(c.Request().Context(), &usecase.MarkDeliveredInput{
		OrderID: orderID,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order, "Order marked as delivered")
}

// OrderPickupQR renders the pickup QR code of an order as a PNG image.
func (h *OrderHandler) OrderPickupQR(c echo.Context) error {
	actorID, err := getAccountID(c)
	if err != nil {
		return err
	}
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	png, err := h.orderUC.OrderPickupQR(c.Request().Context(), &usecase.GetOrderInput{
		OrderID:    orderID,
		ActorID:    actorID,
		ActorRoles: getRoles(c),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
