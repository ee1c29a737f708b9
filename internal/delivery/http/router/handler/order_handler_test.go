package handler

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"booknest/internal/delivery/http/middleware"
	"booknest/internal/domain/entity"
	domainerrors "booknest/internal/domain/errors"
	mockUC "booknest/internal/mocks/usecase"
	"booknest/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOrderHandler(uc usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{
		orderUC: uc,
		logger:  slog.Default(),
	}
}

func TestOrderHandler_CreateOrder(t *testing.T) {
	accountID := uuid.New()
	bookID := uuid.New()

	orderUC := new(mockUC.MockOrderUsecase)
	orderUC.On("CreateOrder", mock.Anything, mock.MatchedBy(func(input *usecase.CreateOrderInput) bool {
		return input.AccountID == accountID && len(input.Items) == 1 && input.Items[0].Quantity == 2
	})).Return(&entity.Order{
		ID:         uuid.New(),
		AccountID:  &accountID,
		Status:     entity.OrderStatusProcessing,
		TotalPrice: 31,
	}, nil)

	body := `{
		"orderItems": [{"book": "` + bookID.String() + `", "quantity": 2}],
		"shippingAddress": {"address": "1 Main St", "city": "Leiden", "postalCode": "2311", "country": "NL"},
		"paymentMethod": "card"
	}`

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyAccountID, accountID)

	err := newOrderHandler(orderUC).CreateOrder(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Processing")
}

func TestOrderHandler_CreateOrder_EmptyItems(t *testing.T) {
	orderUC := new(mockUC.MockOrderUsecase)

	body := `{
		"orderItems": [],
		"shippingAddress": {"address": "1 Main St", "city": "Leiden", "postalCode": "2311", "country": "NL"},
		"paymentMethod": "card"
	}`

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyAccountID, uuid.New())

	err := newOrderHandler(orderUC).CreateOrder(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	orderUC.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestOrderHandler_CreateOrder_InsufficientStock(t *testing.T) {
	accountID := uuid.New()
	bookID := uuid.New()

	orderUC := new(mockUC.MockOrderUsecase)
	orderUC.On("CreateOrder", mock.Anything, mock.AnythingOfType("*usecase.CreateOrderInput")).
		Return(nil, domainerrors.ErrInsufficientStock)

	body := `{
		"orderItems": [{"book": "` + bookID.String() + `", "quantity": 99}],
		"shippingAddress": {"address": "1 Main St", "city": "Leiden", "postalCode": "2311", "country": "NL"},
		"paymentMethod": "card"
	}`

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyAccountID, accountID)

	err := newOrderHandler(orderUC).CreateOrder(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "INSUFFICIENT_STOCK")
}

func TestOrderHandler_OrderPickupQR(t *testing.T) {
	accountID := uuid.New()
	orderID := uuid.New()
	png := []byte{0x89, 0x50, 0x4E, 0x47}

	orderUC := new(mockUC.MockOrderUsecase)
	orderUC.On("OrderPickupQR", mock.Anything, mock.MatchedBy(func(input *usecase.GetOrderInput) bool {
		return input.OrderID == orderID && input.ActorID == accountID
	})).Return(png, nil)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+orderID.String()+"/qrcode", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(orderID.String())
	c.Set(middleware.ContextKeyAccountID, accountID)

	err := newOrderHandler(orderUC).OrderPickupQR(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, png, rec.Body.Bytes())
}

func TestOrderHandler_MarkDelivered_NotFound(t *testing.T) {
	orderID := uuid.New()

	orderUC := new(mockUC.MockOrderUsecase)
	orderUC.On("MarkDelivered", mock.Anything, &usecase.MarkDeliveredInput{OrderID: orderID}).
		Return(nil, domainerrors.ErrOrderNotFound)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPut, "/api/orders/"+orderID.String()+"/deliver", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(orderID.String())

	err := newOrderHandler(orderUC).MarkDelivered(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "ORDER_NOT_FOUND")
}
