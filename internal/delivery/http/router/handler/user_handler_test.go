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

func newUserHandler(uc usecase.AccountUsecase) *UserHandler {
	return &UserHandler{
		accountUC: uc,
		logger:    slog.Default(),
	}
}

func TestUserHandler_ToggleWishlist(t *testing.T) {
	accountID := uuid.New()
	bookID := uuid.New()

	accountUC := new(mockUC.MockAccountUsecase)
	accountUC.On("ToggleWishlist", mock.Anything, &usecase.ToggleWishlistInput{
		AccountID: accountID,
		BookID:    bookID,
	}).Return(&usecase.ToggleWishlistOutput{
		Added:    true,
		Wishlist: []uuid.UUID{bookID},
	}, nil)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/users/wishlist/"+bookID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(bookID.String())
	c.Set(middleware.ContextKeyAccountID, accountID)

	err := newUserHandler(accountUC).ToggleWishlist(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isWishlisted":true`)
}

func TestUserHandler_ToggleWishlist_MissingToken(t *testing.T) {
	accountUC := new(mockUC.MockAccountUsecase)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/users/wishlist/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := newUserHandler(accountUC).ToggleWishlist(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	accountUC.AssertNotCalled(t, "ToggleWishlist", mock.Anything, mock.Anything)
}

func TestUserHandler_UpdatePassword_WrongCurrent(t *testing.T) {
	accountID := uuid.New()

	accountUC := new(mockUC.MockAccountUsecase)
	accountUC.On("UpdatePassword", mock.Anything, mock.AnythingOfType("*usecase.UpdatePasswordInput")).
		Return(domainerrors.ErrInvalidCredentials)

	body := `{"currentPassword":"wrong","newPassword":"NewSecret456!"}`

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPut, "/api/users/updatepassword", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyAccountID, accountID)

	err := newUserHandler(accountUC).UpdatePassword(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
}

func TestUserHandler_GetMe_NeverLeaksPasswordHash(t *testing.T) {
	accountID := uuid.New()

	account := &entity.Account{
		ID:           accountID,
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "super-secret-hash",
		Role:         entity.RoleReader,
	}

	accountUC := new(mockUC.MockAccountUsecase)
	accountUC.On("GetAccount", mock.Anything, accountID).Return(account, nil)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyAccountID, accountID)

	err := newUserHandler(accountUC).GetMe(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "super-secret-hash")
}
