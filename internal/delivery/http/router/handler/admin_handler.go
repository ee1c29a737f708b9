package handler

import (
	"log/slog"
	"net/http"

	"booknest/internal/delivery/http/response"
	"booknest/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	AccountUC usecase.AccountUsecase
	BookUC    usecase.BookUsecase
	Logger    *slog.Logger
}

// AdminHandler holds dependencies for the admin moderation handlers.
// Every route behind it is gated by the admin role at the router.
type AdminHandler struct {
	accountUC usecase.AccountUsecase
	bookUC    usecase.BookUsecase
	logger    *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler.
func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{
		accountUC: params.AccountUC,
		bookUC:    params.BookUC,
		logger:    params.Logger,
	}
}

// ListUsers handles the admin listing of every account.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	accounts, err := h.accountUC.ListAccounts(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, accounts, "Accounts retrieved successfully")
}

// UpdateUser handles an admin edit of any account's profile fields.
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	accountID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	account, err := h.accountUC.UpdateProfile(c.Request().Context(), &usecase.UpdateProfileInput{
		AccountID:    accountID,
		Name:         req.Name,
		Email:        req.Email,
		BusinessName: req.BusinessName,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, account, "Account updated successfully")
}

// DeleteUser handles an admin account removal.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	accountID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.accountUC.DeleteAccount(c.Request().Context(), accountID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Account deleted"}, "Account deleted successfully")
}

// ApproveSeller handles granting a seller permission to publish listings.
func (h *AdminHandler) ApproveSeller(c echo.Context) error {
	accountID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	account, err := h.accountUC.ApproveSeller(c.Request().Context(), accountID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, account, "Seller approved successfully")
}

// ListAllBooks handles the admin listing of every book, inactive included.
func (h *AdminHandler) ListAllBooks(c echo.Context) error {
	books, err := h.bookUC.ListAllBooks(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, books, "Books retrieved successfully")
}
