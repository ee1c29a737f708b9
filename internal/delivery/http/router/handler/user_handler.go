package handler

import (
	"log/slog"
	"net/http"

	"booknest/internal/delivery/http/response"
	"booknest/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	AccountUC usecase.AccountUsecase
	Logger    *slog.Logger
}

// UserHandler holds dependencies for profile and wishlist handlers.
type UserHandler struct {
	accountUC usecase.AccountUsecase
	logger    *slog.Logger
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		accountUC: params.AccountUC,
		logger:    params.Logger,
	}
}

// UpdateProfileRequest represents the request body for editing the profile
type UpdateProfileRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email" validate:"omitempty,email"`
	BusinessName string `json:"businessName"`
}

// UpdatePasswordRequest represents the request body for changing the password
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// GetMe handles the authenticated profile request.
func (h *UserHandler) GetMe(c echo.Context) error {
	accountID, err := getAccountID(c)
	if err != nil {
		return err
	}

	account, err := h.accountUC.GetAccount(c.Request().Context(), accountID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, account, "Profile retrieved successfully")
}

// UpdateProfile handles editing the acting account's profile.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	accountID, err := getAccountID(c)
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

	return response.Success(c, http.StatusOK, account, "Profile updated successfully")
}

// UpdatePassword handles changing the acting account's password.
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	accountID, err := getAccountID(c)
	if err != nil {
		return err
	}

	var req UpdatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.accountUC.UpdatePassword(c.Request().Context(), &usecase.UpdatePasswordInput{
		AccountID:       accountID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Password updated"}, "Password updated successfully")
}

// GetWishlist handles resolving the acting account's wishlist.
func (h *UserHandler) GetWishlist(c echo.Context) error {
	accountID, err := getAccountID(c)
	if err != nil {
		return err
	}

	books, err := h.accountUC.GetWishlist(c.Request().Context(), accountID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, books, "Wishlist retrieved successfully")
}

// ToggleWishlist handles flipping wishlist membership of one book.
func (h *UserHandler) ToggleWishlist(c echo.Context) error {
	accountID, err := getAccountID(c)
	if err != nil {
		return err
	}
	bookID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	output, err := h.accountUC.ToggleWishlist(c.Request().Context(), &usecase.ToggleWishlistInput{
		AccountID: accountID,
		BookID:    bookID,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"isWishlisted": output.Added,
		"wishlist":     output.Wishlist,
	}, "Wishlist updated successfully")
}
