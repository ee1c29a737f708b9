package handler

import (
	"log/slog"
	"net/http"

	"booknest/internal/delivery/http/response"
	"booknest/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ReviewHandlerParams holds dependencies for ReviewHandler, injected by Fx.
type ReviewHandlerParams struct {
	fx.In

	ReviewUC usecase.ReviewUsecase
	Logger   *slog.Logger
}

// ReviewHandler holds dependencies for review handlers.
type ReviewHandler struct {
	reviewUC usecase.ReviewUsecase
	logger   *slog.Logger
}

// NewReviewHandler is the constructor for ReviewHandler.
func NewReviewHandler(params ReviewHandlerParams) *ReviewHandler {
	return &ReviewHandler{
		reviewUC: params.ReviewUC,
		logger:   params.Logger,
	}
}

// CreateReviewRequest represents the request body for reviewing a book
type CreateReviewRequest struct {
	BookID  uuid.UUID `json:"book" validate:"required"`
	Rating  int       `json:"rating" validate:"required,min=1,max=5"`
	Comment string    `json:"comment"`
}

// CreateReview handles storing a new review.
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	accountID, err := getAccountID(c)
	if err != nil {
		return err
	}

	var req CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	review, err := h.reviewUC.CreateReview(c.Request().Context(), &usecase.CreateReviewInput{
		AccountID: accountID,
		BookID:    req.BookID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, review, "Review created successfully")
}

// ListBookReviews handles the public listing of a book's reviews.
func (h *ReviewHandler) ListBookReviews(c echo.Context) error {
	bookID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	reviews, err := h.reviewUC.ListBookReviews(c.Request().Context(), bookID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, reviews, "Reviews retrieved successfully")
}
