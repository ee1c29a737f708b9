package handler

import (
	"log/slog"
	"net/http"

	"booknest/internal/delivery/http/response"
	"booknest/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// BookHandlerParams holds dependencies for BookHandler, injected by Fx.
type BookHandlerParams struct {
	fx.In

	BookUC usecase.BookUsecase
	Logger *slog.Logger
}

// BookHandler holds dependencies for book listing handlers.
type BookHandler struct {
	bookUC usecase.BookUsecase
	logger *slog.Logger
}

// NewBookHandler is the constructor for BookHandler.
func NewBookHandler(params BookHandlerParams) *BookHandler {
	return &BookHandler{
		bookUC: params.BookUC,
		logger: params.Logger,
	}
}

// CreateBookRequest represents the request body for publishing a listing
type CreateBookRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"gt=0"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Authors     []string `json:"authors" validate:"required,min=1"`
	Genres      []string `json:"genres" validate:"required,min=1"`
	ImageURL    string   `json:"imageUrl"`
}

// UpdateBookRequest represents the request body for editing a listing
type UpdateBookRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"gt=0"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Authors     []string `json:"authors" validate:"required,min=1"`
	Genres      []string `json:"genres" validate:"required,min=1"`
	ImageURL    string   `json:"imageUrl"`
	IsActive    bool     `json:"isActive"`
}

// ListBooks handles the public listing of active books.
func (h *BookHandler) ListBooks(c echo.Context) error {
	books, err := h.bookUC.ListBooks(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, books, "Books retrieved successfully")
}

// GetBook handles the public book detail request.
func (h *BookHandler) GetBook(c echo.Context) error {
	bookID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	book, err := h.bookUC.GetBook(c.Request().Context(), bookID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, book, "Book retrieved successfully")
}

// ListMyBooks handles the seller's own listings request.
func (h *BookHandler) ListMyBooks(c echo.Context) error {
	sellerID, err := getAccountID(c)
	if err != nil {
		return err
	}

	books, err := h.bookUC.ListSellerBooks(c.Request().Context(), sellerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, books, "Books retrieved successfully")
}

// CreateBook handles publishing a new listing.
func (h *BookHandler) CreateBook(c echo.Context) error {
	actorID, err := getAccountID(c)
	if err != nil {
		return err
	}

	var req CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid book input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	book, err := h.bookUC.CreateBook(c.Request().Context(), &usecase.CreateBookInput{
		ActorID:     actorID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Authors:     req.Authors,
		Genres:      req.Genres,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, book, "Book created successfully")
}

// UpdateBook handles editing a listing, owner or admin only.
func (h *BookHandler) UpdateBook(c echo.Context) error {
	actorID, err := getAccountID(c)
	if err != nil {
		return err
	}
	bookID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateBookRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid book input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	book, err := h.bookUC.UpdateBook(c.Request().Context(), &usecase.UpdateBookInput{
		ActorID:     actorID,
		ActorRoles:  getRoles(c),
		BookID:      bookID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Authors:     req.Authors,
		Genres:      req.Genres,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, book, "Book updated successfully")
}

// DeleteBook handles removing a listing, owner or admin only.
func (h *BookHandler) DeleteBook(c echo.Context) error {
	actorID, err := getAccountID(c)
	if err != nil {
		return err
	}
	bookID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.bookUC.DeleteBook(c.Request().Context(), &usecase.DeleteBookInput{
		ActorID:    actorID,
		ActorRoles: getRoles(c),
		BookID:     bookID,
	}); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Book deleted"}, "Book deleted successfully")
}
