package impl

import (
	"context"
	"log/slog"

	deliverycontext "booknest/internal/delivery/context"
	"booknest/internal/domain/entity"
	domainerrors "booknest/internal/domain/errors"
	"booknest/internal/domain/repository"
	"booknest/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// bookService implements the BookUsecase interface.
type bookService struct {
	accountRepo repository.AccountRepository
	bookRepo    repository.BookRepository
	logger      *slog.Logger
}

// BookServiceParams holds dependencies for bookService, injected by Fx.
type BookServiceParams struct {
	fx.In

	AccountRepo repository.AccountRepository
	BookRepo    repository.BookRepository
	Logger      *slog.Logger
}

// NewBookService is the constructor for bookService.
func NewBookService(params BookServiceParams) usecase.BookUsecase {
	return &bookService{
		accountRepo: params.AccountRepo,
		bookRepo:    params.BookRepo,
		logger:      params.Logger,
	}
}

func (srv *bookService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListBooks returns active listings visible to everyone.
func (srv *bookService) ListBooks(ctx context.Context) ([]*entity.Book, error) {
	books, err := srv.bookRepo.List(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list books", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list books")
	}

	return books, nil
}

// ListAllBooks returns every listing regardless of visibility.
func (srv *bookService) ListAllBooks(ctx context.Context) ([]*entity.Book, error) {
	books, err := srv.bookRepo.ListAll(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list all books", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list all books")
	}

	return books, nil
}

// ListSellerBooks returns the listings owned by the acting seller.
func (srv *bookService) ListSellerBooks(ctx context.Context, sellerID uuid.UUID) ([]*entity.Book, error) {
	books, err := srv.bookRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		srv.log(ctx).Error("Failed to list seller books", slog.Any("sellerID", sellerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list seller books")
	}

	return books, nil
}

// GetBook returns a single listing with seller info.
func (srv *bookService) GetBook(ctx context.Context, id uuid.UUID) (*entity.Book, error) {
	book, err := srv.bookRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, domainerrors.ErrBookNotFound
		}

		return nil, errors.Wrap(err, "failed to get book")
	}

	return book, nil
}

// CreateBook publishes a new listing for an approved seller.
func (srv *bookService) CreateBook(ctx context.Context, input *usecase.CreateBookInput) (*entity.Book, error) {
	srv.log(ctx).Info("Creating book listing", slog.Any("sellerID", input.ActorID), slog.String("title", input.Title))

	seller, err := srv.accountRepo.FindByID(ctx, input.ActorID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load seller account")
	}
	if seller.Role != entity.RoleSeller || !seller.IsApproved {
		srv.log(ctx).Warn("Unapproved seller attempted to publish", slog.Any("accountID", input.ActorID))

		return nil, errors.Wrap(domainerrors.ErrSellerNotApproved, "account is not an approved seller")
	}

	if input.Price < 0 || input.Stock < 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "price and stock must not be negative")
	}

	book := &entity.Book{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Authors:     input.Authors,
		Genres:      input.Genres,
		SellerID:    input.ActorID,
		ImageURL:    input.ImageURL,
		IsActive:    true,
	}

	if err := srv.bookRepo.Create(ctx, book); err != nil {
		srv.log(ctx).Error("Failed to create book", slog.Any("sellerID", input.ActorID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create book")
	}

	srv.log(ctx).Debug("Book listing created", slog.Any("bookID", book.ID))

	return book, nil
}

// UpdateBook edits a listing owned by the actor, or any listing for admins.
func (srv *bookService) UpdateBook(ctx context.Context, input *usecase.UpdateBookInput) (*entity.Book, error) {
	srv.log(ctx).Info("Updating book listing", slog.Any("bookID", input.BookID), slog.Any("actorID", input.ActorID))

	book, err := srv.loadOwnedBook(ctx, input.BookID, input.ActorID, input.ActorRoles)
	if err != nil {
		return nil, err
	}

	if input.Price < 0 || input.Stock < 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "price and stock must not be negative")
	}

	book.Title = input.Title
	book.Description = input.Description
	book.Price = input.Price
	book.Stock = input.Stock
	book.Authors = input.Authors
	book.Genres = input.Genres
	book.ImageURL = input.ImageURL
	book.IsActive = input.IsActive

	if err := srv.bookRepo.Update(ctx, book); err != nil {
		srv.log(ctx).Error("Failed to update book", slog.Any("bookID", input.BookID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update book")
	}

	return book, nil
}

// DeleteBook removes a listing owned by the actor, or any listing for admins.
// Order item snapshots referencing the book survive with the reference nulled.
func (srv *bookService) DeleteBook(ctx context.Context, input *usecase.DeleteBookInput) error {
	srv.log(ctx).Info("Deleting book listing", slog.Any("bookID", input.BookID), slog.Any("actorID", input.ActorID))

	if _, err := srv.loadOwnedBook(ctx, input.BookID, input.ActorID, input.ActorRoles); err != nil {
		return err
	}

	if err := srv.bookRepo.Delete(ctx, input.BookID); err != nil {
		srv.log(ctx).Error("Failed to delete book", slog.Any("bookID", input.BookID), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete book")
	}

	return nil
}

// loadOwnedBook fetches a book and enforces the owner-or-admin write rule.
func (srv *bookService) loadOwnedBook(ctx context.Context, bookID, actorID uuid.UUID, actorRoles entity.Roles) (*entity.Book, error) {
	book, err := srv.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, domainerrors.ErrBookNotFound
		}

		return nil, errors.Wrap(err, "failed to load book")
	}

	if !book.OwnedBy(actorID) && !actorRoles.Contains(entity.RoleAdmin) {
		srv.log(ctx).Warn("Write denied on foreign listing", slog.Any("bookID", bookID), slog.Any("actorID", actorID))

		return nil, errors.Wrap(domainerrors.ErrForbidden, "listing belongs to another seller")
	}

	return book, nil
}
