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

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	txManager  repository.TransactionManager
	reviewRepo repository.ReviewRepository
	bookRepo   repository.BookRepository
	logger     *slog.Logger
}

// ReviewServiceParams holds dependencies for reviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	ReviewRepo repository.ReviewRepository
	BookRepo   repository.BookRepository
	Logger     *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		txManager:  params.TxManager,
		reviewRepo: params.ReviewRepo,
		bookRepo:   params.BookRepo,
		logger:     params.Logger,
	}
}

func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateReview stores a review and recomputes the book's rating aggregate
// from all persisted reviews in the same transaction, so the stored mean and
// count never drift from the review rows.
func (srv *reviewService) CreateReview(ctx context.Context, input *usecase.CreateReviewInput) (*entity.Review, error) {
	srv.log(ctx).Info("Creating review", slog.Any("accountID", input.AccountID), slog.Any("bookID", input.BookID))

	if input.Rating < entity.MinRating || input.Rating > entity.MaxRating {
		return nil, errors.Wrap(domainerrors.ErrInvalidRating, "rating must be between 1 and 5")
	}

	review := &entity.Review{
		AccountID: input.AccountID,
		BookID:    input.BookID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		bookRepo := repoFactory.BookRepo()
		reviewRepo := repoFactory.ReviewRepo()

		book, err := bookRepo.FindByID(ctx, input.BookID)
		if err != nil {
			if errors.Is(err, repository.ErrBookNotFound) {
				return domainerrors.ErrBookNotFound
			}

			return errors.Wrap(err, "failed to load reviewed book")
		}

		if _, err := reviewRepo.FindByAccountAndBook(ctx, input.AccountID, input.BookID); err == nil {
			return domainerrors.ErrAlreadyReviewed.WrapMessage("book already reviewed by this account")
		} else if !errors.Is(err, repository.ErrReviewNotFound) {
			return errors.Wrap(err, "failed to check for existing review")
		}

		if err := reviewRepo.Create(ctx, review); err != nil {
			// The unique index is the last line of defense against a racing
			// duplicate slipping past the read above.
			if errors.Is(err, repository.ErrDuplicateReview) {
				return domainerrors.ErrAlreadyReviewed.WrapMessage("book already reviewed by this account")
			}

			return errors.Wrap(err, "failed to create review")
		}

		reviews, err := reviewRepo.ListByBook(ctx, input.BookID)
		if err != nil {
			return errors.Wrap(err, "failed to list reviews for aggregate")
		}

		return bookRepo.UpdateRating(ctx, book.ID, entity.MeanRating(reviews), len(reviews))
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute review transaction", slog.Any("bookID", input.BookID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute review transaction")
	}

	srv.log(ctx).Debug("Review created", slog.Any("reviewID", review.ID))

	return review, nil
}

// ListBookReviews returns all reviews of a book, newest first.
func (srv *reviewService) ListBookReviews(ctx context.Context, bookID uuid.UUID) ([]*entity.Review, error) {
	if _, err := srv.bookRepo.FindByID(ctx, bookID); err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, domainerrors.ErrBookNotFound
		}

		return nil, errors.Wrap(err, "failed to load book")
	}

	reviews, err := srv.reviewRepo.ListByBook(ctx, bookID)
	if err != nil {
		srv.log(ctx).Error("Failed to list reviews", slog.Any("bookID", bookID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return reviews, nil
}
