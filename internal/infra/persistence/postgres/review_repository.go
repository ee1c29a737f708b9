package postgres

import (
	"context"

	"booknest/internal/domain/entity"
	domainerrors "booknest/internal/domain/errors"
	"booknest/internal/domain/repository"
	"booknest/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// reviewRepository implements the domain.ReviewRepository interface using GORM.
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

// FindByAccountAndBook retrieves the review a given account left on a given book.
func (repo *reviewRepository) FindByAccountAndBook(ctx context.Context, accountID, bookID uuid.UUID) (*entity.Review, error) {
	var reviewM model.ReviewModel
	err := repo.db.WithContext(ctx).
		First(&reviewM, "account_id = ? AND book_id = ?", accountID, bookID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReviewNotFound
		}

		return nil, errors.Wrap(err, "failed to find review")
	}

	return toReviewDomain(&reviewM), nil
}

// ListByBook retrieves all reviews for a book with reviewer names joined, newest first.
func (repo *reviewRepository) ListByBook(ctx context.Context, bookID uuid.UUID) ([]*entity.Review, error) {
	var reviewModels []*model.ReviewModel
	err := repo.db.WithContext(ctx).
		Preload("Account").
		Where("book_id = ?", bookID).
		Order("created_at DESC").
		Find(&reviewModels).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews by book")
	}

	reviews := make([]*entity.Review, 0, len(reviewModels))
	for _, reviewM := range reviewModels {
		reviews = append(reviews, toReviewDomain(reviewM))
	}

	return reviews, nil
}

// Create persists a new review. The composite unique index on
// (account_id, book_id) surfaces as ErrDuplicateReview.
func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	reviewM := fromReviewDomain(review)

	if err := repo.db.WithContext(ctx).Create(reviewM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateReview
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrBookNotFound.WrapMessage("review references an unknown account or book")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidRating.WrapMessage("rating is outside the allowed range")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create review")
	}

	review.ID = reviewM.ID
	review.CreatedAt = reviewM.CreatedAt

	return nil
}

// --- Mapper Functions ---

// toReviewDomain converts a GORM ReviewModel to a domain Review entity.
func toReviewDomain(data *model.ReviewModel) *entity.Review {
	if data == nil {
		return nil
	}

	return &entity.Review{
		ID:        data.ID,
		AccountID: data.AccountID,
		Reviewer:  toPublicAccount(data.Account),
		BookID:    data.BookID,
		Rating:    data.Rating,
		Comment:   data.Comment,
		CreatedAt: data.CreatedAt,
	}
}

// fromReviewDomain converts a domain Review entity to a GORM ReviewModel for persistence.
func fromReviewDomain(data *entity.Review) *model.ReviewModel {
	if data == nil {
		return nil
	}

	return &model.ReviewModel{
		ID:        data.ID,
		AccountID: data.AccountID,
		BookID:    data.BookID,
		Rating:    data.Rating,
		Comment:   data.Comment,
	}
}
