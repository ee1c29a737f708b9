package impl

import (
	"context"
	"testing"

	"booknest/internal/domain/entity"
	domainerrors "booknest/internal/domain/errors"
	"booknest/internal/domain/repository"
	mockRepo "booknest/internal/mocks/repository"
	"booknest/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reviewServiceFixtures struct {
	service    usecase.ReviewUsecase
	reviewRepo *mockRepo.MockReviewRepository
	bookRepo   *mockRepo.MockBookRepository
}

func createTestReviewService(t *testing.T) reviewServiceFixtures {
	t.Helper()

	reviewRepo := new(mockRepo.MockReviewRepository)
	bookRepo := new(mockRepo.MockBookRepository)

	txManager := &mockRepo.FakeTransactionManager{
		Factory: &mockRepo.FakeRepositoryFactory{
			Reviews: reviewRepo,
			Books:   bookRepo,
		},
	}

	service := NewReviewService(ReviewServiceParams{
		TxManager:  txManager,
		ReviewRepo: reviewRepo,
		BookRepo:   bookRepo,
		Logger:     newDiscardLogger(),
	})

	return reviewServiceFixtures{
		service:    service,
		reviewRepo: reviewRepo,
		bookRepo:   bookRepo,
	}
}

func TestReviewService_CreateReview_RecomputesAggregate(t *testing.T) {
	fx := createTestReviewService(t)

	accountID := uuid.New()
	book := &entity.Book{ID: uuid.New(), Title: "Piranesi", IsActive: true}

	fx.bookRepo.On("FindByID", mock.Anything, book.ID).Return(book, nil)
	fx.reviewRepo.On("FindByAccountAndBook", mock.Anything, accountID, book.ID).
		Return(nil, repository.ErrReviewNotFound)
	fx.reviewRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Review")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Review).ID = uuid.New()
		}).
		Return(nil)
	fx.reviewRepo.On("ListByBook", mock.Anything, book.ID).
		Return([]*entity.Review{
			{Rating: 5},
			{Rating: 4},
		}, nil)
	fx.bookRepo.On("UpdateRating", mock.Anything, book.ID, 4.5, 2).Return(nil)

	review, err := fx.service.CreateReview(context.Background(), &usecase.CreateReviewInput{
		AccountID: accountID,
		BookID:    book.ID,
		Rating:    5,
		Comment:   "Haunting and precise.",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, review.ID)
	fx.bookRepo.AssertExpectations(t)
	fx.reviewRepo.AssertExpectations(t)
}

func TestReviewService_CreateReview_Duplicate(t *testing.T) {
	fx := createTestReviewService(t)

	accountID := uuid.New()
	book := &entity.Book{ID: uuid.New(), IsActive: true}

	fx.bookRepo.On("FindByID", mock.Anything, book.ID).Return(book, nil)
	fx.reviewRepo.On("FindByAccountAndBook", mock.Anything, accountID, book.ID).
		Return(&entity.Review{ID: uuid.New()}, nil)

	_, err := fx.service.CreateReview(context.Background(), &usecase.CreateReviewInput{
		AccountID: accountID,
		BookID:    book.ID,
		Rating:    3,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyReviewed)
	fx.reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_CreateReview_DuplicateRace(t *testing.T) {
	fx := createTestReviewService(t)

	accountID := uuid.New()
	book := &entity.Book{ID: uuid.New(), IsActive: true}

	fx.bookRepo.On("FindByID", mock.Anything, book.ID).Return(book, nil)
	fx.reviewRepo.On("FindByAccountAndBook", mock.Anything, accountID, book.ID).
		Return(nil, repository.ErrReviewNotFound)
	fx.reviewRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Review")).
		Return(repository.ErrDuplicateReview)

	_, err := fx.service.CreateReview(context.Background(), &usecase.CreateReviewInput{
		AccountID: accountID,
		BookID:    book.ID,
		Rating:    3,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyReviewed)
}

func TestReviewService_CreateReview_RatingBounds(t *testing.T) {
	fx := createTestReviewService(t)

	for _, rating := range []int{0, -1, 6} {
		_, err := fx.service.CreateReview(context.Background(), &usecase.CreateReviewInput{
			AccountID: uuid.New(),
			BookID:    uuid.New(),
			Rating:    rating,
		})

		require.Error(t, err, "rating %d", rating)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidRating)
	}
}

func TestReviewService_CreateReview_BookMissing(t *testing.T) {
	fx := createTestReviewService(t)

	bookID := uuid.New()
	fx.bookRepo.On("FindByID", mock.Anything, bookID).Return(nil, repository.ErrBookNotFound)

	_, err := fx.service.CreateReview(context.Background(), &usecase.CreateReviewInput{
		AccountID: uuid.New(),
		BookID:    bookID,
		Rating:    4,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrBookNotFound)
}

func TestReviewService_ListBookReviews(t *testing.T) {
	fx := createTestReviewService(t)

	book := &entity.Book{ID: uuid.New()}
	fx.bookRepo.On("FindByID", mock.Anything, book.ID).Return(book, nil)
	fx.reviewRepo.On("ListByBook", mock.Anything, book.ID).
		Return([]*entity.Review{{Rating: 5}, {Rating: 1}}, nil)

	reviews, err := fx.service.ListBookReviews(context.Background(), book.ID)

	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}
