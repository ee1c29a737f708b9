// Package usecase provides testify mocks for the usecase interfaces,
// used by the delivery layer tests.
package usecase

import (
	"context"

	"booknest/internal/domain/entity"
	"booknest/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAuthUsecase mocks usecase.AuthUsecase.
type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.RegisterOutput), args.Error(1)
}

func (m *MockAuthUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.LoginOutput), args.Error(1)
}

func (m *MockAuthUsecase) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.RefreshTokenOutput), args.Error(1)
}

func (m *MockAuthUsecase) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	args := m.Called(ctx, input)

	return args.Error(0)
}

// MockBookUsecase mocks usecase.BookUsecase.
type MockBookUsecase struct {
	mock.Mock
}

func (m *MockBookUsecase) ListBooks(ctx context.Context) ([]*entity.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Book), args.Error(1)
}

func (m *MockBookUsecase) ListAllBooks(ctx context.Context) ([]*entity.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Book), args.Error(1)
}

func (m *MockBookUsecase) ListSellerBooks(ctx context.Context, sellerID uuid.UUID) ([]*entity.Book, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Book), args.Error(1)
}

func (m *MockBookUsecase) GetBook(ctx context.Context, id uuid.UUID) (*entity.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Book), args.Error(1)
}

func (m *MockBookUsecase) CreateBook(ctx context.Context, input *usecase.CreateBookInput) (*entity.Book, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Book), args.Error(1)
}

func (m *MockBookUsecase) UpdateBook(ctx context.Context, input *usecase.UpdateBookInput) (*entity.Book, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Book), args.Error(1)
}

func (m *MockBookUsecase) DeleteBook(ctx context.Context, input *usecase.DeleteBookInput) error {
	args := m.Called(ctx, input)

	return args.Error(0)
}

// MockOrderUsecase mocks usecase.OrderUsecase.
type MockOrderUsecase struct {
	mock.Mock
}

func (m *MockOrderUsecase) CreateOrder(ctx context.Context, input *usecase.CreateOrderInput) (*entity.Order, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderUsecase) GetOrder(ctx context.Context, input *usecase.GetOrderInput) (*entity.Order, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderUsecase) ListMyOrders(ctx context.Context, accountID uuid.UUID) ([]*entity.Order, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Order), args.Error(1)
}

func (m *MockOrderUsecase) ListAllOrders(ctx context.Context) ([]*entity.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Order), args.Error(1)
}

func (m *MockOrderUsecase) ListSellerOrders(ctx context.Context, sellerID uuid.UUID) ([]*entity.Order, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Order), args.Error(1)
}

func (m *MockOrderUsecase) MarkDelivered(ctx context.Context, input *usecase.MarkDeliveredInput) (*entity.Order, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderUsecase) OrderPickupQR(ctx context.Context, input *usecase.GetOrderInput) ([]byte, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]byte), args.Error(1)
}

// MockReviewUsecase mocks usecase.ReviewUsecase.
type MockReviewUsecase struct {
	mock.Mock
}

func (m *MockReviewUsecase) CreateReview(ctx context.Context, input *usecase.CreateReviewInput) (*entity.Review, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewUsecase) ListBookReviews(ctx context.Context, bookID uuid.UUID) ([]*entity.Review, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Review), args.Error(1)
}

// MockAccountUsecase mocks usecase.AccountUsecase.
type MockAccountUsecase struct {
	mock.Mock
}

func (m *MockAccountUsecase) GetAccount(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountUsecase) UpdateProfile(ctx context.Context, input *usecase.UpdateProfileInput) (*entity.Account, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountUsecase) UpdatePassword(ctx context.Context, input *usecase.UpdatePasswordInput) error {
	args := m.Called(ctx, input)

	return args.Error(0)
}

func (m *MockAccountUsecase) GetWishlist(ctx context.Context, accountID uuid.UUID) ([]*entity.Book, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Book), args.Error(1)
}

func (m *MockAccountUsecase) ToggleWishlist(ctx context.Context, input *usecase.ToggleWishlistInput) (*usecase.ToggleWishlistOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.ToggleWishlistOutput), args.Error(1)
}

func (m *MockAccountUsecase) ListAccounts(ctx context.Context) ([]*entity.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Account), args.Error(1)
}

func (m *MockAccountUsecase) ApproveSeller(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountUsecase) DeleteAccount(ctx context.Context, accountID uuid.UUID) error {
	args := m.Called(ctx, accountID)

	return args.Error(0)
}

// MockMediaUsecase mocks usecase.MediaUsecase.
type MockMediaUsecase struct {
	mock.Mock
}

func (m *MockMediaUsecase) UploadImage(ctx context.Context, input *usecase.UploadImageInput) (*usecase.UploadImageOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.UploadImageOutput), args.Error(1)
}
