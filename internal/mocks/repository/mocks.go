// Package repository provides testify mocks for the domain repository interfaces.
package repository

import (
	"context"

	"booknest/internal/domain/entity"
	"booknest/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a testify mock of repository.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) List(ctx context.Context) ([]*entity.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, account *entity.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockBookRepository is a testify mock of repository.BookRepository.
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Book), args.Error(1)
}

func (m *MockBookRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Book, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Book), args.Error(1)
}

func (m *MockBookRepository) List(ctx context.Context) ([]*entity.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Book), args.Error(1)
}

func (m *MockBookRepository) ListAll(ctx context.Context) ([]*entity.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Book), args.Error(1)
}

func (m *MockBookRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entity.Book, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Book), args.Error(1)
}

func (m *MockBookRepository) Create(ctx context.Context, book *entity.Book) error {
	return m.Called(ctx, book).Error(0)
}

func (m *MockBookRepository) Update(ctx context.Context, book *entity.Book) error {
	return m.Called(ctx, book).Error(0)
}

func (m *MockBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBookRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	return m.Called(ctx, id, quantity).Error(0)
}

func (m *MockBookRepository) UpdateRating(ctx context.Context, id uuid.UUID, ratings float64, numReviews int) error {
	return m.Called(ctx, id, ratings, numReviews).Error(0)
}

// MockOrderRepository is a testify mock of repository.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Order, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context) ([]*entity.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Order), args.Error(1)
}

func (m *MockOrderRepository) ListContainingBooks(ctx context.Context, bookIDs []uuid.UUID) ([]*entity.Order, error) {
	args := m.Called(ctx, bookIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Order), args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, order *entity.Order) error {
	return m.Called(ctx, order).Error(0)
}

// MockReviewRepository is a testify mock of repository.ReviewRepository.
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) FindByAccountAndBook(ctx context.Context, accountID, bookID uuid.UUID) (*entity.Review, error) {
	args := m.Called(ctx, accountID, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByBook(ctx context.Context, bookID uuid.UUID) ([]*entity.Review, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Review), args.Error(1)
}

func (m *MockReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	return m.Called(ctx, review).Error(0)
}

// MockRefreshTokenRepository is a testify mock of repository.RefreshTokenRepository.
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockRefreshTokenRepository) FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error {
	return m.Called(ctx, tokenHash).Error(0)
}

func (m *MockRefreshTokenRepository) DeleteRefreshTokensByAccountID(ctx context.Context, accountID uuid.UUID) error {
	return m.Called(ctx, accountID).Error(0)
}

// MockRepositoryFactory is a testify mock of repository.RepositoryFactory.
type MockRepositoryFactory struct {
	mock.Mock
}

func (m *MockRepositoryFactory) AccountRepo() repository.AccountRepository {
	return m.Called().Get(0).(repository.AccountRepository)
}

func (m *MockRepositoryFactory) BookRepo() repository.BookRepository {
	return m.Called().Get(0).(repository.BookRepository)
}

func (m *MockRepositoryFactory) OrderRepo() repository.OrderRepository {
	return m.Called().Get(0).(repository.OrderRepository)
}

func (m *MockRepositoryFactory) ReviewRepo() repository.ReviewRepository {
	return m.Called().Get(0).(repository.ReviewRepository)
}

func (m *MockRepositoryFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	return m.Called().Get(0).(repository.RefreshTokenRepository)
}

// MockTransactionManager is a testify mock of repository.TransactionManager.
// Tests usually stub Execute to run the callback against a prepared factory.
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	return m.Called(ctx, fn).Error(0)
}

// FakeTransactionManager runs the callback against a fixed factory without a
// real transaction, propagating the callback's error unchanged. Most usecase
// tests want this instead of stubbing Execute by hand.
type FakeTransactionManager struct {
	Factory repository.RepositoryFactory
}

func (f *FakeTransactionManager) Execute(_ context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	return fn(f.Factory)
}

// FakeRepositoryFactory hands out fixed repository instances, typically mocks.
type FakeRepositoryFactory struct {
	Accounts      repository.AccountRepository
	Books         repository.BookRepository
	Orders        repository.OrderRepository
	Reviews       repository.ReviewRepository
	RefreshTokens repository.RefreshTokenRepository
}

func (f *FakeRepositoryFactory) AccountRepo() repository.AccountRepository { return f.Accounts }

func (f *FakeRepositoryFactory) BookRepo() repository.BookRepository { return f.Books }

func (f *FakeRepositoryFactory) OrderRepo() repository.OrderRepository { return f.Orders }

func (f *FakeRepositoryFactory) ReviewRepo() repository.ReviewRepository { return f.Reviews }

func (f *FakeRepositoryFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	return f.RefreshTokens
}
