package impl

import (
	"context"
	"testing"

	"booknest/internal/domain/entity"
	domainerrors "booknest/internal/domain/errors"
	"booknest/internal/domain/repository"
	mockRepo "booknest/internal/mocks/repository"
	mockSvc "booknest/internal/mocks/service"
	"booknest/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type accountServiceFixtures struct {
	service          usecase.AccountUsecase
	accountRepo      *mockRepo.MockAccountRepository
	bookRepo         *mockRepo.MockBookRepository
	refreshTokenRepo *mockRepo.MockRefreshTokenRepository
	hasher           *mockSvc.MockPasswordHasher
}

func createTestAccountService(t *testing.T) accountServiceFixtures {
	t.Helper()

	accountRepo := new(mockRepo.MockAccountRepository)
	bookRepo := new(mockRepo.MockBookRepository)
	refreshTokenRepo := new(mockRepo.MockRefreshTokenRepository)
	hasher := new(mockSvc.MockPasswordHasher)

	txManager := &mockRepo.FakeTransactionManager{
		Factory: &mockRepo.FakeRepositoryFactory{
			Accounts:      accountRepo,
			Books:         bookRepo,
			RefreshTokens: refreshTokenRepo,
		},
	}

	service := NewAccountService(AccountServiceParams{
		TxManager:        txManager,
		AccountRepo:      accountRepo,
		BookRepo:         bookRepo,
		RefreshTokenRepo: refreshTokenRepo,
		Hasher:           hasher,
		Logger:           newDiscardLogger(),
	})

	return accountServiceFixtures{
		service:          service,
		accountRepo:      accountRepo,
		bookRepo:         bookRepo,
		refreshTokenRepo: refreshTokenRepo,
		hasher:           hasher,
	}
}

func TestAccountService_ToggleWishlist_AddThenRemove(t *testing.T) {
	fx := createTestAccountService(t)

	bookID := uuid.New()
	account := &entity.Account{ID: uuid.New(), Role: entity.RoleReader}

	fx.accountRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)
	fx.bookRepo.On("FindByID", mock.Anything, bookID).Return(&entity.Book{ID: bookID}, nil)
	fx.accountRepo.On("Update", mock.Anything, account).Return(nil)

	out, err := fx.service.ToggleWishlist(context.Background(), &usecase.ToggleWishlistInput{
		AccountID: account.ID,
		BookID:    bookID,
	})
	require.NoError(t, err)
	assert.True(t, out.Added)
	assert.Equal(t, []uuid.UUID{bookID}, out.Wishlist)

	out, err = fx.service.ToggleWishlist(context.Background(), &usecase.ToggleWishlistInput{
		AccountID: account.ID,
		BookID:    bookID,
	})
	require.NoError(t, err)
	assert.False(t, out.Added)
	assert.Empty(t, out.Wishlist)
}

func TestAccountService_ToggleWishlist_PreservesOrder(t *testing.T) {
	fx := createTestAccountService(t)

	first, second, third := uuid.New(), uuid.New(), uuid.New()
	account := &entity.Account{
		ID:       uuid.New(),
		Wishlist: []uuid.UUID{first, second, third},
	}

	fx.accountRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)
	fx.bookRepo.On("FindByID", mock.Anything, second).Return(&entity.Book{ID: second}, nil)
	fx.accountRepo.On("Update", mock.Anything, account).Return(nil)

	out, err := fx.service.ToggleWishlist(context.Background(), &usecase.ToggleWishlistInput{
		AccountID: account.ID,
		BookID:    second,
	})

	require.NoError(t, err)
	assert.False(t, out.Added)
	assert.Equal(t, []uuid.UUID{first, third}, out.Wishlist)
}

func TestAccountService_ToggleWishlist_BookMissing(t *testing.T) {
	fx := createTestAccountService(t)

	account := &entity.Account{ID: uuid.New()}
	bookID := uuid.New()

	fx.accountRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)
	fx.bookRepo.On("FindByID", mock.Anything, bookID).Return(nil, repository.ErrBookNotFound)

	_, err := fx.service.ToggleWishlist(context.Background(), &usecase.ToggleWishlistInput{
		AccountID: account.ID,
		BookID:    bookID,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrBookNotFound)
	fx.accountRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAccountService_GetWishlist_ResolvesInOrder(t *testing.T) {
	fx := createTestAccountService(t)

	first, second := uuid.New(), uuid.New()
	account := &entity.Account{ID: uuid.New(), Wishlist: []uuid.UUID{first, second}}

	fx.accountRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)
	fx.bookRepo.On("FindByIDs", mock.Anything, account.Wishlist).
		Return([]*entity.Book{{ID: first}, {ID: second}}, nil)

	books, err := fx.service.GetWishlist(context.Background(), account.ID)

	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, first, books[0].ID)
	assert.Equal(t, second, books[1].ID)
}

func TestAccountService_UpdatePassword_Success(t *testing.T) {
	fx := createTestAccountService(t)

	account := &entity.Account{ID: uuid.New(), PasswordHash: "old-hash"}

	fx.accountRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)
	fx.hasher.On("Check", "OldSecret123!", "old-hash").Return(true)
	fx.hasher.On("Hash", "NewSecret456!").Return("new-hash", nil)
	fx.accountRepo.On("Update", mock.Anything, account).Return(nil)
	fx.refreshTokenRepo.On("DeleteRefreshTokensByAccountID", mock.Anything, account.ID).Return(nil)

	err := fx.service.UpdatePassword(context.Background(), &usecase.UpdatePasswordInput{
		AccountID:       account.ID,
		CurrentPassword: "OldSecret123!",
		NewPassword:     "NewSecret456!",
	})

	require.NoError(t, err)
	assert.Equal(t, "new-hash", account.PasswordHash)
	fx.refreshTokenRepo.AssertExpectations(t)
}

func TestAccountService_UpdatePassword_WrongCurrent(t *testing.T) {
	fx := createTestAccountService(t)

	account := &entity.Account{ID: uuid.New(), PasswordHash: "old-hash"}

	fx.accountRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)
	fx.hasher.On("Check", "wrong", "old-hash").Return(false)

	err := fx.service.UpdatePassword(context.Background(), &usecase.UpdatePasswordInput{
		AccountID:       account.ID,
		CurrentPassword: "wrong",
		NewPassword:     "NewSecret456!",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	fx.accountRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAccountService_UpdateProfile_EmailTaken(t *testing.T) {
	fx := createTestAccountService(t)

	account := &entity.Account{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}

	fx.accountRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)
	fx.accountRepo.On("FindByEmail", mock.Anything, "taken@example.com").
		Return(&entity.Account{ID: uuid.New()}, nil)

	_, err := fx.service.UpdateProfile(context.Background(), &usecase.UpdateProfileInput{
		AccountID: account.ID,
		Email:     "taken@example.com",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyExists)
}

func TestAccountService_ApproveSeller(t *testing.T) {
	fx := createTestAccountService(t)

	seller := &entity.Account{ID: uuid.New(), Role: entity.RoleSeller, IsApproved: false}

	fx.accountRepo.On("FindByID", mock.Anything, seller.ID).Return(seller, nil)
	fx.accountRepo.On("Update", mock.Anything, seller).Return(nil)

	account, err := fx.service.ApproveSeller(context.Background(), seller.ID)

	require.NoError(t, err)
	assert.True(t, account.IsApproved)
}

func TestAccountService_ApproveSeller_AlreadyApproved(t *testing.T) {
	fx := createTestAccountService(t)

	seller := &entity.Account{ID: uuid.New(), Role: entity.RoleSeller, IsApproved: true}
	fx.accountRepo.On("FindByID", mock.Anything, seller.ID).Return(seller, nil)

	account, err := fx.service.ApproveSeller(context.Background(), seller.ID)

	require.NoError(t, err)
	assert.True(t, account.IsApproved)
	fx.accountRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAccountService_ApproveSeller_NotASeller(t *testing.T) {
	fx := createTestAccountService(t)

	reader := &entity.Account{ID: uuid.New(), Role: entity.RoleReader}
	fx.accountRepo.On("FindByID", mock.Anything, reader.ID).Return(reader, nil)

	_, err := fx.service.ApproveSeller(context.Background(), reader.ID)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAccountService_DeleteAccount_Missing(t *testing.T) {
	fx := createTestAccountService(t)

	accountID := uuid.New()
	fx.accountRepo.On("Delete", mock.Anything, accountID).Return(repository.ErrAccountNotFound)

	err := fx.service.DeleteAccount(context.Background(), accountID)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
}
