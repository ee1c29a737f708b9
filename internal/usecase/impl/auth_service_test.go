package impl

import (
	"context"
	"testing"
	"time"

	"booknest/internal/domain/entity"
	domainerrors "booknest/internal/domain/errors"
	"booknest/internal/domain/repository"
	"booknest/internal/domain/service"
	mockRepo "booknest/internal/mocks/repository"
	mockSvc "booknest/internal/mocks/service"
	"booknest/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service          usecase.AuthUsecase
	accountRepo      *mockRepo.MockAccountRepository
	refreshTokenRepo *mockRepo.MockRefreshTokenRepository
	hasher           *mockSvc.MockPasswordHasher
	tokenService     *mockSvc.MockTokenService
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	t.Helper()

	accountRepo := new(mockRepo.MockAccountRepository)
	refreshTokenRepo := new(mockRepo.MockRefreshTokenRepository)
	hasher := new(mockSvc.MockPasswordHasher)
	tokenService := new(mockSvc.MockTokenService)

	txManager := &mockRepo.FakeTransactionManager{
		Factory: &mockRepo.FakeRepositoryFactory{
			Accounts:      accountRepo,
			RefreshTokens: refreshTokenRepo,
		},
	}

	service := NewAuthService(AuthServiceParams{
		TxManager:        txManager,
		AccountRepo:      accountRepo,
		RefreshTokenRepo: refreshTokenRepo,
		Hasher:           hasher,
		TokenService:     tokenService,
		Logger:           newDiscardLogger(),
	})

	return authServiceFixtures{
		service:          service,
		accountRepo:      accountRepo,
		refreshTokenRepo: refreshTokenRepo,
		hasher:           hasher,
		tokenService:     tokenService,
	}
}

func expectSessionIssued(fx authServiceFixtures) {
	fx.tokenService.On("GenerateTokens", mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("[]string")).
		Return("access-token", "refresh-token", nil)
	fx.tokenService.On("HashToken", "refresh-token").Return("refresh-hash")
	fx.tokenService.On("GetRefreshTokenDuration").Return(7 * 24 * time.Hour)
	fx.refreshTokenRepo.On("CreateRefreshToken", mock.Anything, mock.AnythingOfType("*entity.RefreshToken")).
		Return(nil)
}

func TestAuthService_Register_Reader(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	input := &usecase.RegisterInput{
		Name:     "Alice Reader",
		Email:    "alice@example.com",
		Password: "StrongSecret123!",
	}

	fx.hasher.On("ValidatePasswordStrength", input.Password).Return(nil)
	fx.hasher.On("Hash", input.Password).Return("hashed", nil)
	fx.accountRepo.On("FindByEmail", mock.Anything, input.Email).
		Return(nil, repository.ErrAccountNotFound)
	fx.accountRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Account")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Account).ID = uuid.New()
		}).
		Return(nil)
	expectSessionIssued(fx)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, entity.RoleReader, output.Account.Role)
	assert.True(t, output.Account.IsApproved)
	assert.Equal(t, "access-token", output.AccessToken)
	assert.Equal(t, "refresh-token", output.RefreshToken)
	fx.accountRepo.AssertExpectations(t)
	fx.refreshTokenRepo.AssertExpectations(t)
}

func TestAuthService_Register_SellerStartsUnapproved(t *testing.T) {
	fx := createTestAuthService(t)

	input := &usecase.RegisterInput{
		Name:         "Bob Seller",
		Email:        "bob@example.com",
		Password:     "StrongSecret123!",
		Role:         "seller",
		BusinessName: "Bob's Books",
	}

	fx.hasher.On("ValidatePasswordStrength", input.Password).Return(nil)
	fx.hasher.On("Hash", input.Password).Return("hashed", nil)
	fx.accountRepo.On("FindByEmail", mock.Anything, input.Email).
		Return(nil, repository.ErrAccountNotFound)
	fx.accountRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Account")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Account).ID = uuid.New()
		}).
		Return(nil)
	expectSessionIssued(fx)

	output, err := fx.service.Register(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, entity.RoleSeller, output.Account.Role)
	assert.False(t, output.Account.IsApproved)
	assert.Equal(t, "Bob's Books", output.Account.BusinessName)
}

func TestAuthService_Register_SellerWithoutBusinessName(t *testing.T) {
	fx := createTestAuthService(t)

	_, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Name:     "Bob Seller",
		Email:    "bob@example.com",
		Password: "StrongSecret123!",
		Role:     "seller",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAuthService_Register_AdminRoleRejected(t *testing.T) {
	fx := createTestAuthService(t)

	_, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Name:     "Mallory",
		Email:    "mallory@example.com",
		Password: "StrongSecret123!",
		Role:     "admin",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestAuthService(t)

	input := &usecase.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "StrongSecret123!",
	}

	fx.hasher.On("ValidatePasswordStrength", input.Password).Return(nil)
	fx.hasher.On("Hash", input.Password).Return("hashed", nil)
	fx.accountRepo.On("FindByEmail", mock.Anything, input.Email).
		Return(&entity.Account{ID: uuid.New(), Email: input.Email}, nil)

	_, err := fx.service.Register(context.Background(), input)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyExists)
	fx.accountRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	fx := createTestAuthService(t)

	fx.hasher.On("ValidatePasswordStrength", "weak").
		Return(errors.New("password must be at least 8 characters long"))

	_, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "weak",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)

	account := &entity.Account{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		PasswordHash: "hashed",
		Role:         entity.RoleReader,
	}

	fx.accountRepo.On("FindByEmail", mock.Anything, account.Email).Return(account, nil)
	fx.hasher.On("Check", "StrongSecret123!", "hashed").Return(true)
	expectSessionIssued(fx)

	output, err := fx.service.Login(context.Background(), &usecase.LoginInput{
		Email:    account.Email,
		Password: "StrongSecret123!",
	})

	require.NoError(t, err)
	assert.Equal(t, account.ID, output.Account.ID)
	assert.Equal(t, "access-token", output.AccessToken)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	fx := createTestAuthService(t)

	account := &entity.Account{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		PasswordHash: "hashed",
	}

	fx.accountRepo.On("FindByEmail", mock.Anything, account.Email).Return(account, nil)
	fx.hasher.On("Check", "wrong", "hashed").Return(false)

	_, err := fx.service.Login(context.Background(), &usecase.LoginInput{
		Email:    account.Email,
		Password: "wrong",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	fx := createTestAuthService(t)

	fx.accountRepo.On("FindByEmail", mock.Anything, "ghost@example.com").
		Return(nil, repository.ErrAccountNotFound)

	_, err := fx.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever",
	})

	require.Error(t, err)
	// Unknown email and wrong password must be indistinguishable.
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	fx := createTestAuthService(t)

	account := &entity.Account{ID: uuid.New(), Role: entity.RoleReader}
	claims := &service.Claims{AccountID: account.ID, Type: "refresh"}

	fx.tokenService.On("ValidateToken", "refresh-token").Return(claims, nil)
	fx.tokenService.On("HashToken", "refresh-token").Return("refresh-hash")
	fx.refreshTokenRepo.On("FindRefreshTokenByHash", mock.Anything, "refresh-hash").
		Return(&entity.RefreshToken{AccountID: account.ID, TokenHash: "refresh-hash"}, nil)
	fx.accountRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)
	fx.tokenService.On("GenerateTokens", account.ID, []string{"reader"}).
		Return("new-access", "unused-refresh", nil)

	output, err := fx.service.RefreshToken(context.Background(), &usecase.RefreshTokenInput{
		RefreshToken: "refresh-token",
	})

	require.NoError(t, err)
	assert.Equal(t, "new-access", output.AccessToken)
}

func TestAuthService_RefreshToken_AccessTokenRejected(t *testing.T) {
	fx := createTestAuthService(t)

	claims := &service.Claims{AccountID: uuid.New(), Type: "access"}
	fx.tokenService.On("ValidateToken", "access-token").Return(claims, nil)

	_, err := fx.service.RefreshToken(context.Background(), &usecase.RefreshTokenInput{
		RefreshToken: "access-token",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestAuthService_Logout(t *testing.T) {
	fx := createTestAuthService(t)

	fx.tokenService.On("ValidateToken", "refresh-token").
		Return(&service.Claims{Type: "refresh"}, nil)
	fx.tokenService.On("HashToken", "refresh-token").Return("refresh-hash")
	fx.refreshTokenRepo.On("DeleteRefreshTokenByHash", mock.Anything, "refresh-hash").Return(nil)

	err := fx.service.Logout(context.Background(), &usecase.LogoutInput{RefreshToken: "refresh-token"})

	require.NoError(t, err)
	fx.refreshTokenRepo.AssertExpectations(t)
}
