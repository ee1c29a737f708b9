package impl

import (
	"context"
	"log/slog"

	deliverycontext "booknest/internal/delivery/context"
	"booknest/internal/domain/entity"
	domainerrors "booknest/internal/domain/errors"
	"booknest/internal/domain/repository"
	"booknest/internal/domain/service"
	"booknest/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager        repository.TransactionManager
	accountRepo      repository.AccountRepository
	bookRepo         repository.BookRepository
	refreshTokenRepo repository.RefreshTokenRepository
	hasher           service.PasswordHasher
	logger           *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	AccountRepo      repository.AccountRepository
	BookRepo         repository.BookRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Hasher           service.PasswordHasher
	Logger           *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:        params.TxManager,
		accountRepo:      params.AccountRepo,
		bookRepo:         params.BookRepo,
		refreshTokenRepo: params.RefreshTokenRepo,
		hasher:           params.Hasher,
		logger:           params.Logger,
	}
}

func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetAccount returns the account behind the authenticated caller.
func (srv *accountService) GetAccount(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to load account")
	}

	return account, nil
}

// UpdateProfile changes name and email of the acting account.
// Empty fields keep their current value.
func (srv *accountService) UpdateProfile(ctx context.Context, input *usecase.UpdateProfileInput) (*entity.Account, error) {
	srv.log(ctx).Info("Updating profile", slog.Any("accountID", input.AccountID))

	var account *entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		var findErr error
		account, findErr = accountRepo.FindByID(ctx, input.AccountID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound
			}

			return errors.Wrap(findErr, "failed to load account")
		}

		if input.Name != "" {
			account.Name = input.Name
		}
		if input.Email != "" && input.Email != account.Email {
			if _, err := accountRepo.FindByEmail(ctx, input.Email); err == nil {
				return domainerrors.ErrEmailAlreadyExists.WrapMessage("email already registered")
			} else if !errors.Is(err, repository.ErrAccountNotFound) {
				return errors.Wrap(err, "failed to check email availability")
			}
			account.Email = input.Email
		}
		if input.BusinessName != "" && account.Role == entity.RoleSeller {
			account.BusinessName = input.BusinessName
		}

		return accountRepo.Update(ctx, account)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to update profile", slog.Any("accountID", input.AccountID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update profile")
	}

	return account, nil
}

// UpdatePassword verifies the current password and stores a new hash.
// Every stored session of the account is revoked afterwards.
func (srv *accountService) UpdatePassword(ctx context.Context, input *usecase.UpdatePasswordInput) error {
	srv.log(ctx).Info("Updating password", slog.Any("accountID", input.AccountID))

	account, err := srv.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrAccountNotFound
		}

		return errors.Wrap(err, "failed to load account")
	}

	// bcrypt checks happen outside the transaction (CPU-bound).
	if !srv.hasher.Check(input.CurrentPassword, account.PasswordHash) {
		srv.log(ctx).Warn("Password update with wrong current password", slog.Any("accountID", input.AccountID))

		return errors.Wrap(domainerrors.ErrInvalidCredentials, "current password does not match")
	}

	newHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash new password")
	}

	account.PasswordHash = newHash

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.AccountRepo().Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to store new password")
		}

		// Changing the password ends all sessions.
		return repoFactory.RefreshTokenRepo().DeleteRefreshTokensByAccountID(ctx, account.ID)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute password update transaction", slog.Any("accountID", input.AccountID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute password update transaction")
	}

	srv.log(ctx).Debug("Password updated", slog.Any("accountID", input.AccountID))

	return nil
}

// GetWishlist resolves the account's wishlist into book listings, preserving
// wishlist order. Deleted books drop out silently.
func (srv *accountService) GetWishlist(ctx context.Context, accountID uuid.UUID) ([]*entity.Book, error) {
	account, err := srv.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	books, err := srv.bookRepo.FindByIDs(ctx, account.Wishlist)
	if err != nil {
		srv.log(ctx).Error("Failed to resolve wishlist", slog.Any("accountID", accountID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to resolve wishlist")
	}

	return books, nil
}

// ToggleWishlist adds the book to the wishlist or removes it if present.
func (srv *accountService) ToggleWishlist(ctx context.Context, input *usecase.ToggleWishlistInput) (*usecase.ToggleWishlistOutput, error) {
	srv.log(ctx).Info("Toggling wishlist", slog.Any("accountID", input.AccountID), slog.Any("bookID", input.BookID))

	var output *usecase.ToggleWishlistOutput
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()
		bookRepo := repoFactory.BookRepo()

		account, err := accountRepo.FindByID(ctx, input.AccountID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound
			}

			return errors.Wrap(err, "failed to load account")
		}

		if _, err := bookRepo.FindByID(ctx, input.BookID); err != nil {
			if errors.Is(err, repository.ErrBookNotFound) {
				return domainerrors.ErrBookNotFound
			}

			return errors.Wrap(err, "failed to load book")
		}

		added := account.ToggleWishlist(input.BookID)

		if err := accountRepo.Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to store wishlist")
		}

		output = &usecase.ToggleWishlistOutput{
			Added:    added,
			Wishlist: account.Wishlist,
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute wishlist transaction", slog.Any("accountID", input.AccountID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute wishlist transaction")
	}

	return output, nil
}

// ListAccounts returns every account, oldest first.
func (srv *accountService) ListAccounts(ctx context.Context) ([]*entity.Account, error) {
	accounts, err := srv.accountRepo.List(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list accounts", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list accounts")
	}

	return accounts, nil
}

// ApproveSeller marks a seller account as approved to publish listings.
// Approving an already approved seller is a no-op.
func (srv *accountService) ApproveSeller(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	srv.log(ctx).Info("Approving seller", slog.Any("accountID", accountID))

	var account *entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		var findErr error
		account, findErr = accountRepo.FindByID(ctx, accountID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound
			}

			return errors.Wrap(findErr, "failed to load account")
		}

		if account.Role != entity.RoleSeller {
			return errors.Wrap(domainerrors.ErrValidationFailed, "only seller accounts can be approved")
		}
		if account.IsApproved {
			return nil
		}

		account.IsApproved = true

		return accountRepo.Update(ctx, account)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to approve seller", slog.Any("accountID", accountID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to approve seller")
	}

	return account, nil
}

// DeleteAccount removes an account. Reviews and sessions cascade; orders
// survive with the account reference nulled.
func (srv *accountService) DeleteAccount(ctx context.Context, accountID uuid.UUID) error {
	srv.log(ctx).Info("Deleting account", slog.Any("accountID", accountID))

	if err := srv.accountRepo.Delete(ctx, accountID); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrAccountNotFound
		}
		srv.log(ctx).Error("Failed to delete account", slog.Any("accountID", accountID), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete account")
	}

	return nil
}
