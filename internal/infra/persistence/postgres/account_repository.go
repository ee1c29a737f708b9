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

// accountRepository implements the domain.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
// It returns the repository as a domain interface, adhering to dependency inversion.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// preloadWishlist keeps wishlist entries in insertion order on every read.
func preloadWishlist(db *gorm.DB) *gorm.DB {
	return db.Order("wishlist_items.position ASC")
}

// FindByID retrieves a single account by its unique ID, including its wishlist.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Preload("WishlistItems", preloadWishlist).
		First(&accountM, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return toAccountDomain(&accountM), nil
}

// FindByEmail retrieves a single account by its email address.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Preload("WishlistItems", preloadWishlist).
		First(&accountM, "email = ?", email).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return toAccountDomain(&accountM), nil
}

// List retrieves all accounts ordered by creation time.
func (repo *accountRepository) List(ctx context.Context) ([]*entity.Account, error) {
	var accountModels []*model.AccountModel
	err := repo.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&accountModels).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	accounts := make([]*entity.Account, 0, len(accountModels))
	for _, accountM := range accountModels {
		accounts = append(accounts, toAccountDomain(accountM))
	}

	return accounts, nil
}

// Create persists a new account entity to the database.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailAlreadyExists.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrAccountCreationFailed.WrapMessage("missing required account information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	// Update the account entity with the generated ID and timestamps
	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// Update modifies an existing account entity, including its wishlist.
// The wishlist rows are replaced wholesale so positions stay contiguous.
func (repo *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	db := repo.db.WithContext(ctx)

	updates := map[string]any{
		"name":          accountM.Name,
		"email":         accountM.Email,
		"password_hash": accountM.PasswordHash,
		"role":          accountM.Role,
		"business_name": accountM.BusinessName,
		"is_approved":   accountM.IsApproved,
	}

	result := db.Model(&model.AccountModel{}).Where("id = ?", accountM.ID).Updates(updates)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrEmailAlreadyExists.WrapMessage("email already exists")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	if err := db.Where("account_id = ?", accountM.ID).Delete(&model.WishlistItemModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear wishlist")
	}
	if len(accountM.WishlistItems) > 0 {
		if err := db.Create(&accountM.WishlistItems).Error; err != nil {
			if isForeignKeyConstraintViolation(err) {
				return domainerrors.ErrAccountUpdateFailed.WrapMessage("wishlist references an unknown book")
			}

			return domainerrors.NewDatabaseExecuteError(err, "failed to store wishlist")
		}
	}

	return nil
}

// Delete removes an account. Reviews, refresh tokens and wishlist entries
// cascade at the database level; orders keep running with account_id nulled.
func (repo *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.AccountModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	wishlist := make([]uuid.UUID, 0, len(data.WishlistItems))
	for _, item := range data.WishlistItems {
		wishlist = append(wishlist, item.BookID)
	}

	return &entity.Account{
		ID:           data.ID,
		Name:         data.Name,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Role:         entity.Role(data.Role),
		BusinessName: data.BusinessName,
		IsApproved:   data.IsApproved,
		Wishlist:     wishlist,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromAccountDomain converts a domain Account entity to a GORM AccountModel for persistence.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	items := make([]model.WishlistItemModel, 0, len(data.Wishlist))
	for i, bookID := range data.Wishlist {
		items = append(items, model.WishlistItemModel{
			AccountID: data.ID,
			BookID:    bookID,
			Position:  i,
		})
	}

	return &model.AccountModel{
		ID:            data.ID,
		Name:          data.Name,
		Email:         data.Email,
		PasswordHash:  data.PasswordHash,
		Role:          data.Role.String(),
		BusinessName:  data.BusinessName,
		IsApproved:    data.IsApproved,
		WishlistItems: items,
	}
}

// toPublicAccount converts an AccountModel to the public Seller slice
// attached to listings, orders and reviews.
func toPublicAccount(data *model.AccountModel) *entity.Seller {
	if data == nil {
		return nil
	}

	return &entity.Seller{
		ID:           data.ID,
		Name:         data.Name,
		Email:        data.Email,
		BusinessName: data.BusinessName,
	}
}
