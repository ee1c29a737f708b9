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

// bookRepository implements the domain.BookRepository interface using GORM.
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository is the constructor for bookRepository.
func NewBookRepository(db *gorm.DB) repository.BookRepository {
	return &bookRepository{db: db}
}

// FindByID retrieves a single book by its unique ID with seller info joined.
func (repo *bookRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Book, error) {
	var bookM model.BookModel
	err := repo.db.WithContext(ctx).
		Preload("Seller").
		First(&bookM, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBookNotFound
		}

		return nil, errors.Wrap(err, "failed to find book by id")
	}

	return toBookDomain(&bookM), nil
}

// FindByIDs retrieves the books matching the given IDs, keeping input order.
// Missing IDs are silently skipped.
func (repo *bookRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Book, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var bookModels []*model.BookModel
	err := repo.db.WithContext(ctx).
		Preload("Seller").
		Find(&bookModels, "id IN ?", ids).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to find books by ids")
	}

	byID := make(map[uuid.UUID]*model.BookModel, len(bookModels))
	for _, bookM := range bookModels {
		byID[bookM.ID] = bookM
	}

	books := make([]*entity.Book, 0, len(ids))
	for _, id := range ids {
		if bookM, ok := byID[id]; ok {
			books = append(books, toBookDomain(bookM))
		}
	}

	return books, nil
}

// List retrieves active listings with seller info joined, newest first.
func (repo *bookRepository) List(ctx context.Context) ([]*entity.Book, error) {
	return repo.list(ctx, repo.db.WithContext(ctx).Where("is_active = ?", true))
}

// ListAll retrieves every listing, active or not, with seller info joined.
func (repo *bookRepository) ListAll(ctx context.Context) ([]*entity.Book, error) {
	return repo.list(ctx, repo.db.WithContext(ctx))
}

// ListBySeller retrieves all listings owned by the given seller.
func (repo *bookRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entity.Book, error) {
	return repo.list(ctx, repo.db.WithContext(ctx).Where("seller_id = ?", sellerID))
}

func (repo *bookRepository) list(_ context.Context, db *gorm.DB) ([]*entity.Book, error) {
	var bookModels []*model.BookModel
	err := db.
		Preload("Seller").
		Order("created_at DESC").
		Find(&bookModels).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to list books")
	}

	books := make([]*entity.Book, 0, len(bookModels))
	for _, bookM := range bookModels {
		books = append(books, toBookDomain(bookM))
	}

	return books, nil
}

// Create persists a new book entity.
func (repo *bookRepository) Create(ctx context.Context, book *entity.Book) error {
	bookM := fromBookDomain(book)

	if err := repo.db.WithContext(ctx).Create(bookM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrBookNotFound.WrapMessage("seller reference is invalid")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required book information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create book")
	}

	book.ID = bookM.ID
	book.CreatedAt = bookM.CreatedAt
	book.UpdatedAt = bookM.UpdatedAt

	return nil
}

// Update modifies an existing book entity.
func (repo *bookRepository) Update(ctx context.Context, book *entity.Book) error {
	bookM := fromBookDomain(book)

	// Struct-based Updates with Select writes zero values too and runs the
	// JSON serializer on the authors and genres columns.
	result := repo.db.WithContext(ctx).
		Model(&model.BookModel{}).
		Where("id = ?", bookM.ID).
		Select("title", "description", "price", "stock", "authors", "genres", "image_url", "is_active").
		Updates(bookM)

	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return repository.ErrInsufficientStock
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update book")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBookNotFound
	}

	return nil
}

// Delete removes a book. Reviews cascade at the database level and order item
// snapshots keep their copied fields with book_id nulled.
func (repo *bookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.BookModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete book")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBookNotFound
	}

	return nil
}

// DecrementStock atomically subtracts quantity from the book's stock. The
// guard in the WHERE clause keeps concurrent checkouts from crossing zero.
func (repo *bookRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.BookModel{}).
		Where("id = ? AND stock >= ?", id, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to decrement stock")
	}

	if result.RowsAffected == 0 {
		// Distinguish a missing book from an insufficient stock floor.
		var count int64
		if err := repo.db.WithContext(ctx).
			Model(&model.BookModel{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to check book existence")
		}
		if count == 0 {
			return repository.ErrBookNotFound
		}

		return repository.ErrInsufficientStock
	}

	return nil
}

// UpdateRating persists a recomputed rating aggregate onto the book.
func (repo *bookRepository) UpdateRating(ctx context.Context, id uuid.UUID, ratings float64, numReviews int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.BookModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"ratings":     ratings,
			"num_reviews": numReviews,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update rating")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBookNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toBookDomain converts a GORM BookModel to a domain Book entity.
func toBookDomain(data *model.BookModel) *entity.Book {
	if data == nil {
		return nil
	}

	return &entity.Book{
		ID:          data.ID,
		Title:       data.Title,
		Description: data.Description,
		Price:       data.Price,
		Stock:       data.Stock,
		Authors:     data.Authors,
		Genres:      data.Genres,
		Ratings:     data.Ratings,
		NumReviews:  data.NumReviews,
		SellerID:    data.SellerID,
		Seller:      toPublicAccount(data.Seller),
		ImageURL:    data.ImageURL,
		IsActive:    data.IsActive,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromBookDomain converts a domain Book entity to a GORM BookModel for persistence.
func fromBookDomain(data *entity.Book) *model.BookModel {
	if data == nil {
		return nil
	}

	return &model.BookModel{
		ID:          data.ID,
		Title:       data.Title,
		Description: data.Description,
		Price:       data.Price,
		Stock:       data.Stock,
		Authors:     data.Authors,
		Genres:      data.Genres,
		Ratings:     data.Ratings,
		NumReviews:  data.NumReviews,
		SellerID:    data.SellerID,
		ImageURL:    data.ImageURL,
		IsActive:    data.IsActive,
	}
}
