package repository

import (
	"context"

	"bookshelf/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookRepository is the persistence gateway used by the books handlers.
// Update returns the changed rows, empty when no book matched; Delete returns
// the number of removed rows.
type BookRepository interface {
	FindAll(ctx context.Context) ([]models.Book, error)
	FindByID(ctx context.Context, id int64) (*models.Book, error)
	Create(ctx context.Context, book models.Book) ([]models.Book, error)
	Update(ctx context.Context, id int64, changes map[string]any) ([]models.Book, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) FindAll(ctx context.Context) ([]models.Book, error) {
	books := []models.Book{}
	if err := r.db.WithContext(ctx).Order("id").Find(&books).Error; err != nil {
		return nil, translate("list books", err)
	}
	return books, nil
}

func (r *bookRepository) FindByID(ctx context.Context, id int64) (*models.Book, error) {
	var book models.Book
	if err := r.db.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, translate("find book", err)
	}
	return &book, nil
}

func (r *bookRepository) Create(ctx context.Context, book models.Book) ([]models.Book, error) {
	book.ID = 0
	if err := r.db.WithContext(ctx).Create(&book).Error; err != nil {
		return nil, translate("create book", err)
	}
	// GORM populates book.ID
	return []models.Book{book}, nil
}

func (r *bookRepository) Update(ctx context.Context, id int64, changes map[string]any) ([]models.Book, error) {
	if len(changes) == 0 {
		// nothing to write, report the current row (if any)
		book, err := r.FindByID(ctx, id)
		if err != nil {
			if isNotFound(err) {
				return []models.Book{}, nil
			}
			return nil, err
		}
		return []models.Book{*book}, nil
	}

	books := []models.Book{}
	err := r.db.WithContext(ctx).
		Model(&books).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(changes).Error
	if err != nil {
		return nil, translate("update book", err)
	}
	return books, nil
}

func (r *bookRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Book{})
	if result.Error != nil {
		return 0, translate("delete book", result.Error)
	}
	return result.RowsAffected, nil
}
