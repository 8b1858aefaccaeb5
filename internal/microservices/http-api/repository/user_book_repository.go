package repository

import (
	"context"

	"bookshelf/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserBookRepository is the gateway for book assignments.
type UserBookRepository interface {
	// Assign inserts the pair or does nothing when it already exists, in
	// which case the returned slice is empty.
	Assign(ctx context.Context, userID, bookID int64) ([]models.UserBook, error)
	// Reassign moves the (oldUserID, bookID) row to newUserID and returns the
	// updated rows, empty when nothing matched.
	Reassign(ctx context.Context, oldUserID, newUserID, bookID int64) ([]models.UserBook, error)
	// Unassign deletes the pair and returns the affected row count.
	Unassign(ctx context.Context, userID, bookID int64) (int64, error)
}

type userBookRepository struct {
	db *gorm.DB
}

func NewUserBookRepository(db *gorm.DB) UserBookRepository {
	return &userBookRepository{db: db}
}

func (r *userBookRepository) Assign(ctx context.Context, userID, bookID int64) ([]models.UserBook, error) {
	row := models.UserBook{UserID: userID, BookID: bookID}
	// uniqueness is enforced by the composite key, ON CONFLICT keeps it race free
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row)
	if result.Error != nil {
		return nil, translate("assign book", result.Error)
	}
	if result.RowsAffected == 0 {
		return []models.UserBook{}, nil
	}
	return []models.UserBook{row}, nil
}

func (r *userBookRepository) Reassign(ctx context.Context, oldUserID, newUserID, bookID int64) ([]models.UserBook, error) {
	rows := []models.UserBook{}
	err := r.db.WithContext(ctx).
		Model(&rows).
		Clauses(clause.Returning{}).
		Where("user_id = ? AND book_id = ?", oldUserID, bookID).
		Update("user_id", newUserID).Error
	if err != nil {
		return nil, translate("reassign book", err)
	}
	return rows, nil
}

func (r *userBookRepository) Unassign(ctx context.Context, userID, bookID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&models.UserBook{})
	if result.Error != nil {
		return 0, translate("unassign book", result.Error)
	}
	return result.RowsAffected, nil
}
