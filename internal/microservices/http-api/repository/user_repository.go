package repository

import (
	"context"

	"bookshelf/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines the gateway for user data operations.
// FindByID and FindByEmail return ErrNotFound when no user matches.
type UserRepository interface {
	FindAll(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserBooks(ctx context.Context, id int64) ([]models.Book, error)
	Create(ctx context.Context, user models.User) ([]models.User, error)
	Update(ctx context.Context, id int64, changes map[string]any) ([]models.User, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// userRepository is the GORM implementation of UserRepository.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository in a GORM implementation
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindAll(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, translate("list users", err)
	}
	return users, nil
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	// return nil rather than a zero-value user so callers never mistake it for a hit
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate("find user", err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate("find user by email", err)
	}
	return &user, nil
}

// FindUserBooks joins books through users_books. An unknown user and a user
// without books both yield an empty slice.
func (r *userRepository) FindUserBooks(ctx context.Context, id int64) ([]models.Book, error) {
	books := []models.Book{}
	err := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Select("books.*").
		Joins("JOIN users_books ON users_books.book_id = books.id").
		Where("users_books.user_id = ?", id).
		Order("books.id").
		Find(&books).Error
	if err != nil {
		return nil, translate("list user books", err)
	}
	return books, nil
}

func (r *userRepository) Create(ctx context.Context, user models.User) ([]models.User, error) {
	user.ID = 0
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, translate("create user", err)
	}
	return []models.User{user}, nil
}

func (r *userRepository) Update(ctx context.Context, id int64, changes map[string]any) ([]models.User, error) {
	if len(changes) == 0 {
		user, err := r.FindByID(ctx, id)
		if err != nil {
			if isNotFound(err) {
				return []models.User{}, nil
			}
			return nil, err
		}
		return []models.User{*user}, nil
	}

	users := []models.User{}
	err := r.db.WithContext(ctx).
		Model(&users).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(changes).Error
	if err != nil {
		return nil, translate("update user", err)
	}
	return users, nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if result.Error != nil {
		return 0, translate("delete user", result.Error)
	}
	return result.RowsAffected, nil
}
