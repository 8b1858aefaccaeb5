package database

import (
	"context"
	"fmt"

	"bookshelf/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// Hasher produces the stored form of a seeded password.
type Hasher interface {
	Hash(password string) (string, error)
}

var SampleBooks = []models.Book{
	{Name: "The Great Gatsby", Author: "F. Scott Fitzgerald", Date: "1925"},
	{Name: "To Kill a Mockingbird", Author: "Harper Lee", Date: "1960"},
	{Name: "1984", Author: "George Orwell", Date: "1949"},
	{Name: "Pride and Prejudice", Author: "Jane Austen", Date: "1813"},
	{Name: "The Catcher in the Rye", Author: "J.D. Salinger", Date: "1951"},
	{Name: "The Hobbit", Author: "J.R.R. Tolkien", Date: "1937"},
	{Name: "Fahrenheit 451", Author: "Ray Bradbury", Date: "1953"},
	{Name: "The Lord of the Rings", Author: "J.R.R. Tolkien", Date: "1954"},
	{Name: "Emma", Author: "Jane Austen", Date: "1815"},
	{Name: "The Silmarillion", Author: "J.R.R. Tolkien", Date: "1977"},
}

var SampleUsers = []models.User{
	{Username: "MichaelJackson", Email: "michaeljackson@abv.bg", Password: "MJ2001"},
	{Username: "JohnJackson", Email: "johnjackson@abv.bg", Password: "12345678"},
	{Username: "WillJackson", Email: "willjackson@abv.bg", Password: "ShoSmith1"},
}

// SampleAssignments refer to users and books by their 1-based position in
// SampleUsers and SampleBooks.
var SampleAssignments = []models.UserBook{
	{UserID: 1, BookID: 1}, {UserID: 1, BookID: 2}, {UserID: 2, BookID: 3},
	{UserID: 3, BookID: 1}, {UserID: 3, BookID: 3}, {UserID: 3, BookID: 4},
	{UserID: 2, BookID: 5}, {UserID: 1, BookID: 6}, {UserID: 2, BookID: 7},
	{UserID: 3, BookID: 8}, {UserID: 1, BookID: 9}, {UserID: 2, BookID: 10},
	{UserID: 1, BookID: 10},
}

// Seed replaces the contents of all three tables with the sample data in a
// single transaction.
func Seed(ctx context.Context, db *gorm.DB, hasher Hasher) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("TRUNCATE TABLE users_books, users, books RESTART IDENTITY CASCADE").Error; err != nil {
			return fmt.Errorf("clear tables: %w", err)
		}

		books := append([]models.Book(nil), SampleBooks...)
		if err := tx.Create(&books).Error; err != nil {
			return fmt.Errorf("insert books: %w", err)
		}

		users := make([]models.User, len(SampleUsers))
		for i, u := range SampleUsers {
			hashed, err := hasher.Hash(u.Password)
			if err != nil {
				return fmt.Errorf("hash password of %s: %w", u.Username, err)
			}
			u.Password = hashed
			users[i] = u
		}
		if err := tx.Create(&users).Error; err != nil {
			return fmt.Errorf("insert users: %w", err)
		}

		assignments, err := resolveAssignments(SampleAssignments, users, books)
		if err != nil {
			return err
		}
		if err := tx.Create(&assignments).Error; err != nil {
			return fmt.Errorf("insert assignments: %w", err)
		}
		return nil
	})
}

// resolveAssignments maps positional sample ids onto the ids the database
// handed out.
func resolveAssignments(pairs []models.UserBook, users []models.User, books []models.Book) ([]models.UserBook, error) {
	out := make([]models.UserBook, 0, len(pairs))
	for _, p := range pairs {
		if p.UserID < 1 || int(p.UserID) > len(users) || p.BookID < 1 || int(p.BookID) > len(books) {
			return nil, fmt.Errorf("sample assignment (%d, %d) is out of range", p.UserID, p.BookID)
		}
		out = append(out, models.UserBook{
			UserID: users[p.UserID-1].ID,
			BookID: books[p.BookID-1].ID,
		})
	}
	return out, nil
}
