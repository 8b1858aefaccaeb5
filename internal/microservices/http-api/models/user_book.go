package models

// UserBook assigns a book to a user. The (user_id, book_id) pair is the key,
// so a pair exists at most once.
type UserBook struct {
	UserID int64 `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	BookID int64 `gorm:"primaryKey;autoIncrement:false" json:"book_id"`

	// Associations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Book *Book `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserBook) TableName() string {
	return "users_books"
}
