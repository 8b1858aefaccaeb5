package models

// User is an account holder. Password holds whatever the configured hasher
// produced, which is the raw password in plain mode.
type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"size:255;not null" json:"username"`
	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"password"`
}

func (User) TableName() string {
	return "users"
}
