package models

type Book struct {
	ID     int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name   string `json:"name" gorm:"size:255;not null"`
	Author string `json:"author" gorm:"size:255;not null"`
	Date   string `json:"date" gorm:"size:5"` // publication year
}

func (Book) TableName() string {
	return "books"
}
