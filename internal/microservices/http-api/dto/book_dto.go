package dto

import "bookshelf/internal/microservices/http-api/models"

// CreateBookRequest: payload for POST /books
type CreateBookRequest struct {
	Name   string `json:"name" validate:"required,min=1"`
	Author string `json:"author" validate:"required,min=1"`
	Date   string `json:"date" validate:"max=5"`
}

func (r CreateBookRequest) ToModel() models.Book {
	return models.Book{Name: r.Name, Author: r.Author, Date: r.Date}
}

// UpdateBookRequest: strict partial payload for PATCH /books/:id
type UpdateBookRequest struct {
	Name   *string `json:"name" validate:"omitnil,min=1"`
	Author *string `json:"author" validate:"omitnil,min=1"`
	Date   *string `json:"date" validate:"omitnil,max=5"`
}

// Changes returns column -> value for the fields present in the patch.
func (r UpdateBookRequest) Changes() map[string]any {
	changes := make(map[string]any, 3)
	if r.Name != nil {
		changes["name"] = *r.Name
	}
	if r.Author != nil {
		changes["author"] = *r.Author
	}
	if r.Date != nil {
		changes["date"] = *r.Date
	}
	return changes
}
