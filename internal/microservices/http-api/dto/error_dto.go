package dto

import "bookshelf/internal/validation"

// ErrorResponse is the body of every non 2xx answer
type ErrorResponse struct {
	Error   string             `json:"error"`
	Details []validation.Issue `json:"details,omitempty"`
}
