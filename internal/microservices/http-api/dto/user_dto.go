package dto

import "bookshelf/internal/microservices/http-api/models"

// SignUpRequest: payload for POST /sign-up and POST /users
type SignUpRequest struct {
	Username string `json:"username" validate:"required,min=6"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (r SignUpRequest) ToModel() models.User {
	return models.User{Username: r.Username, Email: r.Email, Password: r.Password}
}

// UpdateUserRequest: strict partial payload for PATCH /users/:id
type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitnil,min=6"`
	Email    *string `json:"email" validate:"omitnil,email"`
	Password *string `json:"password" validate:"omitnil,min=6"`
}

// Changes returns column -> value for the fields present in the patch.
func (r UpdateUserRequest) Changes() map[string]any {
	changes := make(map[string]any, 3)
	if r.Username != nil {
		changes["username"] = *r.Username
	}
	if r.Email != nil {
		changes["email"] = *r.Email
	}
	if r.Password != nil {
		changes["password"] = *r.Password
	}
	return changes
}
