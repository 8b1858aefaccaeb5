package dto

// Data Transfer Objects for authentication requests and responses

// SignInRequest: payload for user sign-in
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SignInUser echoes the submitted credentials back to the caller
type SignInUser struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInResponse: response payload after a successful sign-in
type SignInResponse struct {
	User  SignInUser `json:"user"`
	Token string     `json:"token"`
}
