package handler

import (
	"errors"
	"net/http"
	"strconv"

	"bookshelf/internal/microservices/http-api/dto"
	"bookshelf/internal/microservices/http-api/repository"
	"bookshelf/internal/microservices/http-api/service"
	"bookshelf/internal/validation"

	"github.com/gin-gonic/gin"
)

const msgWrongPassword = "Wrong password!"

type AuthHandler struct {
	users  repository.UserRepository
	hasher service.PasswordHasher
	tokens service.TokenService
}

func NewAuthHandler(users repository.UserRepository, hasher service.PasswordHasher, tokens service.TokenService) *AuthHandler {
	return &AuthHandler{users: users, hasher: hasher, tokens: tokens}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sign-up", h.SignUp)
	rg.POST("/sign-in", h.SignIn)
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := validation.Parse(c.Request.Body, &req); err != nil {
		invalidPayload(c, err)
		return
	}

	ctx := c.Request.Context()
	_, err := h.users.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		errorJSON(c, http.StatusConflict, msgUserExists)
		return
	case !errors.Is(err, repository.ErrNotFound):
		fail(c, err)
		return
	}

	user := req.ToModel()
	if user.Password, err = h.hasher.Hash(user.Password); err != nil {
		fail(c, err)
		return
	}

	created, err := h.users.Create(ctx, user)
	if err != nil {
		// lost a race with a concurrent sign-up for the same email
		if errors.Is(err, repository.ErrDuplicate) {
			errorJSON(c, http.StatusConflict, msgUserExists)
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// SignIn answers the same 401 for an unknown email and a wrong password.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dto.SignInRequest
	if err := validation.Parse(c.Request.Body, &req); err != nil {
		invalidPayload(c, err)
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			errorJSON(c, http.StatusUnauthorized, msgWrongPassword)
			return
		}
		fail(c, err)
		return
	}

	if err := h.hasher.Compare(user.Password, req.Password); err != nil {
		errorJSON(c, http.StatusUnauthorized, msgWrongPassword)
		return
	}

	token, err := h.tokens.Issue(strconv.FormatInt(user.ID, 10))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SignInResponse{
		User:  dto.SignInUser{Email: req.Email, Password: req.Password},
		Token: token,
	})
}
