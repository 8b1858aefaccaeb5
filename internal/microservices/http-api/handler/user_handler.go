package handler

import (
	"errors"
	"net/http"

	"bookshelf/internal/microservices/http-api/dto"
	"bookshelf/internal/microservices/http-api/repository"
	"bookshelf/internal/microservices/http-api/service"
	"bookshelf/internal/validation"

	"github.com/gin-gonic/gin"
)

const (
	msgUserNotFound = "User not found"
	msgNoUserBooks  = "User not found or does not have books"
)

type UserHandler struct {
	users  repository.UserRepository
	hasher service.PasswordHasher
}

func NewUserHandler(users repository.UserRepository, hasher service.PasswordHasher) *UserHandler {
	return &UserHandler{users: users, hasher: hasher}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", h.List)
	rg.GET("/users/:id", h.Get)
	rg.GET("/user-books/:id", h.Books)
	rg.POST("/users", h.Create)
	rg.PATCH("/users/:id", h.Update)
	rg.DELETE("/users/:id", h.Delete)
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.FindAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			errorJSON(c, http.StatusNotFound, msgUserNotFound)
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Books lists the books assigned to a user. An unknown user and a user
// without books are reported the same way.
func (h *UserHandler) Books(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	books, err := h.users.FindUserBooks(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if len(books) == 0 {
		errorJSON(c, http.StatusNotFound, msgNoUserBooks)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (h *UserHandler) Create(c *gin.Context) {
	var in dto.SignUpRequest
	if err := validation.Parse(c.Request.Body, &in); err != nil {
		invalidPayload(c, err)
		return
	}

	user := in.ToModel()
	hashed, err := h.hasher.Hash(user.Password)
	if err != nil {
		fail(c, err)
		return
	}
	user.Password = hashed

	created, err := h.users.Create(c.Request.Context(), user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			errorJSON(c, http.StatusConflict, msgUserExists)
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var in dto.UpdateUserRequest
	if err := validation.Parse(c.Request.Body, &in); err != nil {
		invalidPayload(c, err)
		return
	}

	changes := in.Changes()
	if in.Password != nil {
		hashed, err := h.hasher.Hash(*in.Password)
		if err != nil {
			fail(c, err)
			return
		}
		changes["password"] = hashed
	}

	updated, err := h.users.Update(c.Request.Context(), id, changes)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			errorJSON(c, http.StatusConflict, msgUserExists)
			return
		}
		fail(c, err)
		return
	}
	if len(updated) == 0 {
		errorJSON(c, http.StatusNotFound, msgUserNotFound)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	count, err := h.users.Delete(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if count == 0 {
		errorJSON(c, http.StatusNotFound, msgUserNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}
