package handler

import (
	"errors"
	"net/http"

	"bookshelf/internal/microservices/http-api/dto"
	"bookshelf/internal/microservices/http-api/repository"
	"bookshelf/internal/validation"

	"github.com/gin-gonic/gin"
)

const msgBookNotFound = "Book not found"

type BookHandler struct {
	books repository.BookRepository
}

func NewBookHandler(books repository.BookRepository) *BookHandler {
	return &BookHandler{books: books}
}

func (h *BookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/books", h.List)
	rg.GET("/books/:id", h.Get)
	rg.POST("/books", h.Create)
	rg.PATCH("/books/:id", h.Update)
	rg.DELETE("/books/:id", h.Delete)
}

func (h *BookHandler) List(c *gin.Context) {
	books, err := h.books.FindAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (h *BookHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	book, err := h.books.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			errorJSON(c, http.StatusNotFound, msgBookNotFound)
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *BookHandler) Create(c *gin.Context) {
	var in dto.CreateBookRequest
	if err := validation.Parse(c.Request.Body, &in); err != nil {
		invalidPayload(c, err)
		return
	}

	created, err := h.books.Create(c.Request.Context(), in.ToModel())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *BookHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var in dto.UpdateBookRequest
	if err := validation.Parse(c.Request.Body, &in); err != nil {
		invalidPayload(c, err)
		return
	}

	// no existence pre-check, an empty result means no such book
	updated, err := h.books.Update(c.Request.Context(), id, in.Changes())
	if err != nil {
		fail(c, err)
		return
	}
	if len(updated) == 0 {
		errorJSON(c, http.StatusNotFound, msgBookNotFound)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	count, err := h.books.Delete(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if count == 0 {
		errorJSON(c, http.StatusNotFound, msgBookNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}
