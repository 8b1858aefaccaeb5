package handler

import (
	"errors"
	"net/http"

	"bookshelf/internal/microservices/http-api/dto"
	"bookshelf/internal/microservices/http-api/repository"
	"bookshelf/internal/validation"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidAssignIDs   = "userId and bookId must be positive integers"
	msgInvalidReassignIDs = "bookId in path and userId in body must be positive integers"
	msgAssignmentExists   = "book already exists"
	msgAssignmentNotFound = "Assignment not found for this book"
	msgMissingUserOrBook  = "User or book not found"
)

type UserBookHandler struct {
	assignments repository.UserBookRepository
}

func NewUserBookHandler(assignments repository.UserBookRepository) *UserBookHandler {
	return &UserBookHandler{assignments: assignments}
}

func (h *UserBookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/user/:userId/book/:bookId", h.Assign)
	rg.PATCH("/user/:userId/book/:bookId", h.Reassign)
	rg.DELETE("/user/:userId/book/:bookId", h.Unassign)
}

func pathPair(c *gin.Context) (userID, bookID int64, ok bool) {
	userID, userOK := validation.ParsePositiveInt(c.Param("userId"))
	bookID, bookOK := validation.ParsePositiveInt(c.Param("bookId"))
	return userID, bookID, userOK && bookOK
}

func (h *UserBookHandler) Assign(c *gin.Context) {
	userID, bookID, ok := pathPair(c)
	if !ok {
		errorJSON(c, http.StatusBadRequest, msgInvalidAssignIDs)
		return
	}

	assigned, err := h.assignments.Assign(c.Request.Context(), userID, bookID)
	if err != nil {
		if errors.Is(err, repository.ErrMissingReference) {
			errorJSON(c, http.StatusNotFound, msgMissingUserOrBook)
			return
		}
		fail(c, err)
		return
	}
	// insert-or-ignore: nothing inserted means the pair already existed
	if len(assigned) == 0 {
		errorJSON(c, http.StatusConflict, msgAssignmentExists)
		return
	}
	c.JSON(http.StatusCreated, assigned)
}

func (h *UserBookHandler) Reassign(c *gin.Context) {
	oldUserID, bookID, ok := pathPair(c)
	if !ok {
		errorJSON(c, http.StatusBadRequest, msgInvalidReassignIDs)
		return
	}

	var in dto.ReassignRequest
	if err := validation.Decode(c.Request.Body, &in); err != nil {
		errorJSON(c, http.StatusBadRequest, msgInvalidReassignIDs)
		return
	}
	newUserID, ok := validation.PositiveInt(in.NewUserID)
	if !ok {
		errorJSON(c, http.StatusBadRequest, msgInvalidReassignIDs)
		return
	}

	updated, err := h.assignments.Reassign(c.Request.Context(), oldUserID, newUserID, bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			errorJSON(c, http.StatusConflict, msgAssignmentExists)
		case errors.Is(err, repository.ErrMissingReference):
			errorJSON(c, http.StatusNotFound, msgMissingUserOrBook)
		default:
			fail(c, err)
		}
		return
	}
	if len(updated) == 0 {
		errorJSON(c, http.StatusNotFound, msgAssignmentNotFound)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *UserBookHandler) Unassign(c *gin.Context) {
	userID, bookID, ok := pathPair(c)
	if !ok {
		errorJSON(c, http.StatusBadRequest, msgInvalidReassignIDs)
		return
	}

	count, err := h.assignments.Unassign(c.Request.Context(), userID, bookID)
	if err != nil {
		fail(c, err)
		return
	}
	if count == 0 {
		errorJSON(c, http.StatusNotFound, msgAssignmentNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}
