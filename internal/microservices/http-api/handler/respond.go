package handler

import (
	"bookshelf/internal/microservices/http-api/dto"
	"bookshelf/internal/validation"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidID      = "id must be a positive integer"
	msgInvalidPayload = "Invalid payload"
	msgUserExists     = "User exists!"
)

func errorJSON(c *gin.Context, status int, message string) {
	c.JSON(status, dto.ErrorResponse{Error: message})
}

func invalidPayload(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   msgInvalidPayload,
		Details: validation.Issues(err),
	})
}

// fail hands an unexpected error to the fault boundary (middleware.Errors).
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
}

// idParam reads a positive integer path parameter, answering 400 when it
// is not one.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, ok := validation.ParsePositiveInt(c.Param(name))
	if !ok {
		errorJSON(c, http.StatusBadRequest, msgInvalidID)
	}
	return id, ok
}
