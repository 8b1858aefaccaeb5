package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "internal server error"

// Errors is the fault boundary for handler failures. Handlers attach
// unexpected errors with c.Error and return without writing; the error is
// logged here and the client gets a generic 500.
func Errors(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		for _, e := range c.Errors {
			logger.ErrorContext(c.Request.Context(), "request failed",
				"error", e.Err,
				"method", c.Request.Method,
				"path", c.FullPath(),
				"request_id", RequestID(c),
			)
		}
		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		}
	}
}

// Recovery turns panics into the same generic 500.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.ErrorContext(c.Request.Context(), "panic recovered",
			"panic", recovered,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", RequestID(c),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
	})
}
