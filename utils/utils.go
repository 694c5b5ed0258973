package utils

import (
	"Perkdraft/utils/apperrors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusFor maps an application error kind to an HTTP status
func StatusFor(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindForbidden:
		return http.StatusForbidden
	case apperrors.KindConflict:
		return http.StatusConflict
	case apperrors.KindInvalid:
		return http.StatusBadRequest
	case apperrors.KindInsufficientCatalog:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler renders the last error a handler attached with c.Error.
// Internal errors are logged and hidden from the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status := StatusFor(err)
		if status == http.StatusInternalServerError {
			log.Printf("[HTTP] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
			c.JSON(status, gin.H{"error": "Internal server error", "kind": apperrors.KindInternal})
			return
		}
		c.JSON(status, gin.H{"error": apperrors.MessageOf(err), "kind": apperrors.KindOf(err)})
	}
}
