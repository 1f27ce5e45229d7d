package apperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Respond writes err as a JSON error body and aborts the gin chain.
// Unknown errors become a 500 without leaking their text.
func Respond(c *gin.Context, err error) {
	var appErr *AppError

	if errors.As(err, &appErr) {
		c.AbortWithStatusJSON(appErr.Status, gin.H{
			"error": appErr.Message,
			"code":  appErr.Code,
		})
		return
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error": "Internal Server Error",
		"code":  ErrorCodeInternalFailure,
	})
}

// BadJSON answers a request body that could not be bound.
func BadJSON(c *gin.Context, err error) {
	Respond(c, New(http.StatusBadRequest, ErrorCodeValidation, "Invalid JSON body: "+err.Error(), err))
}
