package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/adityasinghr651/civics-api/pkg/errors"
)

// OK sends a success response: {"ok":true} merged with the provided fields.
func OK(c *gin.Context, status int, fields gin.H) {
	body := gin.H{"ok": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(status, body)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, fields gin.H) {
	OK(c, http.StatusCreated, fields)
}

// Error sends an error response as {"error": message} with the status carried
// by the error. Untyped errors collapse to a generic 500 message.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.JSON(appErr.Status, gin.H{"error": appErr.Message})
}
