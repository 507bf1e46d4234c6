package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-api/internal/models"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
)

// Envelope represents the common response contract.
type Envelope struct {
	Success    *bool              `json:"success,omitempty"`
	Data       interface{}        `json:"data,omitempty"`
	Error      string             `json:"error,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

// JSON sends a success response with optional pagination metadata.
func JSON(c *gin.Context, status int, data interface{}, pagination *models.Pagination) {
	noStore(c)
	c.JSON(status, Envelope{Data: data, Pagination: pagination})
}

// Created responds with HTTP 201 Created and the success flag used by mutation endpoints.
func Created(c *gin.Context, data interface{}) {
	noStore(c)
	ok := true
	c.JSON(http.StatusCreated, Envelope{Success: &ok, Data: data})
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	status, message := resolve(c, err)
	noStore(c)
	c.JSON(status, Envelope{Error: message})
}

// Failure is Error for mutation endpoints whose contract carries "success": false.
func Failure(c *gin.Context, err error) {
	status, message := resolve(c, err)
	noStore(c)
	ok := false
	c.JSON(status, Envelope{Success: &ok, Error: message})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// resolve maps err to a status and a client-safe message. Server faults are
// attached to the gin context so the request logger records the cause.
func resolve(c *gin.Context, err error) (int, string) {
	appErr := appErrors.FromError(err)
	if appErr.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
		if appErr.Code == appErrors.ErrInternal.Code {
			return appErr.Status, appErrors.ErrInternal.Message
		}
	}
	return appErr.Status, appErr.Message
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}
