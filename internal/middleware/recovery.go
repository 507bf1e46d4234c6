package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
	"github.com/noah-isme/classroom-api/pkg/response"
)

// Recovery turns a handler panic into the standard 500 envelope. It must run
// inside the request logger so the recovered value reaches the log line.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		response.Error(c, appErrors.Internal(fmt.Errorf("panic: %v", recovered), "panic recovered"))
		c.Abort()
	})
}
