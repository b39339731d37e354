package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/lerpz-com/lerpz-auth/errors"
	"github.com/lerpz-com/lerpz-auth/logger"
)

// Recovery returns middleware that recovers from panics, logs the stack
// server-side and responds with the generic internal error (carrying a
// correlation log_id, never the panic itself).
func Recovery(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.Default()
	}
	log = log.WithComponent("recovery")

	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered", map[string]any{
					"panic": fmt.Sprintf("%v", r),
					"stack": string(debug.Stack()),
					"path":  c.Request.URL.Path,
				})
				errors.Render(c, log.WithContext(c.Request.Context()),
					errors.Internal(fmt.Errorf("panic: %v", r)))
			}
		}()
		c.Next()
	}
}
