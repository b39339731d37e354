package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lerpz-com/lerpz-auth/logger"
)

// RequestID injects a unique X-Request-Id header into every
// request/response and attaches it to the request context so log lines
// and error correlation IDs can be tied back to the request.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}
		c.Header("X-Request-Id", id)
		c.Request = c.Request.WithContext(
			logger.ContextWithRequestID(c.Request.Context(), id),
		)
		c.Next()
	}
}
