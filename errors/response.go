package errors

import (
	stderrors "errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lerpz-com/lerpz-auth/logger"
)

// Render writes err to the response. Non-HandlerError values are
// treated as internal faults. Any error carrying a cause is assigned a
// fresh LogID and logged with its full detail before the sanitized body
// goes out.
func Render(c *gin.Context, log *logger.Logger, err error) {
	handlerErr, ok := AsHandlerError(err)
	if !ok {
		handlerErr = Internal(err)
	}

	if handlerErr.cause != nil {
		if handlerErr.LogID == nil {
			id := uuid.New()
			handlerErr.LogID = &id
		}
		fields := map[string]any{
			"log_id": handlerErr.LogID.String(),
			"error":  handlerErr.cause.Error(),
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		}
		if handlerErr.Status >= 500 {
			log.Error("request failed with server error", fields)
		} else {
			log.Warn("request failed with client error", fields)
		}
	}

	c.AbortWithStatusJSON(handlerErr.Status, handlerErr)
}

// IsHandlerError checks whether err is (or wraps) a HandlerError.
func IsHandlerError(err error) bool {
	var he *HandlerError
	return stderrors.As(err, &he)
}

// AsHandlerError extracts a HandlerError from err if possible.
func AsHandlerError(err error) (*HandlerError, bool) {
	var he *HandlerError
	if stderrors.As(err, &he) {
		return he, true
	}
	return nil, false
}
