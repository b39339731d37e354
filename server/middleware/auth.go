// Package middleware provides the gin middleware used by the auth
// service: bearer-token authentication, request IDs and panic recovery.
package middleware

import (
	"crypto/ed25519"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lerpz-com/lerpz-auth/authctx"
	"github.com/lerpz-com/lerpz-auth/errors"
	"github.com/lerpz-com/lerpz-auth/logger"
	"github.com/lerpz-com/lerpz-auth/token"
)

// AuthConfig configures the authentication middleware.
type AuthConfig struct {
	// VerifyingKey is the deployment's Ed25519 public key.
	VerifyingKey ed25519.PublicKey
	// RequiredIssuers, when non-empty, requires the token's issuer set
	// to intersect it.
	RequiredIssuers []token.Issuer
	// RequiredAudiences, when non-empty, requires the token's audience
	// set to intersect it.
	RequiredAudiences []token.Audience
	// Logger used for the uniform failure logging. Defaults to the
	// process logger.
	Logger *logger.Logger
}

// Auth returns middleware that authenticates requests with a bearer
// token. The Authorization header is split on whitespace and the last
// field is taken as the token, so both "Bearer <tok>" and a bare token
// are accepted; the prefix is a compatibility convenience, not a
// security boundary.
//
// Every validation failure, of any internal kind, produces the same
// unauthorized response. On success the embedded identity is placed in
// the request context for downstream handlers.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}
	log = log.WithComponent("auth")

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			errors.Render(c, log, errors.Unauthorized())
			return
		}

		fields := strings.Fields(header)
		if len(fields) == 0 {
			errors.Render(c, log, errors.Unauthorized())
			return
		}
		bearer := fields[len(fields)-1]

		validator := token.NewValidator(bearer)
		if len(cfg.RequiredIssuers) > 0 {
			validator = validator.WithRequiredIssuers(cfg.RequiredIssuers...)
		}
		if len(cfg.RequiredAudiences) > 0 {
			validator = validator.WithRequiredAudiences(cfg.RequiredAudiences...)
		}

		claims, err := validator.DecodeAndVerify(cfg.VerifyingKey)
		if err != nil {
			log.Debug("token rejected", map[string]any{"reason": err.Error()})
			errors.Render(c, log, errors.Unauthorized())
			return
		}

		ctx := authctx.Set(c.Request.Context(), claims.User)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
