package server

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lerpz-com/lerpz-auth/authctx"
	"github.com/lerpz-com/lerpz-auth/errors"
	"github.com/lerpz-com/lerpz-auth/store"
	"github.com/lerpz-com/lerpz-auth/token"
	"github.com/lerpz-com/lerpz-auth/user"
)

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,strongpwd"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Kind  string `json:"kind"`
	Token string `json:"token"`
}

func (s *Server) handleRegister(c *gin.Context) {
	log := s.log.WithContext(c.Request.Context())

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.Render(c, log, errors.BadRequest("Invalid registration payload."))
		return
	}

	// The scheme generates its own salt; this value only seeds schemes
	// that accept caller salts.
	salt := uuid.New().String()
	hash, err := s.opts.Manager.Hash(c.Request.Context(), req.Password, salt)
	if err != nil {
		errors.Render(c, log, errors.Internal(err))
		return
	}

	u := user.New(req.Username, req.Email)
	if err := s.opts.Users.CreateUser(c.Request.Context(), u, hash); err != nil {
		if stderrors.Is(err, store.ErrDuplicate) {
			errors.Render(c, log, errors.Conflict("Email or username already exists."))
			return
		}
		errors.Render(c, log, errors.Internal(err))
		return
	}

	c.JSON(http.StatusCreated, u)
}

func (s *Server) handleLogin(c *gin.Context) {
	log := s.log.WithContext(c.Request.Context())

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.Render(c, log, errors.BadRequest("Invalid login payload."))
		return
	}

	cred, err := s.opts.Users.GetByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			// Same response as a wrong password: the caller must not
			// be able to probe which accounts exist.
			errors.Render(c, log, errors.Unauthorized())
			return
		}
		errors.Render(c, log, errors.Internal(err))
		return
	}

	ok, err := s.opts.Manager.Verify(c.Request.Context(), cred.Hash, req.Password)
	if err != nil {
		errors.Render(c, log, errors.Internal(err))
		return
	}
	if !ok {
		errors.Render(c, log, errors.Unauthorized())
		return
	}

	signed, err := token.New(token.NewTokenUser(cred.User)).
		WithIssuers(s.opts.Issuers...).
		WithAudiences(s.opts.Audiences...).
		Sign(s.opts.Keys.Signing)
	if err != nil {
		errors.Render(c, log, errors.Internal(err))
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Kind: "Bearer", Token: signed})
}

func (s *Server) handleMe(c *gin.Context) {
	u := authctx.MustGet(c.Request.Context())
	c.JSON(http.StatusOK, u)
}
