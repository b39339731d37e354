// Package server wires the authentication endpoints onto a gin engine:
// registration, login and the authenticated identity probe. Database
// access sits behind store.UserStore; everything else this package does
// goes through the pwd and token packages.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/lerpz-com/lerpz-auth/logger"
	"github.com/lerpz-com/lerpz-auth/pwd"
	"github.com/lerpz-com/lerpz-auth/server/middleware"
	"github.com/lerpz-com/lerpz-auth/store"
	"github.com/lerpz-com/lerpz-auth/token"
)

// Options collects the collaborators the server needs. All fields are
// required except Logger, which falls back to the process logger.
type Options struct {
	Addr    string
	Manager *pwd.Manager
	Keys    token.Keys
	Users   store.UserStore
	Logger  *logger.Logger

	// Issuers and Audiences are stamped onto every issued token and
	// required back on every validated one.
	Issuers   []token.Issuer
	Audiences []token.Audience
}

// Server hosts the HTTP API.
type Server struct {
	opts   Options
	engine *gin.Engine
	log    *logger.Logger
}

// New builds the server and registers all routes.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}

	registerValidations()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery(opts.Logger))

	s := &Server{
		opts:   opts,
		engine: engine,
		log:    opts.Logger.WithComponent("server"),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	v1 := s.engine.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", s.handleRegister)
	auth.POST("/login", s.handleLogin)

	users := v1.Group("/users")
	users.Use(middleware.Auth(middleware.AuthConfig{
		VerifyingKey:      s.opts.Keys.Verifying,
		RequiredIssuers:   s.opts.Issuers,
		RequiredAudiences: s.opts.Audiences,
		Logger:            s.opts.Logger,
	}))
	users.GET("/me", s.handleMe)
}

// Engine exposes the underlying gin engine, mainly for tests.
func (s *Server) Engine() *gin.Engine { return s.engine }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", map[string]any{"addr": s.opts.Addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	err := <-errCh
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// registerValidations installs the custom password-strength rule on
// gin's binding validator. Idempotent across multiple New calls.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("strongpwd", func(fl validator.FieldLevel) bool {
			return len(fl.Field().String()) >= 8
		})
	}
}
