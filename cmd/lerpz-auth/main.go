// Command lerpz-auth runs the authentication service.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lerpz-com/lerpz-auth/config"
	"github.com/lerpz-com/lerpz-auth/logger"
	"github.com/lerpz-com/lerpz-auth/pwd"
	"github.com/lerpz-com/lerpz-auth/server"
	"github.com/lerpz-com/lerpz-auth/store"
	"github.com/lerpz-com/lerpz-auth/token"
)

func main() {
	cfg, err := config.Load(config.LoaderOptions{})
	if err != nil {
		logger.Default().Error("failed loading configuration", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	logger.Init(cfg.Logging, "lerpz-auth")
	log := logger.Default()

	keys, err := token.LoadEdKeys(cfg.Token.PrivateKeyFile, cfg.Token.PublicKeyFile)
	if err != nil {
		log.Error("failed loading signing keys", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	manager, err := pwd.NewManager(cfg.Pwd)
	if err != nil {
		log.Error("failed building credential manager", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	srv := server.New(server.Options{
		Addr:      cfg.Server.Addr,
		Manager:   manager,
		Keys:      keys,
		Users:     store.NewMemoryStore(),
		Logger:    log,
		Issuers:   []token.Issuer{token.IssuerAccount},
		Audiences: []token.Audience{token.AudienceAPI},
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		log.Error("server exited with error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	log.Info("server stopped")
}
