package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ericogr/war-cards/internal/api"
	"github.com/ericogr/war-cards/internal/constants"
	"github.com/ericogr/war-cards/internal/logging"
	"github.com/ericogr/war-cards/internal/version"
)

func main() {
	// Configuration path may be provided via WAR_CONFIG; a missing file
	// means defaults plus WAR_* environment variables.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = constants.DefaultConfigPath
	}
	cfg := loadConfigOrExit(configPath)
	logging.SetLevel(cfg.LogLevel)
	defer logging.Sync()

	if cfg.SessionSecret == "" {
		logging.Warn("WAR_SESSION_SECRET not set; sessions will not survive a restart", nil)
	}
	api.SetSessionSecret(cfg.SessionSecret)

	repo := createRepositoryOrExit(cfg.DatabaseDSN)
	provider := createProviderOrExit(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Background scanner: abandon matches nobody touched for the idle
	// timeout. Abandoned matches do not affect player stats.
	go runIdleScanner(ctx, repo, cfg.MatchIdleTimeout, idleScanInterval(cfg.MatchIdleTimeout))

	hub := api.NewHub()
	handler := api.NewMatchHandler(repo, provider, hub)
	router := api.NewRouter(handler, cfg.CORSOrigins)

	logging.Info("Server started", logging.Fields{
		constants.LogFieldAddr:     cfg.ServerAddress,
		constants.LogFieldProvider: cfg.DeckProvider,
		"version":                  version.Get().String(),
	})
	if err := runServer(ctx, cfg.ServerAddress, router); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
	logging.Info("Server stopped", nil)
}
