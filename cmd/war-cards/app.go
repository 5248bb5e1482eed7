package main

import (
	"context"
	"time"

	"github.com/ericogr/war-cards/internal/config"
	"github.com/ericogr/war-cards/internal/constants"
	"github.com/ericogr/war-cards/internal/deck"
	"github.com/ericogr/war-cards/internal/logging"
	"github.com/ericogr/war-cards/internal/storage"
	"github.com/go-redis/redis/v8"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid war configuration", err, logging.Fields{"config_path": path})
	}
	return cfg
}

func createRepositoryOrExit(dsn string) storage.Repository {
	db, err := storage.OpenAndMigrate(dsn)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db)
}

// createProviderOrExit builds the configured deck source. A redis provider
// must answer a ping before the server starts.
func createProviderOrExit(cfg *config.LoadedConfig) deck.Provider {
	switch cfg.DeckProvider {
	case config.DeckProviderRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logging.Fatal("Failed to connect to redis", err, logging.Fields{constants.LogFieldAddr: cfg.RedisAddr})
		}
		return deck.NewRedisProvider(rdb, cfg.DeckTTL)
	default:
		return deck.NewMemoryProvider()
	}
}
