package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DeckProviderMemory = "memory"
	DeckProviderRedis  = "redis"
)

// rawConfig mirrors war_config.json. Durations are Go duration strings
// ("30m", "2h").
type rawConfig struct {
	Server *struct {
		Address     string   `json:"address"`
		CORSOrigins []string `json:"cors_origins"`
	} `json:"server"`
	Database *struct {
		DSN string `json:"dsn"`
	} `json:"database"`
	Deck *struct {
		Provider      string `json:"provider"`
		RedisAddr     string `json:"redis_addr"`
		RedisPassword string `json:"redis_password"`
		RedisDB       int    `json:"redis_db"`
		TTL           string `json:"ttl"`
	} `json:"deck"`
	Match *struct {
		IdleTimeout string `json:"idle_timeout"`
	} `json:"match"`
	LogLevel string `json:"log_level"`
}

// LoadedConfig is the resolved configuration: defaults, then the JSON file,
// then WAR_* environment variables.
type LoadedConfig struct {
	ServerAddress string   `env:"WAR_SERVER_ADDRESS"`
	CORSOrigins   []string `env:"WAR_CORS_ORIGINS" envSeparator:","`
	DatabaseDSN   string   `env:"WAR_DB"`

	DeckProvider  string        `env:"WAR_DECK_PROVIDER"`
	RedisAddr     string        `env:"WAR_REDIS_ADDR"`
	RedisPassword string        `env:"WAR_REDIS_PASSWORD"`
	RedisDB       int           `env:"WAR_REDIS_DB"`
	DeckTTL       time.Duration `env:"WAR_DECK_TTL"`

	MatchIdleTimeout time.Duration `env:"WAR_MATCH_IDLE_TIMEOUT"`
	LogLevel         string        `env:"WAR_LOG_LEVEL"`
	SessionSecret    string        `env:"WAR_SESSION_SECRET"`
}

// Defaults returns the configuration used when nothing is provided. The
// default database lives in memory and disappears with the process.
func Defaults() *LoadedConfig {
	return &LoadedConfig{
		ServerAddress:    ":8080",
		CORSOrigins:      []string{"*"},
		DatabaseDSN:      "file:war?mode=memory&cache=shared",
		DeckProvider:     DeckProviderMemory,
		DeckTTL:          2 * time.Hour,
		MatchIdleTimeout: 30 * time.Minute,
		LogLevel:         "info",
	}
}

// LoadConfig reads the configuration file at path (a missing file is not an
// error) and applies environment overrides.
func LoadConfig(path string) (*LoadedConfig, error) {
	cfg := Defaults()

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := applyFile(cfg, b); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// defaults only
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

func applyFile(cfg *LoadedConfig, b []byte) error {
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return err
	}
	if rc.Server != nil {
		if rc.Server.Address != "" {
			cfg.ServerAddress = rc.Server.Address
		}
		if len(rc.Server.CORSOrigins) > 0 {
			cfg.CORSOrigins = rc.Server.CORSOrigins
		}
	}
	if rc.Database != nil && rc.Database.DSN != "" {
		cfg.DatabaseDSN = rc.Database.DSN
	}
	if d := rc.Deck; d != nil {
		if d.Provider != "" {
			cfg.DeckProvider = d.Provider
		}
		cfg.RedisAddr = d.RedisAddr
		cfg.RedisPassword = d.RedisPassword
		cfg.RedisDB = d.RedisDB
		if d.TTL != "" {
			ttl, err := time.ParseDuration(d.TTL)
			if err != nil {
				return fmt.Errorf("deck.ttl: %w", err)
			}
			cfg.DeckTTL = ttl
		}
	}
	if rc.Match != nil && rc.Match.IdleTimeout != "" {
		idle, err := time.ParseDuration(rc.Match.IdleTimeout)
		if err != nil {
			return fmt.Errorf("match.idle_timeout: %w", err)
		}
		cfg.MatchIdleTimeout = idle
	}
	if rc.LogLevel != "" {
		cfg.LogLevel = rc.LogLevel
	}
	return nil
}

// Validate checks cross-field constraints.
func (c *LoadedConfig) Validate() error {
	c.DeckProvider = strings.ToLower(strings.TrimSpace(c.DeckProvider))
	switch c.DeckProvider {
	case DeckProviderMemory:
	case DeckProviderRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			return errors.New("deck provider 'redis' requires redis_addr")
		}
	default:
		return fmt.Errorf("unknown deck provider '%s'", c.DeckProvider)
	}
	if c.DeckTTL <= 0 {
		return errors.New("deck ttl must be positive")
	}
	if c.MatchIdleTimeout <= 0 {
		return errors.New("match idle timeout must be positive")
	}
	return nil
}
