package config

import (
	"errors"
	"fmt"
	"net"
)

// Verify checks a loaded configuration for values the server cannot
// run with.
func Verify(cfg *ServerConfig) error {
	if cfg == nil {
		return errors.New("config: nil configuration")
	}

	if cfg.Server.Addr == "" {
		return errors.New("config: server.addr is required")
	}
	if _, _, err := net.SplitHostPort(cfg.Server.Addr); err != nil {
		return fmt.Errorf("config: server.addr %q: %w", cfg.Server.Addr, err)
	}

	if cfg.Server.ReadTimeout <= 0 {
		return errors.New("config: server.read_timeout must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return errors.New("config: server.write_timeout must be positive")
	}
	if cfg.Server.IdleTimeout <= 0 {
		return errors.New("config: server.idle_timeout must be positive")
	}
	if cfg.Server.RateLimit < 0 {
		return errors.New("config: server.rate_limit must not be negative")
	}

	if cfg.Metrics.Enabled {
		if _, _, err := net.SplitHostPort(cfg.Metrics.Addr); err != nil {
			return fmt.Errorf("config: metrics.addr %q: %w", cfg.Metrics.Addr, err)
		}
	}

	if cfg.Store.Shards <= 0 || cfg.Store.Shards&(cfg.Store.Shards-1) != 0 {
		return fmt.Errorf("config: store.shards must be a power of two, got %d", cfg.Store.Shards)
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is not one of debug, info, warn, error", cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("config: log.format %q is not one of json, text", cfg.Log.Format)
	}

	return nil
}
