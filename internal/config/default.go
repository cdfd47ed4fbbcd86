package config

import "time"

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			Addr:         "127.0.0.1:7379",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  5 * time.Minute,
			RateLimit:    1000,
		},
		Metrics: MetricsSection{
			Enabled: true,
			Addr:    "127.0.0.1:9121",
		},
		Store: StoreSection{
			Shards: 16,
		},
		Log: LogSection{
			Level:  "info",
			Format: "json",
		},
	}
}
