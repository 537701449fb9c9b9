package config

import "time"

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Transport:      TransportSSE,
		NamesInterval:  30 * time.Second,
		RetryDelay:     3 * time.Second,
		RequestTimeout: 30 * time.Second,
		Log: LogConfig{
			Level: "info",
		},
	}
}
