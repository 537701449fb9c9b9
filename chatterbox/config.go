package chatterbox

import (
	"net/url"
	"strings"
	"time"
)

// Config controls how the session connects.
type Config struct {
	URL            string        // relay root URL; a trailing slash is added if missing
	NamesInterval  time.Duration // period of the roster refresh probe
	ReconnectDelay time.Duration // wait before reopening a closed stream; 0 reopens immediately
	QueueSize      int           // outbound requests buffered for the write loop
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		NamesInterval: 30 * time.Second,
		QueueSize:     16,
	}
}

// Validate checks the config and normalizes URL to end with a slash.
func (c *Config) Validate() error {
	if c.URL == "" {
		return NewError(ErrorInvalidConfig, "empty URL")
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return WrapError(ErrorInvalidConfig, "invalid URL", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return NewError(ErrorInvalidConfig, "URL must be absolute: "+c.URL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	c.URL = u.String()
	if c.NamesInterval <= 0 {
		return NewError(ErrorInvalidConfig, "names interval must be positive")
	}
	if c.ReconnectDelay < 0 {
		return NewError(ErrorInvalidConfig, "reconnect delay must not be negative")
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 16
	}
	return nil
}
