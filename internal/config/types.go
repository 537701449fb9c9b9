package config

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/funkybob/aio-mini-chat/chatterbox"
	"github.com/funkybob/aio-mini-chat/chatterbox/relay"
)

// Transport names accepted in the config and on the command line.
const (
	TransportSSE       = "sse"
	TransportWebSocket = "ws"
)

// Config is the CLI configuration. Zero fields in a file leave the
// underlying layer unchanged.
type Config struct {
	URL       string `yaml:"url" toml:"url"`
	Transport string `yaml:"transport" toml:"transport"`

	NamesInterval  time.Duration `yaml:"names_interval" toml:"names_interval"`
	ReconnectDelay time.Duration `yaml:"reconnect_delay" toml:"reconnect_delay"`
	RetryDelay     time.Duration `yaml:"retry_delay" toml:"retry_delay"`
	RequestTimeout time.Duration `yaml:"request_timeout" toml:"request_timeout"`

	// SendsPerMinute paces outgoing requests. Zero, the default, leaves
	// them unpaced; a negative value disables pacing set by a lower layer.
	// The relay answers 429 once one client has been active in more than
	// 10 distinct seconds of the last minute.
	SendsPerMinute int `yaml:"sends_per_minute" toml:"sends_per_minute"`

	Log LogConfig `yaml:"log" toml:"log"`
}

// LogConfig selects where diagnostic logs go. The TUI owns the terminal, so
// logs are written to a file or discarded.
type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
	File  string `yaml:"file" toml:"file"`
}

// Session returns the session configuration.
func (c Config) Session() chatterbox.Config {
	cfg := chatterbox.DefaultConfig()
	cfg.URL = c.URL
	if c.NamesInterval > 0 {
		cfg.NamesInterval = c.NamesInterval
	}
	cfg.ReconnectDelay = c.ReconnectDelay
	return cfg
}

// RelayOptions returns the relay client options.
func (c Config) RelayOptions(logger chatterbox.Logger) relay.Options {
	opts := relay.DefaultOptions()
	opts.Logger = logger
	if c.RetryDelay > 0 {
		opts.RetryDelay = c.RetryDelay
	}
	if c.RequestTimeout > 0 {
		opts.RequestTimeout = c.RequestTimeout
	}
	if c.SendsPerMinute > 0 {
		opts.SendLimit = rate.Every(time.Minute / time.Duration(c.SendsPerMinute))
		opts.SendBurst = c.SendsPerMinute
	}
	return opts
}
