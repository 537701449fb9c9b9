// Package config loads the chatterbox CLI configuration.
//
// Settings are layered: built-in defaults, then the user file
// (~/.config/chatterbox/config.yaml or config.toml), then an explicit file
// passed with --config. Command-line flags are applied last by the caller.
// Files ending in .toml are decoded as TOML, everything else as YAML.
package config
