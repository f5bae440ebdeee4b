// Package config handles configuration for the terminal client,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"os"
	"path/filepath"
)

// Config holds runtime settings for the Taskboard CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the backend HTTP JSON endpoint.
//   - SessionFile: path of the file the session token is kept in between runs.
type Config struct {
	ServerEndpointAddr string
	SessionFile        string
}

// LoadDefaults populates c with sensible defaults. The session file lands in
// the user's home directory, or the current directory when home cannot be
// resolved.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://localhost:8080"

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	c.SessionFile = filepath.Join(home, ".taskboard_session")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
