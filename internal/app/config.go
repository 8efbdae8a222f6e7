package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ScenarioPath string // .hcl or .toml files
	ModulesPath  string // .hcl manifests

	LogFormat string
	LogLevel  string
	// ListenPort serves /health and the socket.io feed; 0 disables it.
	ListenPort int
	EmitURL    string
	WebhookURL string
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ScenarioPath == "" {
		return nil, errors.New("ScenarioPath is a required configuration field and cannot be empty")
	}
	if cfg.ListenPort < 0 || cfg.ListenPort > 65535 {
		return nil, fmt.Errorf("ListenPort %d is out of range", cfg.ListenPort)
	}
	switch ext := strings.ToLower(filepath.Ext(cfg.ScenarioPath)); ext {
	case "", ".hcl", ".toml":
	default:
		return nil, fmt.Errorf("unsupported scenario file extension %q: expected .hcl or .toml", ext)
	}
	return &cfg, nil
}
