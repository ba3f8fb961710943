package svcedit

import (
	"github.com/svcedit/svcedit/internal/platform"
	"github.com/svcedit/svcedit/pkg/core"
)

// Config is the runtime configuration for the editor service.
type Config = platform.Config

// ConfigFromEnv builds a Config from the environment, falling back to the
// container defaults.
func ConfigFromEnv() Config {
	return platform.ConfigFromEnv()
}

// New creates an Editor from the given configuration.
// Stores are initialized eagerly so a misconfigured path fails at startup,
// not on the first save.
func New(cfg Config) (*core.Editor, error) {
	return platform.New(cfg)
}
