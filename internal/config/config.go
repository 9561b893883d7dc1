// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the service reads from the environment. Paths are
// resolved relative to the Applio root the process runs in, matching the
// original layout (assets/audios for output, logs/ for models).
type Config struct {
	Server ServerConfig
	Auth   AuthConfig
	Paths  PathsConfig
	Engine EngineConfig
	HTTP   HTTPConfig
}

type ServerConfig struct {
	Host string `env:"API_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"API_PORT" envDefault:"8000"`
}

// AuthConfig is a boundary concern only: when Key is empty the API is open,
// as in the original deployment.
type AuthConfig struct {
	Key       string `env:"API_KEY"`
	KeyHeader string `env:"API_KEY_HEADER" envDefault:"X-API-Key"`
}

type PathsConfig struct {
	OutputDir  string `env:"OUTPUT_DIR" envDefault:"assets/audios"`
	ModelsDir  string `env:"MODELS_DIR" envDefault:"logs"`
	VoicesFile string `env:"VOICES_FILE" envDefault:"rvc/lib/tools/tts_voices.json"`
}

type EngineConfig struct {
	PythonBin string `env:"ENGINE_PYTHON" envDefault:"python"`
	Script    string `env:"ENGINE_SCRIPT" envDefault:"core.py"`
	WorkDir   string `env:"ENGINE_WORKDIR"`
}

type HTTPConfig struct {
	CORSOrigins    []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	RateLimitRPS   float64  `env:"RATE_LIMIT_RPS" envDefault:"100"`
	RateLimitBurst int      `env:"RATE_LIMIT_BURST" envDefault:"200"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// HasAPIKey reports whether requests must present the configured key.
func (c *Config) HasAPIKey() bool {
	return strings.TrimSpace(c.Auth.Key) != ""
}

func (c *Config) Validate() error {
	var missing []string
	if c.Paths.OutputDir == "" {
		missing = append(missing, "OUTPUT_DIR")
	}
	if c.Paths.ModelsDir == "" {
		missing = append(missing, "MODELS_DIR")
	}
	if c.Paths.VoicesFile == "" {
		missing = append(missing, "VOICES_FILE")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}
