package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v9"
	"github.com/sandevgo/companion/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"COMPANION_RUNTIME_PATH" envDefault:".companion"`
	// Allow selecting the provider
	LLMProvider string `env:"LLM_PROVIDER" envDefault:"openai"`
	Model       string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	path := c.RuntimePath
	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.GetRuntimePath(), "companion.db")
}
