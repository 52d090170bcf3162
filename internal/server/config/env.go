package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every variable name read by parseEnv.
const EnvPrefix = "TMT_"

// dotenvPath is loaded before reading the environment; a missing file is fine.
var dotenvPath = ".env"

// parseEnv overlays TMT_* environment variables onto config. Variables that
// are not set leave the current value untouched. Values already present in
// the process environment win over the .env file.
func parseEnv(config *Config) error {
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", dotenvPath, err)
	}

	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
