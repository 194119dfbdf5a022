package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// DotEnvFile is loaded into the process environment before parsing, when present
var DotEnvFile = ".env"

// loadFromEnv overrides configuration with environment variables.
// Variables already set in the environment win over the .env file.
func loadFromEnv(config *Config) error {
	if err := godotenv.Load(DotEnvFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", DotEnvFile, err)
		}
		log.Debug().Str("file", DotEnvFile).Msg("No .env file found")
	}

	if err := env.Parse(config); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
