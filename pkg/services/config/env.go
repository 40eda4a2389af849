package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment files into the process environment. With no
// paths it loads ./.env and tolerates its absence. Variables that are
// already set are left untouched.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}
		return nil
	}

	if err := godotenv.Load(paths...); err != nil {
		return fmt.Errorf("failed to load env files: %w", err)
	}
	return nil
}
