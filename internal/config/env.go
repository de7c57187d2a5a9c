package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// loadEnvFile loads the first of .env and .env.local found in dir.
// Variables already set in the process environment are not overwritten.
func loadEnvFile(dir string) (string, error) {
	for _, name := range []string{".env", ".env.local"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return "", fmt.Errorf("load %s: %w", path, err)
		}
		return path, nil
	}
	return "", fmt.Errorf("no .env file found in %s", dir)
}
