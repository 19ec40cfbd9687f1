package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	apierrors "github.com/diogo/soulguide/internal/errors"
)

// Environment variables checked for the Gemini API key, in order
var APIKeyEnvVars = []string{"GEMINI_API_KEY", "API_KEY"}

// LoadDotEnv loads .env files into the process environment without overriding
// variables that are already set. The working directory is checked first, then
// the config directory. Missing files are not an error.
func LoadDotEnv() error {
	var files []string
	if _, err := os.Stat(".env"); err == nil {
		files = append(files, ".env")
	}
	if dir, err := GetConfigDir(); err == nil {
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err == nil {
			files = append(files, path)
		}
	}
	if len(files) == 0 {
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// LookupAPIKey returns the first non-empty API key from the environment
func LookupAPIKey() (string, error) {
	for _, name := range APIKeyEnvVars {
		if key := strings.TrimSpace(os.Getenv(name)); key != "" {
			return key, nil
		}
	}
	return "", apierrors.NewCredentialError(
		fmt.Sprintf("API key not found: set %s in the environment or a .env file", APIKeyEnvVars[0]),
	)
}

// MaskKey hides all but the last four characters of a key for display
func MaskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
