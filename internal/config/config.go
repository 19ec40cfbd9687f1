// Package config handles configuration, credentials and persona copy for soulguide.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/diogo/soulguide/internal/models"
)

// EnvHome overrides the configuration directory (used by tests and packaging)
const EnvHome = "SOULGUIDE_HOME"

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style"`             // glamour style name or path to a JSON theme
	PreserveNewLines bool   `json:"preserve_newlines"` // Preserve original line breaks
}

// Config represents the user configuration
type Config struct {
	TextModel   string  `json:"text_model"`
	ImageModel  string  `json:"image_model"`
	BaseURL     string  `json:"base_url"`
	Temperature float64 `json:"temperature"`
	// TimeoutSeconds bounds one generate request. 0 keeps the transport default.
	TimeoutSeconds  int            `json:"timeout_seconds"`
	TUITheme        string         `json:"tui_theme,omitempty"`
	DownloadDir     string         `json:"download_dir,omitempty"` // Directory for generated cards
	CopyToClipboard bool           `json:"copy_to_clipboard"`
	LogLevel        string         `json:"log_level,omitempty"`
	Markdown        MarkdownConfig `json:"markdown,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "mystic",
		PreserveNewLines: true,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	dir, _ := GetConfigDir()
	return Config{
		TextModel:      models.ModelText.Name,
		ImageModel:     models.ModelImage.Name,
		BaseURL:        models.EndpointBase,
		Temperature:    models.DefaultTemperature,
		TimeoutSeconds: 300,
		TUITheme:       "mystic",
		DownloadDir:    filepath.Join(dir, "cards"),
		LogLevel:       "info",
		Markdown:       DefaultMarkdownConfig(),
	}
}

// Timeout returns the request timeout as a duration
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".soulguide"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	// 0o700: the directory may hold a .env with the API key
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetLogPath returns the path of the log file written while the TUI runs
func GetLogPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "soulguide.log"), nil
}

// GetDownloadDir returns the download directory from config, creating it if necessary
func GetDownloadDir(cfg Config) (string, error) {
	dir := cfg.DownloadDir
	if dir == "" {
		configDir, err := GetConfigDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(configDir, "cards")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	return dir, nil
}

// LoadConfig loads the configuration from disk
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills fields a partial config file left empty
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.TextModel == "" {
		c.TextModel = def.TextModel
	}
	if c.ImageModel == "" {
		c.ImageModel = def.ImageModel
	}
	if c.BaseURL == "" {
		c.BaseURL = def.BaseURL
	}
	if c.Temperature <= 0 {
		c.Temperature = def.Temperature
	}
	if c.TimeoutSeconds < 0 {
		c.TimeoutSeconds = def.TimeoutSeconds
	}
	if c.Markdown.Style == "" {
		c.Markdown.Style = def.Markdown.Style
	}
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
