package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apierrors "github.com/diogo/soulguide/internal/errors"
	"github.com/diogo/soulguide/internal/models"
)

func useTempHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(EnvHome, dir)
	return dir
}

func TestDefaultConfig(t *testing.T) {
	dir := useTempHome(t)
	cfg := DefaultConfig()

	if cfg.TextModel != models.ModelText.Name {
		t.Errorf("TextModel = %q, want %q", cfg.TextModel, models.ModelText.Name)
	}
	if cfg.ImageModel != models.ModelImage.Name {
		t.Errorf("ImageModel = %q, want %q", cfg.ImageModel, models.ModelImage.Name)
	}
	if cfg.Temperature != 0.9 {
		t.Errorf("Temperature = %v, want 0.9", cfg.Temperature)
	}
	if cfg.BaseURL != models.EndpointBase {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.DownloadDir != filepath.Join(dir, "cards") {
		t.Errorf("DownloadDir = %q", cfg.DownloadDir)
	}
	if cfg.Timeout().Seconds() != 300 {
		t.Errorf("Timeout() = %v", cfg.Timeout())
	}
}

func TestGetConfigDir(t *testing.T) {
	dir := useTempHome(t)
	got, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() returned error: %v", err)
	}
	if got != dir {
		t.Errorf("GetConfigDir() = %q, want %q", got, dir)
	}

	t.Setenv(EnvHome, "")
	got, err = GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() returned error: %v", err)
	}
	if !filepath.IsAbs(got) || filepath.Base(got) != ".soulguide" {
		t.Errorf("GetConfigDir() without override = %q", got)
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	useTempHome(t)
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.TextModel != models.ModelText.Name {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	useTempHome(t)

	cfg := DefaultConfig()
	cfg.TUITheme = "dawn"
	cfg.CopyToClipboard = true
	cfg.Temperature = 0.4
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if loaded.TUITheme != "dawn" || !loaded.CopyToClipboard || loaded.Temperature != 0.4 {
		t.Errorf("loaded config mismatch: %+v", loaded)
	}

	path, _ := GetConfigPath()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("config permissions = %v, want 0600", info.Mode().Perm())
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	dir := useTempHome(t)
	data, _ := json.Marshal(map[string]any{"tui_theme": "dawn"})
	if err := os.WriteFile(filepath.Join(dir, "config.json"), data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.TUITheme != "dawn" {
		t.Errorf("TUITheme = %q", cfg.TUITheme)
	}
	if cfg.TextModel == "" || cfg.BaseURL == "" || cfg.Temperature != models.DefaultTemperature {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	dir := useTempHome(t)
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err == nil {
		t.Fatal("expected parse error")
	}
	if cfg.TextModel != models.ModelText.Name {
		t.Errorf("expected defaults on parse error, got %+v", cfg)
	}
}

func TestGetDownloadDir(t *testing.T) {
	dir := useTempHome(t)

	got, err := GetDownloadDir(Config{})
	if err != nil {
		t.Fatalf("GetDownloadDir() error = %v", err)
	}
	if got != filepath.Join(dir, "cards") {
		t.Errorf("GetDownloadDir() = %q", got)
	}
	if _, err := os.Stat(got); err != nil {
		t.Errorf("download dir not created: %v", err)
	}

	custom := filepath.Join(dir, "elsewhere")
	got, err = GetDownloadDir(Config{DownloadDir: custom})
	if err != nil || got != custom {
		t.Errorf("GetDownloadDir(custom) = %q, %v", got, err)
	}
}

func TestLookupAPIKey(t *testing.T) {
	tests := []struct {
		name    string
		gemini  string
		apiKey  string
		want    string
		wantErr bool
	}{
		{"gemini key", "g-key", "", "g-key", false},
		{"fallback key", "", "a-key", "a-key", false},
		{"gemini wins", "g-key", "a-key", "g-key", false},
		{"whitespace only", "   ", "", "", true},
		{"missing", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GEMINI_API_KEY", tt.gemini)
			t.Setenv("API_KEY", tt.apiKey)

			got, err := LookupAPIKey()
			if tt.wantErr {
				if !apierrors.IsCredentialError(err) {
					t.Errorf("LookupAPIKey() error = %v, want credential error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("LookupAPIKey() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("LookupAPIKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := useTempHome(t)
	t.Chdir(t.TempDir())
	t.Setenv("GEMINI_API_KEY", "")
	os.Unsetenv("GEMINI_API_KEY")

	if err := LoadDotEnv(); err != nil {
		t.Fatalf("LoadDotEnv() without files error = %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("GEMINI_API_KEY=from-dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := LoadDotEnv(); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("GEMINI_API_KEY"); got != "from-dotenv" {
		t.Errorf("GEMINI_API_KEY = %q, want from-dotenv", got)
	}
}

func TestMaskKey(t *testing.T) {
	tests := map[string]string{
		"":             "(not set)",
		"abc":          "***",
		"abcdefgh1234": "********1234",
	}
	for in, want := range tests {
		if got := MaskKey(in); got != want {
			t.Errorf("MaskKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDefaultPersona(t *testing.T) {
	p := DefaultPersona()
	if p.SystemInstruction == "" || p.Greeting == "" {
		t.Error("persona must carry a system instruction and greeting")
	}
	if !strings.HasPrefix(p.CTA.URL, "https://t.me/") {
		t.Errorf("CTA.URL = %q", p.CTA.URL)
	}
	if p.Silence != "Я відчуваю, що зараз час для тиші..." {
		t.Errorf("Silence = %q", p.Silence)
	}
}

func TestParsePersona(t *testing.T) {
	data := []byte("name: Test Guide\ncta:\n  handle: \"@test\"\n")
	p, err := ParsePersona(data)
	if err != nil {
		t.Fatalf("ParsePersona() error = %v", err)
	}
	if p.Name != "Test Guide" || p.CTA.Handle != "@test" {
		t.Errorf("overrides not applied: %+v", p)
	}
	def := DefaultPersona()
	if p.Apology != def.Apology || p.CTA.URL != def.CTA.URL {
		t.Error("fields absent from YAML should keep defaults")
	}

	if _, err := ParsePersona([]byte("name: [unterminated")); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadPersona(t *testing.T) {
	dir := useTempHome(t)

	p, err := LoadPersona()
	if err != nil {
		t.Fatalf("LoadPersona() without file error = %v", err)
	}
	if p.Name != DefaultPersona().Name {
		t.Errorf("expected default persona, got %q", p.Name)
	}

	if err := os.WriteFile(filepath.Join(dir, "persona.yaml"), []byte("subtitle: Custom\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	p, err = LoadPersona()
	if err != nil {
		t.Fatalf("LoadPersona() error = %v", err)
	}
	if p.Subtitle != "Custom" {
		t.Errorf("Subtitle = %q, want Custom", p.Subtitle)
	}
}
