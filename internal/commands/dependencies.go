package commands

import (
	"io"
	"os"

	"github.com/atotto/clipboard"

	"github.com/diogo/soulguide/internal/api"
	"github.com/diogo/soulguide/internal/chat"
	"github.com/diogo/soulguide/internal/config"
	"github.com/diogo/soulguide/internal/logger"
	"github.com/diogo/soulguide/internal/media"
	"github.com/diogo/soulguide/internal/tui"
)

// ResponderFactory builds the reply backend for a session.
type ResponderFactory func(cfg config.Config, persona config.Persona) (chat.Responder, error)

// ChatRunner runs the interactive chat until the user quits.
type ChatRunner func(controller *chat.Controller, opts tui.Options) error

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	LoadConfig   func() (config.Config, error)
	LoadPersona  func() (config.Persona, error)
	NewResponder ResponderFactory
	RunChat      ChatRunner

	LoadImage func(path string) (string, error)
	SaveImage func(dataURI, dir string) (string, error)
	CopyText  func(text string) error

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		LoadConfig:   config.LoadConfig,
		LoadPersona:  config.LoadPersona,
		NewResponder: newAPIResponder,
		RunChat:      tui.RunChat,
		LoadImage:    media.LoadImageFile,
		SaveImage:    media.SaveImage,
		CopyText:     clipboard.WriteAll,
		Stdin:        os.Stdin,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
	}
}

// newAPIResponder creates the Gemini client from config, persona and the
// API key found in the environment or a .env file
func newAPIResponder(cfg config.Config, persona config.Persona) (chat.Responder, error) {
	if err := config.LoadDotEnv(); err != nil {
		logger.Warn("ignoring .env", "error", err)
	}

	// A missing key is reported on the first send
	key, err := config.LookupAPIKey()
	if err != nil {
		logger.Warn("no API key configured", "error", err)
	}

	opts := []api.ClientOption{
		api.WithBaseURL(cfg.BaseURL),
		api.WithModels(cfg.TextModel, cfg.ImageModel),
		api.WithSystemInstruction(persona.SystemInstruction),
		api.WithTemperature(cfg.Temperature),
		api.WithSilence(persona.Silence),
	}
	if cfg.TimeoutSeconds > 0 {
		opts = append(opts, api.WithTimeout(cfg.Timeout()))
	}

	client, err := api.NewClient(key, opts...)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// loadSession reads config and persona, falling back to defaults on error
func (d *Dependencies) loadSession() (config.Config, config.Persona) {
	cfg, err := d.LoadConfig()
	if err != nil {
		logger.Warn("using default config", "error", err)
	}
	persona, err := d.LoadPersona()
	if err != nil {
		logger.Warn("using default persona", "error", err)
	}
	return cfg, persona
}

// newController wires a conversation controller for persona
func newController(responder chat.Responder, persona config.Persona) *chat.Controller {
	return chat.NewController(responder, persona.Greeting,
		chat.WithApology(persona.Apology),
		chat.WithGenericError(persona.GenericError),
	)
}

// stdinPiped reports whether the prompt should be read from stdin
func (d *Dependencies) stdinPiped() bool {
	if d.Stdin == nil {
		return false
	}
	f, ok := d.Stdin.(*os.File)
	if !ok {
		return true
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
