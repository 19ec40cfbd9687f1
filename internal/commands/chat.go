package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/soulguide/internal/config"
	"github.com/diogo/soulguide/internal/logger"
	"github.com/diogo/soulguide/internal/render"
	"github.com/diogo/soulguide/internal/tui"
)

// NewChatCmd creates the interactive chat command
func NewChatCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start the guided chat",
		Long: `Start an interactive session with the guide.

You have two questions. Attach an image with '/image <path>', detach it with
'/clear-image'. Press Ctrl+Y to copy the last reply, Esc or Ctrl+C to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(deps)
		},
	}
}

func runChat(deps *Dependencies) error {
	cfg, persona := deps.loadSession()

	// The TUI owns the terminal, so logs go to a file
	if path, err := config.GetLogPath(); err == nil {
		closeLog, err := logger.Init(logger.Config{Level: cfg.LogLevel, File: path})
		if err != nil {
			logger.Discard()
		} else {
			defer closeLog()
		}
	} else {
		logger.Discard()
	}

	if cfg.TUITheme != "" && !render.SetTUITheme(cfg.TUITheme) {
		logger.Warn("unknown tui theme", "theme", cfg.TUITheme)
	}
	tui.UpdateTheme()

	responder, err := deps.NewResponder(cfg, persona)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	downloadDir, err := config.GetDownloadDir(cfg)
	if err != nil {
		logger.Warn("cards will not be saved", "error", err)
		downloadDir = ""
	}

	opts := tui.Options{
		Persona:     persona,
		Render:      render.OptionsFromConfig(cfg.Markdown, 0),
		DownloadDir: downloadDir,
		AutoCopy:    cfg.CopyToClipboard,
	}

	logger.Info("chat started", "text_model", cfg.TextModel, "image_model", cfg.ImageModel)
	return deps.RunChat(newController(responder, persona), opts)
}
