package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/diogo/soulguide/internal/config"
	apierrors "github.com/diogo/soulguide/internal/errors"
	"github.com/diogo/soulguide/internal/logger"
	"github.com/diogo/soulguide/internal/models"
	"github.com/diogo/soulguide/internal/render"
)

var (
	colorText    = lipgloss.Color("#e9e4f5")
	colorTextDim = lipgloss.Color("#8b82a8")
	colorSuccess = lipgloss.Color("#a7f3d0")
	colorPrimary = lipgloss.Color("#c4b5fd")
	colorWarning = lipgloss.Color("#fcd34d")
	colorError   = lipgloss.Color("#fda4af")
)

// Styles matching the chat TUI
var (
	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	assistantBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Foreground(colorText).
				Padding(0, 1).
				MarginTop(1).
				MarginBottom(1)

	cardLineStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Italic(true)
)

// askOptions are the flags shared by the root command and ask
type askOptions struct {
	image  string
	output string
	raw    bool
}

func (o *askOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.image, "image", "i", "", "Path to an image to show the guide")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Save the reply to a file")
	cmd.Flags().BoolVar(&o.raw, "raw", false, "Print only the reply text without decoration")
}

// NewAskCmd creates the one-shot question command
func NewAskCmd(deps *Dependencies) *cobra.Command {
	var opts askOptions

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the guide a single question",
		Long: `Send one question (optionally with an image) and print the reply.

A generated card is saved to the download directory and its path is printed
under the reply.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var prompt string
			if len(args) > 0 {
				prompt = args[0]
			} else if deps.stdinPiped() {
				data, err := io.ReadAll(deps.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				prompt = string(data)
			}
			return runAsk(cmd.Context(), deps, prompt, opts)
		},
	}

	opts.bind(cmd)
	return cmd
}

// runAsk sends a single turn and prints the reply.
// If opts.raw is set, only the reply text is written without decoration.
func runAsk(ctx context.Context, deps *Dependencies, prompt string, opts askOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" && opts.image == "" {
		return fmt.Errorf("prompt cannot be empty")
	}

	cfg, persona := deps.loadSession()
	closeLog, err := logger.Init(logger.Config{Level: cfg.LogLevel, Writer: deps.Stderr})
	if err == nil {
		defer closeLog()
	}

	var image string
	if opts.image != "" {
		image, err = deps.LoadImage(opts.image)
		if err != nil {
			return fmt.Errorf("failed to load image: %w", err)
		}
	}

	responder, err := deps.NewResponder(cfg, persona)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	controller := newController(responder, persona)

	var spin *spinner
	if !opts.raw {
		spin = newSpinner(deps.Stderr, persona.Name+" слухає поле")
		spin.start()
	}

	reply, err := controller.Send(ctx, prompt, image)
	if err != nil {
		if spin != nil {
			spin.stopWithError()
		}
		return fmt.Errorf("generation failed: %w", err)
	}
	if spin != nil {
		spin.stopWithSuccess("Відповідь отримано")
	}

	savedPath := saveCard(deps, cfg, reply)

	if opts.raw {
		if opts.output != "" {
			return writeOutput(opts.output, reply.Text)
		}
		fmt.Fprint(deps.Stdout, reply.Text)
		return nil
	}

	if cfg.CopyToClipboard {
		if err := deps.CopyText(reply.Text); err != nil {
			warn := lipgloss.NewStyle().Foreground(colorError).Render(
				fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err),
			)
			fmt.Fprintln(deps.Stderr, warn)
		} else {
			fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard"))
		}
	}

	if opts.output != "" {
		if err := writeOutput(opts.output, reply.Text); err != nil {
			return err
		}
		fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render(
			fmt.Sprintf("✓ Reply saved to %s", opts.output),
		))
		if savedPath != "" {
			fmt.Fprintln(deps.Stderr, cardLineStyle.Render("🃏 Карту збережено: "+savedPath))
		}
		return nil
	}

	printReply(deps.Stdout, cfg, persona, reply, savedPath)
	return nil
}

// saveCard stores a returned image and returns its path, or "" when there is none
func saveCard(deps *Dependencies, cfg config.Config, reply models.Message) string {
	if !reply.HasImage() {
		return ""
	}
	dir, err := config.GetDownloadDir(cfg)
	if err != nil {
		logger.Warn("card not saved", "error", err)
		return ""
	}
	path, err := deps.SaveImage(reply.Image, dir)
	if err != nil {
		logger.Warn("card not saved", "error", err)
		return ""
	}
	return path
}

// printReply renders the reply bubble like the chat TUI does
func printReply(w io.Writer, cfg config.Config, persona config.Persona, reply models.Message, savedPath string) {
	bubbleWidth := min(max(getTerminalWidth()-4, 40), 120)
	contentWidth := bubbleWidth - 4

	fmt.Fprintln(w, assistantLabelStyle.Render("✦ "+persona.Name))

	rendered := render.MarkdownOrPlain(reply.Text, render.OptionsFromConfig(cfg.Markdown, contentWidth))
	fmt.Fprintln(w, assistantBubbleStyle.Width(bubbleWidth).Render(rendered))

	if savedPath != "" {
		fmt.Fprintln(w, cardLineStyle.Render("🃏 Карту збережено: "+savedPath))
	}
}

func writeOutput(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// formatErrorMessage formats an error with additional context from structured errors
func formatErrorMessage(err error, context string) string {
	if err == nil {
		return ""
	}

	errorStyle := lipgloss.NewStyle().Foreground(colorError)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	if context != "" {
		sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s: %v", context, err)))
	} else {
		sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %v", err)))
	}

	if status := apierrors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	if endpoint := apierrors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	switch {
	case apierrors.IsCredentialError(err):
		sb.WriteString(dimStyle.Render(fmt.Sprintf(
			"\n  Hint: set %s in the environment or in a .env file", config.APIKeyEnvVars[0])))
	case apierrors.IsNetworkError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: check your internet connection and try again"))
	case apierrors.IsConnectionError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: the service did not answer properly, try again in a moment"))
	}

	return sb.String()
}
