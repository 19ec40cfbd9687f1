// Package tui provides the terminal user interface for soulguide.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/soulguide/internal/config"
	"github.com/diogo/soulguide/internal/errors"
	"github.com/diogo/soulguide/internal/render"
)

// Color variables (updated from theme)
var (
	colorSurface lipgloss.Color
	colorBorder  lipgloss.Color

	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorAccent    lipgloss.Color
	colorWarning   lipgloss.Color
	colorError     lipgloss.Color

	colorText     lipgloss.Color
	colorTextDim  lipgloss.Color
	colorTextMute lipgloss.Color
)

// Style variables (rebuilt when theme changes)
var (
	headerStyle   lipgloss.Style
	titleStyle    lipgloss.Style
	subtitleStyle lipgloss.Style
	hintStyle     lipgloss.Style

	messagesAreaStyle    lipgloss.Style
	userBubbleStyle      lipgloss.Style
	userLabelStyle       lipgloss.Style
	assistantBubbleStyle lipgloss.Style
	assistantLabelStyle  lipgloss.Style

	// Card (generated image) and attachment lines
	cardStyle       lipgloss.Style
	attachmentStyle lipgloss.Style

	inputPanelStyle lipgloss.Style
	inputLabelStyle lipgloss.Style
	pendingStyle    lipgloss.Style

	loadingStyle lipgloss.Style

	// Call-to-action panel
	ctaPanelStyle  lipgloss.Style
	ctaTextStyle   lipgloss.Style
	ctaButtonStyle lipgloss.Style
	ctaLinkStyle   lipgloss.Style

	statusBarStyle  lipgloss.Style
	statusKeyStyle  lipgloss.Style
	statusDescStyle lipgloss.Style
	taglineStyle    lipgloss.Style
	noticeStyle     lipgloss.Style

	errorStyle lipgloss.Style
)

// Colors for the typing indicator
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#c4b5fd"),
	lipgloss.Color("#a78bfa"),
	lipgloss.Color("#818cf8"),
	lipgloss.Color("#6366f1"),
	lipgloss.Color("#e9d5ff"),
	lipgloss.Color("#fcd34d"),
}

func init() {
	UpdateTheme()
}

// UpdateTheme refreshes all styles based on the current TUI theme
func UpdateTheme() {
	theme := render.GetTUITheme()

	colorSurface = theme.Surface
	colorBorder = theme.Border
	colorPrimary = theme.Primary
	colorSecondary = theme.Secondary
	colorAccent = theme.Accent
	colorWarning = theme.Warning
	colorError = theme.Error
	colorText = theme.Text
	colorTextDim = theme.TextDim
	colorTextMute = theme.TextMute

	rebuildStyles()
}

// panel is a rounded box with the given border color
func panel(border lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// rebuildStyles derives every style from the current colors
func rebuildStyles() {
	headerStyle = panel(colorBorder).Padding(0, 2)
	titleStyle = fg(colorPrimary).Bold(true)
	subtitleStyle = fg(colorTextDim).Italic(true)
	hintStyle = fg(colorTextMute).Italic(true)

	messagesAreaStyle = panel(colorBorder)
	userBubbleStyle = panel(colorSecondary).Foreground(colorText).MarginLeft(4)
	userLabelStyle = fg(colorSecondary).Bold(true).MarginLeft(4)
	assistantBubbleStyle = panel(colorPrimary).Foreground(colorText).MarginRight(4)
	assistantLabelStyle = fg(colorPrimary).Bold(true)

	cardStyle = fg(colorWarning).Italic(true)
	attachmentStyle = fg(colorTextDim).Italic(true)

	inputPanelStyle = panel(colorBorder)
	inputLabelStyle = fg(colorPrimary).Bold(true).MarginRight(1)
	pendingStyle = fg(colorSurface).Background(colorAccent).Padding(0, 1)
	loadingStyle = fg(colorAccent).Bold(true)

	// The CTA panel is the only double-bordered element
	ctaPanelStyle = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(colorWarning).
		Padding(1, 2).
		Align(lipgloss.Center)
	ctaTextStyle = fg(colorText).Bold(true)
	ctaButtonStyle = fg(colorSurface).Background(colorWarning).Bold(true).Padding(0, 2)
	ctaLinkStyle = fg(colorSecondary).Underline(true)

	statusBarStyle = fg(colorTextMute)
	statusKeyStyle = fg(colorTextDim).Bold(true)
	statusDescStyle = fg(colorTextMute)
	taglineStyle = fg(colorTextMute).Italic(true).Align(lipgloss.Center)
	noticeStyle = fg(colorAccent)
	errorStyle = fg(colorError).Bold(true)
}

// FormatError returns a styled error message with a hint for known failures.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	errStyle := fg(colorError)
	dimStyle := fg(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errStyle.Render(fmt.Sprintf("✗ %v", err)))

	if status := errors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	switch {
	case errors.IsCredentialError(err):
		sb.WriteString(dimStyle.Render(fmt.Sprintf(
			"\n  Hint: set %s in the environment or in a .env file", config.APIKeyEnvVars[0])))
	case errors.IsConnectionError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: check your internet connection and try again"))
	}

	return sb.String()
}
