package render

import (
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// Markdown style names
const (
	ThemeMystic     = "mystic"
	ThemeDark       = "dark"
	ThemeLight      = "light"
	ThemeTokyoNight = "tokyo-night"
)

// ThemeInfo contains information about a theme for display purposes.
type ThemeInfo struct {
	Name        string
	Description string
}

// AvailableThemes lists the markdown styles known by name.
func AvailableThemes() []ThemeInfo {
	return []ThemeInfo{
		{Name: ThemeMystic, Description: "Violet and gold on dark (default)"},
		{Name: ThemeDark, Description: "Glamour dark"},
		{Name: ThemeLight, Description: "Light theme for bright terminals"},
		{Name: ThemeTokyoNight, Description: "Tokyo Night color scheme"},
		{Name: "dracula", Description: "Dracula color scheme"},
		{Name: "notty", Description: "Plain text (no styling)"},
	}
}

// ThemeNames returns just the theme names for selection.
func ThemeNames() []string {
	themes := AvailableThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// IsBuiltinStyle reports whether style is a named style rather than a file path.
func IsBuiltinStyle(style string) bool {
	for _, name := range ThemeNames() {
		if name == style {
			return true
		}
	}
	return style == "ascii" || style == "pink"
}

// MysticStyle returns the glamour dark style recolored to the guide's palette.
func MysticStyle() ansi.StyleConfig {
	cfg := styles.DarkStyleConfig

	cfg.Document.Color = strPtr(string(MysticTheme.Text))
	cfg.Heading.Color = strPtr(string(MysticTheme.Primary))
	cfg.H1.Color = strPtr(string(MysticTheme.Warning))
	cfg.H1.BackgroundColor = nil
	cfg.H1.Prefix = "✦ "
	cfg.H1.Suffix = ""
	cfg.H2.Color = strPtr(string(MysticTheme.Primary))
	cfg.Emph.Color = strPtr(string(MysticTheme.Accent))
	cfg.Strong.Color = strPtr(string(MysticTheme.Warning))
	cfg.BlockQuote.Color = strPtr(string(MysticTheme.TextDim))
	cfg.Link.Color = strPtr(string(MysticTheme.Secondary))
	cfg.LinkText.Color = strPtr(string(MysticTheme.Secondary))
	cfg.Item.BlockPrefix = "✧ "

	return cfg
}

func strPtr(s string) *string {
	return &s
}
