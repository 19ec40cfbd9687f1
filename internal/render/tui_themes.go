package render

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// TUITheme defines the color scheme for the TUI interface
type TUITheme struct {
	Name        string
	Description string

	// Base colors
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	// Text colors
	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

// Built-in TUI themes
var (
	// MysticTheme is the default: indigo night with violet and gold accents
	MysticTheme = TUITheme{
		Name:        "mystic",
		Description: "Mystic - indigo night with violet and gold",

		Background: lipgloss.Color("#0f0c29"),
		Surface:    lipgloss.Color("#1e1b4b"),
		Border:     lipgloss.Color("#4c1d95"),

		Primary:   lipgloss.Color("#c4b5fd"), // violet
		Secondary: lipgloss.Color("#818cf8"), // indigo
		Accent:    lipgloss.Color("#e9d5ff"),
		Warning:   lipgloss.Color("#fcd34d"), // gold
		Error:     lipgloss.Color("#fda4af"),

		Text:     lipgloss.Color("#ede9fe"),
		TextDim:  lipgloss.Color("#a78bfa"),
		TextMute: lipgloss.Color("#5b4b8a"),
	}

	// DawnTheme suits light terminals
	DawnTheme = TUITheme{
		Name:        "dawn",
		Description: "Dawn - soft light theme with rose accents",

		Background: lipgloss.Color("#faf4ed"),
		Surface:    lipgloss.Color("#f2e9e1"),
		Border:     lipgloss.Color("#dfdad9"),

		Primary:   lipgloss.Color("#907aa9"),
		Secondary: lipgloss.Color("#56949f"),
		Accent:    lipgloss.Color("#d7827e"),
		Warning:   lipgloss.Color("#ea9d34"),
		Error:     lipgloss.Color("#b4637a"),

		Text:     lipgloss.Color("#575279"),
		TextDim:  lipgloss.Color("#797593"),
		TextMute: lipgloss.Color("#9893a5"),
	}

	// TokyoNightTheme is based on the Tokyo Night color scheme
	TokyoNightTheme = TUITheme{
		Name:        "tokyonight",
		Description: "Tokyo Night - Dark theme with blue accents",

		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#24283b"),
		Border:     lipgloss.Color("#414868"),

		Primary:   lipgloss.Color("#7aa2f7"),
		Secondary: lipgloss.Color("#9ece6a"),
		Accent:    lipgloss.Color("#bb9af7"),
		Warning:   lipgloss.Color("#e0af68"),
		Error:     lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),
	}
)

var (
	themeMu         sync.RWMutex
	currentTUITheme = MysticTheme
)

// GetTUITheme returns the currently active TUI theme
func GetTUITheme() TUITheme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTUITheme
}

// SetTUITheme sets the active TUI theme by name
func SetTUITheme(name string) bool {
	theme, ok := GetTUIThemeByName(name)
	if !ok {
		return false
	}
	themeMu.Lock()
	currentTUITheme = theme
	themeMu.Unlock()
	return true
}

// GetTUIThemeByName returns a TUI theme by its name
func GetTUIThemeByName(name string) (TUITheme, bool) {
	for _, t := range AvailableTUIThemes() {
		if t.Name == name {
			return t, true
		}
	}
	return TUITheme{}, false
}

// AvailableTUIThemes returns a list of all available TUI themes
func AvailableTUIThemes() []TUITheme {
	return []TUITheme{
		MysticTheme,
		DawnTheme,
		TokyoNightTheme,
	}
}

// TUIThemeNames returns just the theme names for selection
func TUIThemeNames() []string {
	themes := AvailableTUIThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
