// Package render provides markdown rendering and color themes for terminal output.
package render

import (
	"os"

	"github.com/diogo/soulguide/internal/config"
)

// EnvStyle overrides the configured markdown style
const EnvStyle = "GLAMOUR_STYLE"

const (
	defaultWidth = 80
	minWidth     = 20
)

// Options configures how a reply is rendered. Options is comparable and is
// used directly as the renderer cache key.
type Options struct {
	Width int
	// Style is "mystic", a glamour style name, or a path to a JSON style file
	Style string
	// EnableEmoji converts :emoji: shortcodes
	EnableEmoji      bool
	PreserveNewLines bool
}

// DefaultOptions returns the options used by the chat and ask output.
func DefaultOptions() Options {
	return Options{
		Width:            defaultWidth,
		Style:            ThemeMystic,
		EnableEmoji:      true,
		PreserveNewLines: true,
	}
}

// OptionsFromConfig builds render options from the markdown section of the
// user configuration. GLAMOUR_STYLE takes precedence over the file and a
// non-positive width keeps the default.
func OptionsFromConfig(md config.MarkdownConfig, width int) Options {
	opts := DefaultOptions()
	if md.Style != "" {
		opts.Style = md.Style
	}
	opts.PreserveNewLines = md.PreserveNewLines

	if style := os.Getenv(EnvStyle); style != "" {
		opts.Style = style
	}
	if width > 0 {
		opts.Width = width
	}
	return opts
}

func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}

func (o Options) WithEmoji(enabled bool) Options {
	o.EnableEmoji = enabled
	return o
}

func (o Options) WithPreserveNewLines(enabled bool) Options {
	o.PreserveNewLines = enabled
	return o
}

// normalized fills an empty style and clamps narrow widths so bubbles in a
// small terminal still wrap readably
func (o Options) normalized() Options {
	if o.Style == "" {
		o.Style = ThemeMystic
	}
	if o.Width <= 0 {
		o.Width = defaultWidth
	}
	if o.Width < minWidth {
		o.Width = minWidth
	}
	return o
}
