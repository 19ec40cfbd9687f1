package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// maxIdle bounds the idle renderers kept per option set
const maxIdle = 4

// rendererCache keeps idle glamour renderers per option set. A TermRenderer
// must not render concurrently, so each call checks one out and returns it.
type rendererCache struct {
	mu   sync.Mutex
	idle map[Options][]*glamour.TermRenderer
}

var renderers = &rendererCache{idle: make(map[Options][]*glamour.TermRenderer)}

func (c *rendererCache) acquire(opts Options) (*glamour.TermRenderer, error) {
	c.mu.Lock()
	if list := c.idle[opts]; len(list) > 0 {
		tr := list[len(list)-1]
		c.idle[opts] = list[:len(list)-1]
		c.mu.Unlock()
		return tr, nil
	}
	c.mu.Unlock()

	return newRenderer(opts)
}

func (c *rendererCache) release(opts Options, tr *glamour.TermRenderer) {
	if tr == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if list := c.idle[opts]; len(list) < maxIdle {
		c.idle[opts] = append(list, tr)
	}
}

func (c *rendererCache) idleCount(opts Options) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.idle[opts])
}

func newRenderer(opts Options) (*glamour.TermRenderer, error) {
	rendererOpts := []glamour.TermRendererOption{
		glamour.WithWordWrap(opts.Width),
	}

	if opts.Style == ThemeMystic {
		rendererOpts = append(rendererOpts, glamour.WithStyles(MysticStyle()))
	} else {
		rendererOpts = append(rendererOpts, glamour.WithStylePath(opts.Style))
	}
	if opts.EnableEmoji {
		rendererOpts = append(rendererOpts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		rendererOpts = append(rendererOpts, glamour.WithPreservedNewLines())
	}

	return glamour.NewTermRenderer(rendererOpts...)
}

// ClearCache drops all idle renderers.
func ClearCache() {
	renderers.mu.Lock()
	renderers.idle = make(map[Options][]*glamour.TermRenderer)
	renderers.mu.Unlock()
}

// CacheSize returns the number of option sets seen since the last clear.
func CacheSize() int {
	renderers.mu.Lock()
	defer renderers.mu.Unlock()
	return len(renderers.idle)
}
