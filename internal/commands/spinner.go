package commands

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Gradient colors for animation
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#c4b5fd"),
	lipgloss.Color("#a78bfa"),
	lipgloss.Color("#818cf8"),
	lipgloss.Color("#6366f1"),
	lipgloss.Color("#e9d5ff"),
	lipgloss.Color("#fcd34d"),
}

// colorTextMute draws the unlit stars
var colorTextMute = lipgloss.Color("#4c4566")

// spinner handles the animated loading indicator
type spinner struct {
	w       io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool // Flag to prevent double-close
}

// newSpinner creates a new animated spinner writing to w
func newSpinner(w io.Writer, message string) *spinner {
	return &spinner{
		w:       w,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(s.w, "\033[?25l")

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(s.w, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws the current animation frame
func (s *spinner) render() {
	moons := []string{"🌑", "🌒", "🌓", "🌔", "🌕", "🌖", "🌗", "🌘"}
	moon := moons[(s.frame/2)%len(moons)]

	var stars strings.Builder
	numStars := (s.frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < numStars {
			starColor := gradientColors[(s.frame+i)%len(gradientColors)]
			stars.WriteString(lipgloss.NewStyle().Foreground(starColor).Render("✦"))
		} else {
			stars.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("·"))
		}
	}

	msgColor := gradientColors[(s.frame/4)%len(gradientColors)]
	msg := lipgloss.NewStyle().Foreground(msgColor).Italic(true).Render(s.message)

	fmt.Fprintf(s.w, "\r\033[K%s %s %s", moon, msg, stars.String())
}

// stopOnce safely closes the stop channel only once
func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

// stopWithSuccess stops the spinner and shows success message
func (s *spinner) stopWithSuccess(message string) {
	s.stopOnce()
	<-s.done

	checkmark := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("✓")
	msg := lipgloss.NewStyle().Foreground(colorSuccess).Render(message)
	fmt.Fprintf(s.w, "%s %s\n", checkmark, msg)
}

// stopWithError stops the spinner and clears the line
func (s *spinner) stopWithError() {
	s.stopOnce()
	<-s.done
}
