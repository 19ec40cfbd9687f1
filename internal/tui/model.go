package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/soulguide/internal/chat"
	"github.com/diogo/soulguide/internal/config"
	"github.com/diogo/soulguide/internal/logger"
	"github.com/diogo/soulguide/internal/media"
	"github.com/diogo/soulguide/internal/models"
	"github.com/diogo/soulguide/internal/render"
)

// Animation tick message
type animationTickMsg time.Time

// replyMsg carries the outcome of one send
type replyMsg struct {
	message   models.Message
	err       error
	savedPath string
	saveErr   error
}

// Options configures the chat model
type Options struct {
	Persona config.Persona
	Render  render.Options
	// DownloadDir receives generated cards; empty disables saving
	DownloadDir string
	// AutoCopy copies every reply to the clipboard
	AutoCopy bool
}

// Model represents the TUI state
type Model struct {
	controller  *chat.Controller
	persona     config.Persona
	renderOpts  render.Options
	downloadDir string
	autoCopy    bool

	// Side effects, replaced in tests
	copyText  func(string) error
	loadImage func(string) (string, error)
	saveImage func(string, string) (string, error)

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	sending        bool
	ready          bool
	err            error
	notice         string
	pendingImage   string
	pendingName    string
	savedPaths     map[string]string
	renderedCount  int
	animationFrame int

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a new chat TUI model
func NewChatModel(controller *chat.Controller, opts Options) Model {
	ta := textarea.New()
	ta.Placeholder = opts.Persona.Placeholder
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Moon
	s.Style = loadingStyle

	renderOpts := opts.Render
	if renderOpts.Style == "" {
		renderOpts = render.DefaultOptions()
	}

	return Model{
		controller:  controller,
		persona:     opts.Persona,
		renderOpts:  renderOpts,
		downloadDir: opts.DownloadDir,
		autoCopy:    opts.AutoCopy,
		copyText:    clipboard.WriteAll,
		loadImage:   media.LoadImageFile,
		saveImage:   media.SaveImage,
		textarea:    ta,
		spinner:     s,
		savedPaths:  make(map[string]string),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*120, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// loading is true from the moment a send is issued until its reply arrives
func (m Model) loading() bool {
	return m.sending || m.controller.IsLoading()
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4 // header panel with border
		inputHeight := 7  // input or CTA panel with border
		statusHeight := 2 // status bar and tagline

		vpHeight := max(m.height-headerHeight-inputHeight-statusHeight, 5)
		contentWidth := max(m.width-4, 20)

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(contentWidth - 4)
		m.updateViewport()
		m.viewport.GotoBottom()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "ctrl+y":
			m.copyLastReply()
			return m, nil

		case "enter":
			if m.loading() || !m.controller.ShowInput() {
				return m, nil
			}
			return m.submit()
		}

	case replyMsg:
		m.sending = false
		m.err = nil
		if msg.err != nil {
			m.err = m.sendError(msg.err)
		}
		if msg.savedPath != "" {
			m.savedPaths[msg.message.ID] = msg.savedPath
		}
		if msg.saveErr != nil {
			m.notice = "Не вдалося зберегти карту: " + msg.saveErr.Error()
		}
		if msg.err == nil && m.autoCopy {
			m.copyLastReply()
		}
		m.updateViewport()
		m.viewport.GotoBottom()

	case spinner.TickMsg:
		if m.loading() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.loading() {
			m.animationFrame++
			if len(m.controller.Messages()) != m.renderedCount {
				m.updateViewport()
				m.viewport.GotoBottom()
			}
			cmds = append(cmds, animationTick())
		}
	}

	// Only pass KeyMsg to textarea to prevent escape sequence leaks
	if !m.loading() && m.controller.ShowInput() {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit handles the text in the input: slash commands or a new turn
func (m Model) submit() (tea.Model, tea.Cmd) {
	raw := m.textarea.Value()
	input := strings.TrimSpace(raw)

	switch {
	case input == "exit" || input == "quit" || input == "/exit" || input == "/quit":
		return m, tea.Quit

	case input == "/image" || strings.HasPrefix(input, "/image "):
		m.textarea.Reset()
		m.attachImage(strings.TrimSpace(strings.TrimPrefix(input, "/image")))
		return m, nil

	case input == "/clear-image":
		m.textarea.Reset()
		m.pendingImage, m.pendingName = "", ""
		m.notice = "Зображення прибрано"
		return m, nil
	}

	if input == "" && m.pendingImage == "" {
		return m, nil
	}

	image := m.pendingImage
	m.pendingImage, m.pendingName = "", ""
	m.textarea.Reset()
	m.sending = true
	m.err = nil
	m.notice = ""
	m.animationFrame = 0

	return m, tea.Batch(
		m.sendCmd(raw, image),
		m.spinner.Tick,
		animationTick(),
	)
}

// sendError picks the error to show: rejections as they are, responder
// failures as recorded by the controller.
func (m Model) sendError(err error) error {
	if errors.Is(err, chat.ErrBusy) || errors.Is(err, chat.ErrLimitReached) || errors.Is(err, chat.ErrEmptyInput) {
		return err
	}
	if state := m.controller.State(); state.Err != nil {
		return state.Err
	}
	return err
}

func (m *Model) attachImage(path string) {
	if path == "" {
		m.notice = "Використання: /image <шлях до файлу>"
		return
	}
	uri, err := m.loadImage(path)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.pendingImage = uri
	m.pendingName = filepath.Base(path)
	m.notice = ""
}

func (m *Model) copyLastReply() {
	last, ok := m.controller.LastReply()
	if !ok {
		return
	}
	if err := m.copyText(last.Text); err != nil {
		logger.Warn("clipboard copy failed", "error", err)
		m.notice = "Не вдалося скопіювати: " + err.Error()
		return
	}
	m.notice = "Відповідь скопійовано"
}

// sendCmd runs the turn off the UI goroutine and saves a returned card
func (m Model) sendCmd(text, image string) tea.Cmd {
	controller := m.controller
	dir := m.downloadDir
	save := m.saveImage
	return func() tea.Msg {
		message, err := controller.Send(context.Background(), text, image)
		out := replyMsg{message: message, err: err}
		if err == nil && message.HasImage() && dir != "" {
			out.savedPath, out.saveErr = save(message.Image, dir)
			if out.saveErr != nil {
				logger.Warn("saving card failed", "error", out.saveErr)
			}
		}
		return out
	}
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  ☾ ...")
	}

	var sections []string
	contentWidth := m.viewport.Width

	// Header
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("☾ "+m.persona.Name),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.persona.Subtitle),
	)
	sections = append(sections, headerStyle.Width(contentWidth).Render(header))

	// Messages
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(m.viewport.View()))

	// Input, typing indicator or call-to-action
	switch {
	case m.loading():
		sections = append(sections, inputPanelStyle.Width(contentWidth).Render(m.renderLoadingAnimation()))
	case m.controller.ShowCTA():
		sections = append(sections, m.renderCTA(contentWidth))
	case m.controller.ShowInput():
		sections = append(sections, inputPanelStyle.Width(contentWidth).Render(m.renderInput()))
	}

	if m.err != nil {
		sections = append(sections, errorStyle.Render("⚠ "+m.err.Error()))
	}
	if m.notice != "" {
		sections = append(sections, noticeStyle.Render(m.notice))
	}

	sections = append(sections, m.renderStatusBar(contentWidth))
	if m.controller.ShowInput() && m.persona.Tagline != "" {
		sections = append(sections, taglineStyle.Width(contentWidth).Render(m.persona.Tagline))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderInput() string {
	label := inputLabelStyle.Render("Ти")
	if m.pendingName != "" {
		label = lipgloss.JoinHorizontal(lipgloss.Center, label, pendingStyle.Render("🖼 "+m.pendingName))
	}
	return lipgloss.JoinVertical(lipgloss.Left, label, m.textarea.View())
}

func (m Model) renderCTA(width int) string {
	cta := m.persona.CTA
	content := lipgloss.JoinVertical(lipgloss.Center,
		ctaTextStyle.Render(cta.Text),
		"",
		ctaButtonStyle.Render(cta.Button),
		"",
		ctaLinkStyle.Render(cta.URL),
		hintStyle.Render(cta.Handle),
	)
	return ctaPanelStyle.Width(width).Render(content)
}

// renderLoadingAnimation renders the typing indicator
func (m Model) renderLoadingAnimation() string {
	frame := m.animationFrame

	var stars strings.Builder
	for i := 0; i < 5; i++ {
		c := gradientColors[(i+frame)%len(gradientColors)]
		glyph := "✧"
		if (i+frame)%5 == 0 {
			glyph = "✦"
		}
		stars.WriteString(lipgloss.NewStyle().Foreground(c).Render(glyph))
	}

	text := lipgloss.NewStyle().Foreground(colorText).Render(" " + m.persona.Name + " слухає поле ")
	return fmt.Sprintf("%s %s%s", m.spinner.View(), stars.String(), text)
}

func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Надіслати"},
		{"/image", "Додати фото"},
		{"Ctrl+Y", "Копіювати"},
		{"Esc", "Вийти"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}
	items = append(items, statusDescStyle.Render(fmt.Sprintf("Запитань: %d", m.controller.Remaining())))

	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// updateViewport refreshes the viewport content with styled messages
func (m *Model) updateViewport() {
	messages := m.controller.Messages()
	m.renderedCount = len(messages)

	var content strings.Builder
	bubbleWidth := max(m.viewport.Width-6, 10)

	for i, msg := range messages {
		if i > 0 {
			content.WriteString("\n")
		}

		if msg.IsUser() {
			body := msg.Text
			if msg.HasImage() {
				body = strings.TrimSpace(body + "\n" + attachmentStyle.Render("🖼 зображення додано"))
			}
			content.WriteString(userLabelStyle.Render("◉ Ти") + "\n")
			content.WriteString(userBubbleStyle.Width(bubbleWidth).Render(body))
		} else {
			content.WriteString(assistantLabelStyle.Render("✦ "+m.persona.Name) + "\n")

			body := render.MarkdownOrPlain(msg.Text, m.renderOpts.WithWidth(bubbleWidth-4))
			if msg.HasImage() {
				body += "\n" + m.cardLine(msg)
			}
			content.WriteString(assistantBubbleStyle.Width(bubbleWidth).Render(body))
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

func (m Model) cardLine(msg models.Message) string {
	if path, ok := m.savedPaths[msg.ID]; ok {
		return cardStyle.Render("🃏 Карту збережено: " + path)
	}
	return cardStyle.Render("🃏 Карта отримана")
}

// Err returns the last error shown to the user
func (m Model) Err() error {
	return m.err
}

// RunChat starts the chat TUI
func RunChat(controller *chat.Controller, opts Options) error {
	p := tea.NewProgram(
		NewChatModel(controller, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
