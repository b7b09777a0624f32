package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/aiadventure/engine"
	"github.com/nathoo/aiadventure/engine/save"
	"github.com/nathoo/aiadventure/meta"
)

// Model is the Bubble Tea model for the adventure TUI.
type Model struct {
	ctx    context.Context
	engine *engine.Engine
	meta   *meta.Handler

	viewport viewport.Model
	input    textinput.Model
	history  *History
	log      *transcript

	width    int
	height   int
	ready    bool
	quitting bool
	lastCmd  string
}

// introMsg delivers the opening text once the program starts.
type introMsg []string

var navigationHelp = []string{"Navigation: PgUp/PgDn to scroll, Up/Down for command history"}

// New creates a TUI model wired to the given engine and save store.
func New(ctx context.Context, eng *engine.Engine, store save.Store) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		ctx:     ctx,
		engine:  eng,
		meta:    &meta.Handler{Engine: eng, Store: store, ExtraHelp: navigationHelp},
		input:   ti,
		history: NewHistory(100),
		log:     &transcript{},
	}
}

// Run starts the Bubble Tea program.
func Run(ctx context.Context, eng *engine.Engine, store save.Store) error {
	p := tea.NewProgram(New(ctx, eng, store), tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init returns the initial command that produces the intro text.
func (m Model) Init() tea.Cmd {
	intro := introMsg(m.engine.Intro())
	return tea.Batch(textinput.Blink, func() tea.Msg { return intro })
}

// Update handles messages (key presses, window resize, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}

	case introMsg:
		m.log.addGame(msg)
		m.log.endTurn()
		m.refreshViewport()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// resize fits the viewport above the status bar and input line.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	vpHeight := max(height-2, 1)

	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.viewport.KeyMap = viewportKeyMap()
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	m.refreshViewport()
}

// handleKey processes keys the model owns. Other keys go to the text input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit, true

	case "enter":
		next, cmd := m.handleEnter()
		return next, cmd, true

	case "up":
		if prev, ok := m.history.Prev(); ok {
			m.input.SetValue(prev)
			m.input.CursorEnd()
		}
		return m, nil, true

	case "down":
		if next, ok := m.history.Next(); ok {
			m.input.SetValue(next)
			m.input.CursorEnd()
		} else {
			m.input.SetValue("")
			m.history.ResetCursor()
		}
		return m, nil, true

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd, true
	}
	return m, nil, false
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()
	m.log.addInput(input)

	quit := m.submit(input)
	m.log.endTurn()
	m.refreshViewport()

	if quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// submit runs one meta or game command and records its output. It reports
// whether the program should exit.
func (m *Model) submit(input string) bool {
	if meta.IsCommand(input) {
		reply := m.meta.Handle(m.ctx, input)
		if reply.Listing {
			m.log.addGame(reply.Lines)
		} else {
			m.log.addSystem(reply.Lines)
		}
		return reply.Quit
	}

	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m.log.addSystem([]string{"Nothing to repeat."})
			return false
		}
		input = m.lastCmd
	} else {
		m.lastCmd = input
	}

	// Narration blocks here until the narrator answers or its timeout fires.
	result := m.engine.Step(m.ctx, input)
	m.log.addGame(result.Output)
	if m.meta.Trace {
		m.log.addGame(engine.TraceLines(result))
	}
	if result.Quit {
		m.log.addSystem(m.meta.Save(m.ctx))
	}
	return result.Quit
}

// refreshViewport re-renders the transcript and scrolls to the newest line.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.log.render(m.width))
	m.viewport.GotoBottom()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
