package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rionnag/unblocked/internal/core"
)

// Scene is one screen of the game: the menu, a level in play, or the
// replay viewer. Scenes are stacked; only the top one receives input and
// ticks.
type Scene interface {
	// Enter is called when the scene reaches the top of the stack, both
	// on push and when the scene above it is popped.
	Enter()
	// HandleKey processes one key press.
	HandleKey(msg tea.KeyMsg) Transition
	// Tick advances the scene by one simulation step.
	Tick() Transition
	// Render draws the scene into the screen buffer.
	Render(s *core.Screen)
}

// TransitionKind says what the stack should do after a scene update.
type TransitionKind uint8

const (
	TransNone TransitionKind = iota
	TransPush
	TransPop
	TransQuit
)

// Transition is returned by scenes to drive the stack.
type Transition struct {
	Kind TransitionKind
	Next Scene // only for TransPush
}

// Model is the Bubble Tea model running the scene stack.
type Model struct {
	stack    []Scene
	screen   *core.Screen
	tickRate int
	quitting bool
}

// NewModel creates the root model with an initial scene.
func NewModel(root Scene, cfg core.RuntimeConfig) Model {
	root.Enter()
	return Model{
		stack:    []Scene{root},
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		tickRate: cfg.TickRate,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

func (m Model) top() Scene {
	return m.stack[len(m.stack)-1]
}

// apply executes a scene transition against the stack. Popping the last
// scene quits.
func (m Model) apply(tr Transition) (tea.Model, tea.Cmd) {
	switch tr.Kind {
	case TransPush:
		m.stack = append(m.stack, tr.Next)
		tr.Next.Enter()
	case TransPop:
		m.stack = m.stack[:len(m.stack)-1]
		if len(m.stack) == 0 {
			m.quitting = true
			return m, tea.Quit
		}
		m.top().Enter()
	case TransQuit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m.apply(m.top().HandleKey(msg))

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		next, cmd := m.apply(m.top().Tick())
		if cmd != nil {
			return next, cmd
		}
		return next, tickCmd(m.tickRate)
	}

	return m, nil
}

// View renders the top scene.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.screen.Clear()
	m.top().Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given root scene.
func Run(root Scene, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(root, cfg),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
