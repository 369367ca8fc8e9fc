package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fable/internal/engine"
)

type Model struct {
	messages []line
	input    textinput.Model
	spin     spinner.Model

	width    int
	height   int
	loading  bool
	quitting bool

	eng   *engine.Engine
	sink  *collectSink
	debug bool
}

type turnResultMsg struct {
	lines  []line
	status engine.Status
}

// NewModel builds the TUI over an engine wired to the given sink. The
// sink must be the one the engine writes to.
func NewModel(eng *engine.Engine, sink *collectSink, debug bool) Model {
	input := textinput.New()
	input.Placeholder = "What do you do?"
	input.CharLimit = 200
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Points
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	return Model{
		input: input,
		spin:  spin,
		eng:   eng,
		sink:  sink,
		debug: debug,
	}
}

// NewSink returns the sink to hand to engine.New before NewModel.
func NewSink() *collectSink {
	return &collectSink{}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.openingCmd())
}

// openingCmd runs the engine's opening narration off the update loop.
func (m Model) openingCmd() tea.Cmd {
	return func() tea.Msg {
		m.sink.reset()
		m.eng.Start()
		return turnResultMsg{lines: m.sink.take(), status: engine.StatusRunning}
	}
}
