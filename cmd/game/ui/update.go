package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"fable/internal/engine"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 6
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case turnResultMsg:
		m.loading = false
		m.messages = append(m.messages, msg.lines...)
		if msg.status == engine.StatusQuit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" || m.loading {
		return m, nil
	}
	m.input.SetValue("")
	m.messages = append(m.messages, line{kindUser, "> " + input})
	m.loading = true
	return m, tea.Batch(m.turnCmd(input), m.spin.Tick)
}

// turnCmd runs one engine turn off the update loop. The loading gate
// guarantees only one turn is in flight.
func (m Model) turnCmd(input string) tea.Cmd {
	return func() tea.Msg {
		m.sink.reset()
		status := m.eng.HandleInput(context.Background(), input)
		return turnResultMsg{lines: m.sink.take(), status: status}
	}
}
