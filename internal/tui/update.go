package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iamruinous/pica-emulator/internal/orchestrator"
)

// Update handles messages and updates the model.
//
//nolint:gocritic // hugeParam: Model must be value receiver to implement tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "c":
			m.events = make([]EventDisplay, 0)
			m.viewport.SetContent(m.renderEvents())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 8
		footerHeight := 3
		verticalMargins := headerHeight + footerHeight

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, msg.Height-verticalMargins)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = msg.Height - verticalMargins
		}
		m.viewport.SetContent(m.renderEvents())

	case tickMsg:
		m.lastUpdate = time.Time(msg)
		cmds = append(cmds, tickCmd(), fetchState(m.orch))

	case stateMsg:
		m.entities = msg

	case subscribedMsg:
		m.eventStream = msg
		cmds = append(cmds, waitForEvent(m.eventStream))

	case eventMsg:
		m.addEvent(orchestrator.Event(msg))
		m.viewport.SetContent(m.renderEvents())
		m.viewport.GotoBottom()
		cmds = append(cmds, waitForEvent(m.eventStream))

	case errMsg:
		m.errorMessage = msg.Error()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) addEvent(e orchestrator.Event) {
	d := EventDisplay{
		Time: time.Now(),
		Kind: e.Kind.String(),
		Mac:  e.Mac.String(),
	}
	if e.Kind == orchestrator.NeighborUpdated {
		d.Neighbor = e.Neighbor.Of.String()
	}

	m.events = append(m.events, d)
	if len(m.events) > MaxEvents {
		m.events = m.events[len(m.events)-MaxEvents:]
	}
}
