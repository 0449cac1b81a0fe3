// Package tui provides the terminal user interface.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iamruinous/pica-emulator/internal/orchestrator"
	"github.com/iamruinous/pica-emulator/internal/world"
)

// MaxEvents is the maximum number of recent events to keep on screen.
const MaxEvents = 100

// pollInterval is how often the model re-fetches the world snapshot.
const pollInterval = time.Second

// Model represents the TUI state: a live table of devices and anchors
// plus a scrolling log of the events that produced it.
type Model struct {
	orch *orchestrator.Orchestrator

	width    int
	height   int
	ready    bool
	quitting bool

	spinner  spinner.Model
	viewport viewport.Model

	entities     []world.Entity
	events       []EventDisplay
	eventStream  <-chan orchestrator.Event
	startTime    time.Time
	lastUpdate   time.Time
	errorMessage string
}

// EventDisplay holds one rendered event log line.
type EventDisplay struct {
	Time     time.Time
	Kind     string
	Mac      string
	Neighbor string
}

// New creates a new TUI model bound to orch.
func New(orch *orchestrator.Orchestrator) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return Model{
		orch:      orch,
		spinner:   s,
		events:    make([]EventDisplay, 0),
		startTime: time.Now(),
	}
}

// Init initializes the model.
//
//nolint:gocritic // hugeParam: Model must be value receiver to implement tea.Model interface
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		tickCmd(),
		subscribe(m.orch),
	)
}

// tickMsg refreshes the world snapshot on an interval.
type tickMsg time.Time

// subscribedMsg carries the event channel once SubscribeMsg is answered.
type subscribedMsg <-chan orchestrator.Event

// eventMsg is sent for every world event received on the subscription.
type eventMsg orchestrator.Event

// stateMsg carries a fresh world snapshot.
type stateMsg []world.Entity

// errMsg is sent when an error occurs.
type errMsg error

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func subscribe(orch *orchestrator.Orchestrator) tea.Cmd {
	return func() tea.Msg {
		reply := make(chan (<-chan orchestrator.Event), 1)
		orch.Inbox() <- orchestrator.SubscribeMsg{Reply: reply}
		return subscribedMsg(<-reply)
	}
}

func waitForEvent(events <-chan orchestrator.Event) tea.Cmd {
	return func() tea.Msg {
		if events == nil {
			return nil
		}
		e, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg(e)
	}
}

func fetchState(orch *orchestrator.Orchestrator) tea.Cmd {
	return func() tea.Msg {
		reply := make(chan []world.Entity, 1)
		orch.Inbox() <- orchestrator.GetStateMsg{Reply: reply}
		return stateMsg(<-reply)
	}
}
