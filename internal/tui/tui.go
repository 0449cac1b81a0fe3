package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iamruinous/pica-emulator/internal/orchestrator"
)

// Run starts the TUI against the given orchestrator.
func Run(orch *orchestrator.Orchestrator) error {
	model := New(orch)
	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}
