package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shigekazukoya/abbr/tui"
)

// Run executes the tui command.
func (c *TuiCmd) Run(deps *Dependencies) error {
	model := tui.New(deps.Manager, deps.Streamer)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithOutput(deps.Stdout))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run the interface: %w", err)
	}

	return nil
}
