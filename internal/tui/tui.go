package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// RunBoard starts the interactive kanban board for a team
func RunBoard(teamID uint, teamName string) error {
	model := NewBoardModel(teamID, teamName)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
