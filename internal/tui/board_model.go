package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Thaumonaut/cosplans/internal/db"
	"github.com/Thaumonaut/cosplans/internal/models"
	"github.com/Thaumonaut/cosplans/internal/parser"
)

// column is one kanban lane: a stage plus the tasks currently in it
type column struct {
	stage models.Stage
	tasks []models.Task
}

// BoardModel is the bubbletea model for the kanban board view
type BoardModel struct {
	teamID   uint
	teamName string

	width  int
	height int

	columns     []column
	selectedCol int
	selectedRow int

	// Quick-add state
	adding bool
	input  textinput.Model

	status string
	err    error
}

// NewBoardModel creates a board model and loads the team's stages and tasks
func NewBoardModel(teamID uint, teamName string) BoardModel {
	input := textinput.New()
	input.Placeholder = "task title"
	input.CharLimit = 120

	m := BoardModel{teamID: teamID, teamName: teamName, input: input}
	m.err = m.reload()
	return m
}

// reload re-reads stages and tasks from the store
func (m *BoardModel) reload() error {
	stages, err := db.GetStages(m.teamID)
	if err != nil {
		return err
	}

	tasks, err := db.GetTasks(db.TaskFilters{TeamID: m.teamID})
	if err != nil {
		return err
	}

	byStage := make(map[uint][]models.Task)
	for _, t := range tasks {
		byStage[t.StageID] = append(byStage[t.StageID], t)
	}

	m.columns = m.columns[:0]
	for _, s := range stages {
		m.columns = append(m.columns, column{stage: s, tasks: byStage[s.ID]})
	}

	if m.selectedCol >= len(m.columns) {
		m.selectedCol = 0
	}
	m.clampRow()
	return nil
}

func (m *BoardModel) clampRow() {
	if len(m.columns) == 0 {
		m.selectedRow = 0
		return
	}
	max := len(m.columns[m.selectedCol].tasks) - 1
	if m.selectedRow > max {
		m.selectedRow = max
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}

// selectedTask returns the task under the cursor, or nil
func (m *BoardModel) selectedTask() *models.Task {
	if len(m.columns) == 0 {
		return nil
	}
	tasks := m.columns[m.selectedCol].tasks
	if m.selectedRow < 0 || m.selectedRow >= len(tasks) {
		return nil
	}
	return &tasks[m.selectedRow]
}

// Init initializes the model
func (m BoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			switch msg.String() {
			case "esc":
				m.adding = false
				m.input.Reset()
				return m, nil
			case "enter":
				return m.submitQuickAdd()
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case "a":
			m.adding = true
			m.input.Focus()
			return m, textinput.Blink

		case "left", "h":
			if m.selectedCol > 0 {
				m.selectedCol--
				m.clampRow()
			}
			return m, nil

		case "right", "l":
			if m.selectedCol < len(m.columns)-1 {
				m.selectedCol++
				m.clampRow()
			}
			return m, nil

		case "up", "k":
			if m.selectedRow > 0 {
				m.selectedRow--
			}
			return m, nil

		case "down", "j":
			if t := m.selectedTask(); t != nil && m.selectedRow < len(m.columns[m.selectedCol].tasks)-1 {
				m.selectedRow++
			}
			return m, nil

		case "m", "enter":
			// Advance the selected task one stage to the right. Goes
			// through the state machine so streaks and milestone
			// auto-completion fire.
			return m.moveSelected(1)

		case "M":
			return m.moveSelected(-1)

		case "r":
			m.err = m.reload()
			m.status = "reloaded"
			return m, nil
		}
	}
	return m, nil
}

// submitQuickAdd creates a task in the selected column's stage
func (m BoardModel) submitQuickAdd() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(m.input.Value())
	m.adding = false
	m.input.Reset()
	if title == "" || len(m.columns) == 0 {
		return m, nil
	}

	task, err := db.CreateTask(db.CreateTaskRequest{
		Title:   title,
		TeamID:  m.teamID,
		StageID: m.columns[m.selectedCol].stage.ID,
	})
	if err != nil {
		m.status = fmt.Sprintf("add failed: %v", err)
		return m, nil
	}

	m.status = fmt.Sprintf("added #%d %s", task.ID, task.Title)
	if err := m.reload(); err != nil {
		m.err = err
	}
	return m, nil
}

func (m BoardModel) moveSelected(direction int) (tea.Model, tea.Cmd) {
	task := m.selectedTask()
	if task == nil {
		return m, nil
	}

	target := m.selectedCol + direction
	if target < 0 || target >= len(m.columns) {
		return m, nil
	}
	targetStage := m.columns[target].stage

	moved, err := db.MoveTaskToStage(task.ID, targetStage.ID)
	if err != nil {
		m.status = fmt.Sprintf("move failed: %v", err)
		return m, nil
	}

	m.status = fmt.Sprintf("moved #%d to %s", moved.ID, targetStage.Name)
	if err := m.reload(); err != nil {
		m.err = err
	}
	return m, nil
}

// View renders the board
func (m BoardModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}
	if len(m.columns) == 0 {
		return "This team has no stages yet. Run 'cosplans stages defaults' first.\n"
	}

	colWidth := 28
	if m.width > 0 {
		if w := m.width/len(m.columns) - 2; w >= 18 && w < colWidth {
			colWidth = w
		}
	}

	rendered := make([]string, 0, len(m.columns))
	for colIdx, col := range m.columns {
		rendered = append(rendered, m.renderColumn(colIdx, col, colWidth))
	}

	board := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	title := lipgloss.NewStyle().Bold(true).Render("cosplans · " + m.teamName)
	help := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).
		Render("←/→ column · ↑/↓ task · m advance · M back · a add · r reload · q quit")

	parts := []string{title, "", board}
	if m.adding {
		parts = append(parts, "add to "+m.columns[m.selectedCol].stage.Name+": "+m.input.View())
	}
	parts = append(parts, help)
	if m.status != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render(m.status))
	}
	return strings.Join(parts, "\n") + "\n"
}

func (m BoardModel) renderColumn(colIdx int, col column, width int) string {
	headerColor := ColorSecondaryText
	if col.stage.IsCompletionStage {
		headerColor = ColorSuccess
	}
	if colIdx == m.selectedCol {
		headerColor = ColorAccent
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(headerColor)).
		Render(fmt.Sprintf("%s (%d)", col.stage.Name, len(col.tasks)))

	lines := []string{header}
	for rowIdx, task := range col.tasks {
		lines = append(lines, m.renderTask(colIdx, rowIdx, task, width))
	}
	if len(col.tasks) == 0 {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDisabledText)).
			Render("  (empty)"))
	}

	borderColor := ColorBorder
	if colIdx == m.selectedCol {
		borderColor = ColorAccent
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Width(width).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func (m BoardModel) renderTask(colIdx, rowIdx int, task models.Task, width int) string {
	title := fmt.Sprintf("#%d %s", task.ID, task.Title)
	if maxLen := width - 4; maxLen > 3 && len(title) > maxLen {
		title = title[:maxLen-3] + "..."
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	if task.Completed() {
		style = style.Foreground(lipgloss.Color(ColorDisabledText))
	}
	if colIdx == m.selectedCol && rowIdx == m.selectedRow {
		style = style.Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
		title = "› " + title
	} else {
		title = "  " + title
	}

	line := style.Render(title)

	if task.Due != nil {
		due := parser.FormatDueDate(task.Due)
		dueColor := ColorSecondaryText
		if strings.HasPrefix(due, "OVERDUE") {
			dueColor = ColorError
		} else if strings.HasPrefix(due, "due today") || strings.HasPrefix(due, "due tomorrow") {
			dueColor = ColorWarning
		}
		line += "\n" + lipgloss.NewStyle().
			Foreground(lipgloss.Color(dueColor)).
			Render("    "+due)
	}

	return line
}
