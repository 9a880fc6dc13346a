package models

import (
	"time"

	"gorm.io/gorm"
)

// Priority levels for tasks
const (
	PriorityNone   = 0
	PriorityLow    = 1
	PriorityMedium = 2
	PriorityHigh   = 3
)

// Task represents a single piece of work on a hobby project
type Task struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	TeamID      uint   `gorm:"not null;index" json:"team_id"`
	StageID     uint   `gorm:"not null;index" json:"stage_id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Priority    int    `gorm:"default:0" json:"priority"` // 0=no priority, 1=low, 2=medium, 3=high
	AssignedTo  string `json:"assigned_to"`

	Due *time.Time `json:"due"`

	// Subtask counters, kept in sync by the subtask service
	TotalSubtasks     int `gorm:"default:0" json:"total_subtasks"`
	CompletedSubtasks int `gorm:"default:0" json:"completed_subtasks"`

	// Relationships
	Stage    *Stage    `gorm:"foreignKey:StageID" json:"stage,omitempty"`
	Subtasks []Subtask `gorm:"foreignKey:TaskID" json:"subtasks,omitempty"`
}

// Completed reports whether the task currently sits in a completion stage.
// The stage is the single source of truth; there is no stored completed flag.
func (t *Task) Completed() bool {
	return t.Stage != nil && t.Stage.IsCompletionStage
}

// PriorityLabel returns the human-readable priority name
func (t *Task) PriorityLabel() string {
	switch t.Priority {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	default:
		return ""
	}
}

// Team groups the tasks and stages of one hobby project crew
type Team struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name string `gorm:"unique;not null" json:"name"`
}

// Subtask is a checklist item belonging to a task
type Subtask struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TaskID    uint   `gorm:"not null;index" json:"task_id"`
	Title     string `gorm:"not null" json:"title"`
	Completed bool   `gorm:"default:false" json:"completed"`
	Position  int    `gorm:"default:0" json:"position"`
}
