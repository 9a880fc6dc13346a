package models

import "time"

// Stage is one column of a team's kanban workflow. Stages are ordered by
// DisplayOrder ascending; reaching a stage with IsCompletionStage set marks
// a task as done.
type Stage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TeamID            uint   `gorm:"not null;index" json:"team_id"`
	Name              string `gorm:"not null" json:"name"`
	DisplayOrder      int    `gorm:"not null;default:0" json:"display_order"`
	IsCompletionStage bool   `gorm:"default:false" json:"is_completion_stage"`
	Color             string `json:"color"`
}
