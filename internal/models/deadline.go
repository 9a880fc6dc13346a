package models

import "time"

// DeadlineUrgency classifies how close a stage deadline is
type DeadlineUrgency string

const (
	UrgencySafe        DeadlineUrgency = "safe"
	UrgencyApproaching DeadlineUrgency = "approaching"
	UrgencyUrgent      DeadlineUrgency = "urgent"
	UrgencyOverdue     DeadlineUrgency = "overdue"
)

// StageDeadline is a milestone attached to a (task, stage) pair: "reach this
// stage by this date". A nil CompletedAt means the milestone is still pending.
type StageDeadline struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TaskID      uint       `gorm:"not null;index" json:"task_id"`
	StageID     uint       `gorm:"not null;index" json:"stage_id"`
	Deadline    time.Time  `gorm:"not null" json:"deadline"`
	CompletedAt *time.Time `json:"completed_at"`

	Stage *Stage `gorm:"foreignKey:StageID" json:"stage,omitempty"`
}

// Pending reports whether the deadline has not been met yet
func (d *StageDeadline) Pending() bool {
	return d.CompletedAt == nil
}
