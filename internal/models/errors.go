package models

import "fmt"

// NotFoundError is returned when a record does not exist.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s #%d not found", e.Resource, e.ID)
}

// InvalidStageError is returned when a stage does not belong to the task's team.
type InvalidStageError struct {
	StageID uint
	TeamID  uint
}

func (e *InvalidStageError) Error() string {
	return fmt.Sprintf("stage #%d does not belong to team #%d", e.StageID, e.TeamID)
}

// StageInUseError is returned when deleting a stage that tasks still reference.
type StageInUseError struct {
	StageID   uint
	TaskCount int64
}

func (e *StageInUseError) Error() string {
	return fmt.Sprintf("stage #%d is referenced by %d task(s) and cannot be deleted", e.StageID, e.TaskCount)
}

// ValidationError is returned for malformed input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
