package db

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Thaumonaut/cosplans/internal/models"
	"github.com/Thaumonaut/cosplans/internal/notify"
)

// CreateTaskRequest holds the data needed to create a new task
type CreateTaskRequest struct {
	Title       string
	TeamID      uint
	StageID     uint   // 0 picks the team's first non-completion stage
	Priority    string // "low/medium/high" or "1/2/3", empty for no priority
	AssignedTo  string
	Description string
	DueDate     *time.Time
}

// CreateTask creates a new task in the given team's workflow
func CreateTask(req CreateTaskRequest) (*models.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, &models.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if req.TeamID == 0 {
		return nil, &models.ValidationError{Field: "team_id", Reason: "must not be zero"}
	}

	stageID := req.StageID
	if stageID == 0 {
		stage, err := FirstNonCompletionStage(req.TeamID)
		if err != nil {
			return nil, err
		}
		if stage == nil {
			// Every stage is flagged complete (or none exist): fall back
			// to whatever comes first in the ordering.
			stages, err := EnsureDefaultStages(req.TeamID)
			if err != nil {
				return nil, err
			}
			stage = &stages[0]
		}
		stageID = stage.ID
	} else {
		stage, err := GetStage(stageID)
		if err != nil {
			return nil, err
		}
		if stage.TeamID != req.TeamID {
			return nil, &models.InvalidStageError{StageID: stageID, TeamID: req.TeamID}
		}
	}

	task := models.Task{
		Title:       title,
		TeamID:      req.TeamID,
		StageID:     stageID,
		Priority:    parsePriority(req.Priority),
		AssignedTo:  req.AssignedTo,
		Description: req.Description,
		Due:         req.DueDate,
	}
	if err := DB.Create(&task).Error; err != nil {
		return nil, err
	}

	if task.AssignedTo != "" {
		if _, err := RecordCreation(task.AssignedTo, task.TeamID); err != nil {
			slog.Warn("failed to record task creation",
				slog.Uint64("task_id", uint64(task.ID)),
				slog.String("error", err.Error()),
			)
		}
		Notifier.Dispatch(notify.Event{
			Type:      notify.EventTaskAssigned,
			TaskID:    task.ID,
			TaskTitle: task.Title,
			Detail:    fmt.Sprintf("assigned to %s", task.AssignedTo),
			At:        time.Now(),
		})
	}

	DB.Preload("Stage").First(&task, task.ID)
	return &task, nil
}

// parsePriority converts a priority string to its numeric level
func parsePriority(priority string) int {
	priority = strings.ToLower(strings.TrimSpace(priority))
	switch priority {
	case "low", "1":
		return models.PriorityLow
	case "medium", "2":
		return models.PriorityMedium
	case "high", "3":
		return models.PriorityHigh
	default:
		return models.PriorityNone
	}
}

// GetTaskByID fetches a task with its current stage
func GetTaskByID(taskID uint) (*models.Task, error) {
	var task models.Task
	err := DB.Preload("Stage").First(&task, taskID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Resource: "task", ID: taskID}
		}
		return nil, err
	}
	return &task, nil
}

// TaskFilters narrows GetTasks results
type TaskFilters struct {
	TeamID           uint
	StageID          uint
	AssignedTo       string
	ExcludeCompleted bool
}

// GetTasks retrieves tasks with optional filters, newest first
func GetTasks(filters TaskFilters) ([]models.Task, error) {
	query := DB.Preload("Stage").Order("tasks.created_at DESC")

	if filters.TeamID != 0 {
		query = query.Where("tasks.team_id = ?", filters.TeamID)
	}
	if filters.StageID != 0 {
		query = query.Where("tasks.stage_id = ?", filters.StageID)
	}
	if filters.AssignedTo != "" {
		query = query.Where("tasks.assigned_to = ?", filters.AssignedTo)
	}
	if filters.ExcludeCompleted {
		query = query.Joins("JOIN stages ON stages.id = tasks.stage_id").
			Where("stages.is_completion_stage = ?", false)
	}

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// TaskUpdates holds optional field changes for UpdateTask
type TaskUpdates struct {
	Title       *string
	Description *string
	Priority    *string
	AssignedTo  *string
	DueDate     *time.Time
	ClearDue    bool
}

// UpdateTask applies the given field changes. Stage transitions go through
// MoveTaskToStage, never through here, so completion side effects cannot be
// skipped.
func UpdateTask(taskID uint, updates TaskUpdates) (*models.Task, error) {
	task, err := GetTaskByID(taskID)
	if err != nil {
		return nil, err
	}

	if updates.Title != nil {
		title := strings.TrimSpace(*updates.Title)
		if title == "" {
			return nil, &models.ValidationError{Field: "title", Reason: "must not be empty"}
		}
		task.Title = title
	}
	if updates.Description != nil {
		task.Description = *updates.Description
	}
	if updates.Priority != nil {
		task.Priority = parsePriority(*updates.Priority)
	}
	if updates.AssignedTo != nil {
		task.AssignedTo = *updates.AssignedTo
	}
	if updates.ClearDue {
		task.Due = nil
	} else if updates.DueDate != nil {
		task.Due = updates.DueDate
	}

	if err := DB.Save(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes a task and its subtasks and deadlines
func DeleteTask(taskID uint) error {
	task, err := GetTaskByID(taskID)
	if err != nil {
		return err
	}

	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&models.Subtask{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", taskID).Delete(&models.StageDeadline{}).Error; err != nil {
			return err
		}
		return tx.Delete(task).Error
	})
}

// MoveTaskToStage moves a task to another stage of its team's workflow.
//
// The stage change itself is the primary operation. Once it is committed,
// two side effects run best-effort: entering a completion stage records a
// completion for the assignee's streak, and milestones for stages now behind
// the task are settled. Failures there are logged, never rolled back.
func MoveTaskToStage(taskID, stageID uint) (*models.Task, error) {
	task, err := GetTaskByID(taskID)
	if err != nil {
		return nil, err
	}

	stage, err := GetStage(stageID)
	if err != nil {
		return nil, err
	}
	if stage.TeamID != task.TeamID {
		return nil, &models.InvalidStageError{StageID: stageID, TeamID: task.TeamID}
	}

	// Update by id, not through the loaded struct: the preloaded Stage
	// association would feed the old foreign key back into the write.
	if err := DB.Model(&models.Task{}).Where("id = ?", taskID).Update("stage_id", stageID).Error; err != nil {
		return nil, err
	}

	if stage.IsCompletionStage && task.AssignedTo != "" {
		if _, err := RecordCompletion(task.AssignedTo, task.TeamID); err != nil {
			slog.Warn("failed to record completion",
				slog.Uint64("task_id", uint64(taskID)),
				slog.String("user", task.AssignedTo),
				slog.String("error", err.Error()),
			)
		}
	}

	if err := AutoCompletePreviousStages(taskID, stageID); err != nil {
		slog.Warn("failed to auto-complete stage deadlines",
			slog.Uint64("task_id", uint64(taskID)),
			slog.String("error", err.Error()),
		)
	}

	Notifier.Dispatch(notify.Event{
		Type:      notify.EventStageChanged,
		TaskID:    task.ID,
		TaskTitle: task.Title,
		Detail:    fmt.Sprintf("moved to %s", stage.Name),
		At:        time.Now(),
	})

	return GetTaskByID(taskID)
}

// CompletionStage returns the team's first stage flagged as completion, or
// nil when the team has none.
func CompletionStage(teamID uint) (*models.Stage, error) {
	var stage models.Stage
	err := DB.Where("team_id = ? AND is_completion_stage = ?", teamID, true).
		Order("display_order ASC, id ASC").
		First(&stage).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stage, nil
}
