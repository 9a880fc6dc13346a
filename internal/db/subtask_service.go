package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Thaumonaut/cosplans/internal/models"
)

// AddSubtask appends a checklist item to a task
func AddSubtask(taskID uint, title string) (*models.Subtask, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, &models.ValidationError{Field: "title", Reason: "must not be empty"}
	}

	if _, err := GetTaskByID(taskID); err != nil {
		return nil, err
	}

	var subtask models.Subtask
	err := DB.Transaction(func(tx *gorm.DB) error {
		var position int64
		if err := tx.Model(&models.Subtask{}).Where("task_id = ?", taskID).Count(&position).Error; err != nil {
			return err
		}

		subtask = models.Subtask{
			TaskID:   taskID,
			Title:    title,
			Position: int(position),
		}
		if err := tx.Create(&subtask).Error; err != nil {
			return err
		}

		return refreshSubtaskCounters(tx, taskID)
	})
	if err != nil {
		return nil, err
	}
	return &subtask, nil
}

// GetSubtasks returns a task's checklist in position order
func GetSubtasks(taskID uint) ([]models.Subtask, error) {
	var subtasks []models.Subtask
	err := DB.Where("task_id = ?", taskID).
		Order("position ASC, id ASC").
		Find(&subtasks).Error
	if err != nil {
		return nil, err
	}
	return subtasks, nil
}

// ToggleSubtask flips a subtask's completed flag
func ToggleSubtask(subtaskID uint) (*models.Subtask, error) {
	var subtask models.Subtask
	if err := DB.First(&subtask, subtaskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Resource: "subtask", ID: subtaskID}
		}
		return nil, err
	}

	err := DB.Transaction(func(tx *gorm.DB) error {
		subtask.Completed = !subtask.Completed
		if err := tx.Save(&subtask).Error; err != nil {
			return err
		}
		return refreshSubtaskCounters(tx, subtask.TaskID)
	})
	if err != nil {
		return nil, err
	}
	return &subtask, nil
}

// DeleteSubtask removes a checklist item
func DeleteSubtask(subtaskID uint) error {
	var subtask models.Subtask
	if err := DB.First(&subtask, subtaskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.NotFoundError{Resource: "subtask", ID: subtaskID}
		}
		return err
	}

	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&subtask).Error; err != nil {
			return err
		}
		return refreshSubtaskCounters(tx, subtask.TaskID)
	})
}

// refreshSubtaskCounters recomputes the denormalized subtask counters on the
// parent task. The suggestion scorer reads these counters, so they are kept
// in the same transaction as the change that invalidated them.
func refreshSubtaskCounters(tx *gorm.DB, taskID uint) error {
	var total, completed int64
	if err := tx.Model(&models.Subtask{}).Where("task_id = ?", taskID).Count(&total).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.Subtask{}).Where("task_id = ? AND completed = ?", taskID, true).Count(&completed).Error; err != nil {
		return err
	}

	return tx.Model(&models.Task{}).Where("id = ?", taskID).Updates(map[string]interface{}{
		"total_subtasks":     total,
		"completed_subtasks": completed,
	}).Error
}
