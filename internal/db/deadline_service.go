package db

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/Thaumonaut/cosplans/internal/models"
)

// CreateDeadline attaches a milestone deadline to a (task, stage) pair.
// At most one deadline per pair is expected; the caller is responsible for
// not creating duplicates.
func CreateDeadline(taskID, stageID uint, deadline time.Time) (*models.StageDeadline, error) {
	if taskID == 0 {
		return nil, &models.ValidationError{Field: "task_id", Reason: "must not be zero"}
	}
	if stageID == 0 {
		return nil, &models.ValidationError{Field: "stage_id", Reason: "must not be zero"}
	}

	d := models.StageDeadline{
		TaskID:   taskID,
		StageID:  stageID,
		Deadline: deadline,
	}
	if err := DB.Create(&d).Error; err != nil {
		return nil, err
	}

	DB.Preload("Stage").First(&d, d.ID)
	return &d, nil
}

// GetDeadlinesForTask returns all deadlines of a task ordered by deadline
func GetDeadlinesForTask(taskID uint) ([]models.StageDeadline, error) {
	var deadlines []models.StageDeadline
	err := DB.Preload("Stage").
		Where("task_id = ?", taskID).
		Order("deadline ASC").
		Find(&deadlines).Error
	if err != nil {
		return nil, err
	}
	return deadlines, nil
}

// UpcomingDeadline returns the task's earliest pending deadline, or nil when
// every deadline has been met.
func UpcomingDeadline(taskID uint) (*models.StageDeadline, error) {
	var d models.StageDeadline
	err := DB.Preload("Stage").
		Where("task_id = ? AND completed_at IS NULL", taskID).
		Order("deadline ASC").
		First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

// CompleteDeadline marks the deadline for a (task, stage) pair as met.
// Completing an already-completed deadline returns the existing record
// unchanged; a pair without a deadline is a no-op returning nil.
func CompleteDeadline(taskID, stageID uint) (*models.StageDeadline, error) {
	var d models.StageDeadline
	err := DB.Preload("Stage").
		Where("task_id = ? AND stage_id = ?", taskID, stageID).
		First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if d.CompletedAt != nil {
		return &d, nil
	}

	now := time.Now()
	d.CompletedAt = &now
	if err := DB.Save(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// UpdateDeadline moves a pending deadline to a new timestamp
func UpdateDeadline(deadlineID uint, deadline time.Time) (*models.StageDeadline, error) {
	var d models.StageDeadline
	if err := DB.First(&d, deadlineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Resource: "deadline", ID: deadlineID}
		}
		return nil, err
	}

	d.Deadline = deadline
	if err := DB.Save(&d).Error; err != nil {
		return nil, err
	}

	DB.Preload("Stage").First(&d, d.ID)
	return &d, nil
}

// DeleteDeadline removes a deadline
func DeleteDeadline(deadlineID uint) error {
	result := DB.Delete(&models.StageDeadline{}, deadlineID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &models.NotFoundError{Resource: "deadline", ID: deadlineID}
	}
	return nil
}

// AutoCompletePreviousStages settles milestones a task has moved past: every
// pending deadline whose stage sits strictly before the new stage in the
// team's current ordering is marked completed. Deadlines for stages no longer
// in the team's workflow are never auto-completed. The stage order is re-read
// here rather than cached so a concurrent reorder cannot leave stale orders
// in play.
func AutoCompletePreviousStages(taskID, newStageID uint) error {
	var pending []models.StageDeadline
	err := DB.Where("task_id = ? AND completed_at IS NULL", taskID).Find(&pending).Error
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	var task models.Task
	if err := DB.First(&task, taskID).Error; err != nil {
		return err
	}

	stages, err := GetStages(task.TeamID)
	if err != nil {
		return err
	}

	orderOf := make(map[uint]int, len(stages))
	for _, s := range stages {
		orderOf[s.ID] = s.DisplayOrder
	}

	// A destination no longer in the workflow has no position to compare
	// against, so nothing can be "behind" it.
	newOrder, ok := orderOf[newStageID]
	if !ok {
		return nil
	}

	var behind []uint
	for _, d := range pending {
		order, ok := orderOf[d.StageID]
		if !ok {
			// Stage removed from the workflow: treat as unreachable.
			continue
		}
		if order < newOrder {
			behind = append(behind, d.ID)
		}
	}
	if len(behind) == 0 {
		return nil
	}

	now := time.Now()
	return DB.Model(&models.StageDeadline{}).
		Where("id IN ?", behind).
		Update("completed_at", now).Error
}

// ClassifyDeadline returns the urgency level and days remaining for a
// deadline. The day count is the ceiling of the distance to the deadline, so
// anything later today counts as one day. Completed deadlines are always safe.
func ClassifyDeadline(d *models.StageDeadline, now time.Time) (models.DeadlineUrgency, int) {
	if d.CompletedAt != nil {
		return models.UrgencySafe, 0
	}

	diffDays := d.Deadline.Sub(now).Hours() / 24
	daysRemaining := int(math.Ceil(diffDays))

	switch {
	case daysRemaining < 0:
		return models.UrgencyOverdue, daysRemaining
	case daysRemaining <= 1:
		return models.UrgencyUrgent, daysRemaining
	case daysRemaining <= 3:
		return models.UrgencyApproaching, daysRemaining
	default:
		return models.UrgencySafe, daysRemaining
	}
}
