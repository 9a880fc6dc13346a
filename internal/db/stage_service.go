package db

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Thaumonaut/cosplans/internal/models"
)

// GetStages returns a team's stages ordered by display order
func GetStages(teamID uint) ([]models.Stage, error) {
	var stages []models.Stage
	err := DB.Where("team_id = ?", teamID).
		Order("display_order ASC, id ASC").
		Find(&stages).Error
	if err != nil {
		return nil, err
	}
	return stages, nil
}

// GetStage fetches a single stage by ID
func GetStage(stageID uint) (*models.Stage, error) {
	var stage models.Stage
	if err := DB.First(&stage, stageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Resource: "stage", ID: stageID}
		}
		return nil, err
	}
	return &stage, nil
}

// CreateStage adds a stage to a team's workflow
func CreateStage(teamID uint, name string, displayOrder int, isCompletion bool) (*models.Stage, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &models.ValidationError{Field: "name", Reason: "must not be empty"}
	}

	stage := models.Stage{
		TeamID:            teamID,
		Name:              name,
		DisplayOrder:      displayOrder,
		IsCompletionStage: isCompletion,
	}
	if err := DB.Create(&stage).Error; err != nil {
		return nil, err
	}
	return &stage, nil
}

// RenameStage changes a stage's name
func RenameStage(stageID uint, name string) (*models.Stage, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &models.ValidationError{Field: "name", Reason: "must not be empty"}
	}

	stage, err := GetStage(stageID)
	if err != nil {
		return nil, err
	}

	stage.Name = name
	if err := DB.Save(stage).Error; err != nil {
		return nil, err
	}
	return stage, nil
}

// FirstNonCompletionStage returns the team's first stage that is not flagged
// as a completion stage. New tasks land there by default. Returns nil when
// the team has no such stage.
func FirstNonCompletionStage(teamID uint) (*models.Stage, error) {
	var stage models.Stage
	err := DB.Where("team_id = ? AND is_completion_stage = ?", teamID, false).
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

// EnsureDefaultStages creates the standard Todo / In Progress / Done workflow
// for a team that has no stages yet. A team with at least one stage is left
// untouched, so the call is safe to repeat.
func EnsureDefaultStages(teamID uint) ([]models.Stage, error) {
	var count int64
	if err := DB.Model(&models.Stage{}).Where("team_id = ?", teamID).Count(&count).Error; err != nil {
		return nil, err
	}

	if count == 0 {
		defaults := []models.Stage{
			{TeamID: teamID, Name: "Todo", DisplayOrder: 0},
			{TeamID: teamID, Name: "In Progress", DisplayOrder: 1},
			{TeamID: teamID, Name: "Done", DisplayOrder: 2, IsCompletionStage: true},
		}
		if err := DB.Create(&defaults).Error; err != nil {
			return nil, fmt.Errorf("failed to create default stages: %w", err)
		}
	}

	return GetStages(teamID)
}

// ReorderStages reassigns display orders so each stage's order matches its
// index in orderedIDs. The whole reorder runs in one transaction so readers
// never observe a half-applied ordering.
func ReorderStages(teamID uint, orderedIDs []uint) ([]models.Stage, error) {
	if len(orderedIDs) == 0 {
		return GetStages(teamID)
	}

	err := DB.Transaction(func(tx *gorm.DB) error {
		for index, stageID := range orderedIDs {
			result := tx.Model(&models.Stage{}).
				Where("id = ? AND team_id = ?", stageID, teamID).
				Update("display_order", index)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return &models.InvalidStageError{StageID: stageID, TeamID: teamID}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return GetStages(teamID)
}

// DeleteStage removes a stage. Fails when any task still references it.
func DeleteStage(stageID uint) error {
	stage, err := GetStage(stageID)
	if err != nil {
		return err
	}

	var taskCount int64
	if err := DB.Model(&models.Task{}).Where("stage_id = ?", stageID).Count(&taskCount).Error; err != nil {
		return err
	}
	if taskCount > 0 {
		return &models.StageInUseError{StageID: stageID, TaskCount: taskCount}
	}

	return DB.Delete(stage).Error
}
