package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thaumonaut/cosplans/internal/models"
)

func TestEnsureDefaultStages_EmptyTeam(t *testing.T) {
	openTestDB(t)

	team := models.Team{Name: "props"}
	require.NoError(t, DB.Create(&team).Error)

	stages, err := EnsureDefaultStages(team.ID)
	require.NoError(t, err)
	require.Len(t, stages, 3)

	assert.Equal(t, "Todo", stages[0].Name)
	assert.Equal(t, 0, stages[0].DisplayOrder)
	assert.False(t, stages[0].IsCompletionStage)

	assert.Equal(t, "In Progress", stages[1].Name)
	assert.Equal(t, 1, stages[1].DisplayOrder)
	assert.False(t, stages[1].IsCompletionStage)

	assert.Equal(t, "Done", stages[2].Name)
	assert.Equal(t, 2, stages[2].DisplayOrder)
	assert.True(t, stages[2].IsCompletionStage)
}

func TestEnsureDefaultStages_Idempotent(t *testing.T) {
	openTestDB(t)
	teamID := seedTeam(t, "props")

	stages, err := EnsureDefaultStages(teamID)
	require.NoError(t, err)
	assert.Len(t, stages, 3)

	again, err := EnsureDefaultStages(teamID)
	require.NoError(t, err)
	assert.Len(t, again, 3)
}

func TestEnsureDefaultStages_ExistingStagesUntouched(t *testing.T) {
	openTestDB(t)

	team := models.Team{Name: "props"}
	require.NoError(t, DB.Create(&team).Error)

	_, err := CreateStage(team.ID, "Backlog", 0, false)
	require.NoError(t, err)

	stages, err := EnsureDefaultStages(team.ID)
	require.NoError(t, err)
	require.Len(t, stages, 1)
	assert.Equal(t, "Backlog", stages[0].Name)
}

func TestGetStages_OrderedByDisplayOrder(t *testing.T) {
	openTestDB(t)

	team := models.Team{Name: "props"}
	require.NoError(t, DB.Create(&team).Error)

	_, err := CreateStage(team.ID, "Last", 5, true)
	require.NoError(t, err)
	_, err = CreateStage(team.ID, "First", 0, false)
	require.NoError(t, err)
	_, err = CreateStage(team.ID, "Middle", 2, false)
	require.NoError(t, err)

	stages, err := GetStages(team.ID)
	require.NoError(t, err)
	require.Len(t, stages, 3)
	assert.Equal(t, "First", stages[0].Name)
	assert.Equal(t, "Middle", stages[1].Name)
	assert.Equal(t, "Last", stages[2].Name)
}

func TestFirstNonCompletionStage(t *testing.T) {
	openTestDB(t)
	teamID := seedTeam(t, "props")

	stage, err := FirstNonCompletionStage(teamID)
	require.NoError(t, err)
	require.NotNil(t, stage)
	assert.Equal(t, "Todo", stage.Name)
}

func TestFirstNonCompletionStage_AllCompletion(t *testing.T) {
	openTestDB(t)

	team := models.Team{Name: "props"}
	require.NoError(t, DB.Create(&team).Error)
	_, err := CreateStage(team.ID, "Done", 0, true)
	require.NoError(t, err)

	stage, err := FirstNonCompletionStage(team.ID)
	require.NoError(t, err)
	assert.Nil(t, stage)
}

func TestReorderStages(t *testing.T) {
	openTestDB(t)
	teamID := seedTeam(t, "props")

	stages, err := GetStages(teamID)
	require.NoError(t, err)
	require.Len(t, stages, 3)

	// Reverse the workflow.
	reordered, err := ReorderStages(teamID, []uint{stages[2].ID, stages[1].ID, stages[0].ID})
	require.NoError(t, err)
	require.Len(t, reordered, 3)

	assert.Equal(t, "Done", reordered[0].Name)
	assert.Equal(t, 0, reordered[0].DisplayOrder)
	assert.Equal(t, "Todo", reordered[2].Name)
	assert.Equal(t, 2, reordered[2].DisplayOrder)
}

func TestReorderStages_ForeignStageRejected(t *testing.T) {
	openTestDB(t)
	teamID := seedTeam(t, "props")
	otherID := seedTeam(t, "sewing")

	otherStages, err := GetStages(otherID)
	require.NoError(t, err)

	stages, err := GetStages(teamID)
	require.NoError(t, err)

	_, err = ReorderStages(teamID, []uint{otherStages[0].ID, stages[0].ID, stages[1].ID})
	require.Error(t, err)

	var invalid *models.InvalidStageError
	assert.True(t, errors.As(err, &invalid))

	// The failed reorder must not have moved anything.
	after, err := GetStages(teamID)
	require.NoError(t, err)
	assert.Equal(t, "Todo", after[0].Name)
}

func TestDeleteStage_InUse(t *testing.T) {
	openTestDB(t)
	teamID := seedTeam(t, "props")

	stages, err := GetStages(teamID)
	require.NoError(t, err)

	_, err = CreateTask(CreateTaskRequest{Title: "paint helmet", TeamID: teamID})
	require.NoError(t, err)

	err = DeleteStage(stages[0].ID)
	require.Error(t, err)

	var inUse *models.StageInUseError
	require.True(t, errors.As(err, &inUse))
	assert.Equal(t, int64(1), inUse.TaskCount)
}

func TestDeleteStage_Unreferenced(t *testing.T) {
	openTestDB(t)
	teamID := seedTeam(t, "props")

	stages, err := GetStages(teamID)
	require.NoError(t, err)

	require.NoError(t, DeleteStage(stages[1].ID))

	remaining, err := GetStages(teamID)
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}

func TestDeleteStage_NotFound(t *testing.T) {
	openTestDB(t)

	err := DeleteStage(9999)
	require.Error(t, err)

	var notFound *models.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestCreateStage_EmptyName(t *testing.T) {
	openTestDB(t)
	teamID := seedTeam(t, "props")

	_, err := CreateStage(teamID, "   ", 3, false)
	require.Error(t, err)

	var validation *models.ValidationError
	assert.True(t, errors.As(err, &validation))
}
