package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thaumonaut/cosplans/internal/models"
)

func seedStatsRow(t *testing.T, teamID uint, daysAgo, completed, streak, longest int) {
	t.Helper()

	row := models.UserTaskStats{
		UserID:         "ayla",
		TeamID:         teamID,
		Date:           models.StatsDate(time.Now().AddDate(0, 0, -daysAgo)),
		TasksCompleted: completed,
		CurrentStreak:  streak,
		LongestStreak:  longest,
	}
	require.NoError(t, DB.Create(&row).Error)
}

func TestGetTodayStats_NoRow(t *testing.T) {
	openTestDB(t)
	teamID := seedTeam(t, "props")

	stats, err := GetTodayStats("ayla", teamID)
	require.NoError(t, err)
	assert.Nil(t, stats)
}

func TestGetOrCreateTodayStats_FreshStart(t *testing.T) {
	openTestDB(t)
	teamID := seedTeam(t, "props")

	stats, err := GetOrCreateTodayStats("ayla", teamID)
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, 0, stats.TasksCompleted)
	assert.Equal(t, 0, stats.CurrentStreak)
	assert.Equal(t, 0, stats.LongestStreak)
}

func TestGetOrCreateTodayStats_CarriesStreakFromActiveYesterday(t *testing.T) {
	openTestDB(t)
	teamID := seedTeam(t, "props")

	seedStatsRow(t, teamID, 1, 2, 4, 6)

	stats, err := GetOrCreateTodayStats("ayla", teamID)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.CurrentStreak)
	assert.Equal(t, 6, stats.LongestStreak)
	assert.Equal(t, 0, stats.TasksCompleted)
}

func TestGetOrCreateTodayStats_ZeroCompletionYesterdayResets(t *testing.T) {
	openTestDB(t)
	teamID := seedTeam(t, "props")

	// Yesterday's row exists but nothing was completed: the streak that
	// would carry into today is gone, whatever its stored value says.
	seedStatsRow(t, teamID, 1, 0, 7, 9)

	stats, err := GetOrCreateTodayStats("ayla", teamID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.CurrentStreak)
	assert.Equal(t, 9, stats.LongestStreak)
}

func TestGetOrCreateTodayStats_MissingYesterdayResets(t *testing.T) {
	openTestDB(t)
	teamID := seedTeam(t, "props")

	seedStatsRow(t, teamID, 2, 3, 5, 5)

	stats, err := GetOrCreateTodayStats("ayla", teamID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.CurrentStreak)
}

func TestGetOrCreateTodayStats_WiderGraceWindow(t *testing.T) {
	openTestDB(t)
	teamID := seedTeam(t, "props")

	previous := StreakGraceDays
	StreakGraceDays = 2
	t.Cleanup(func() { StreakGraceDays = previous })

	// Day before yesterday was active; yesterday has no row at all.
	seedStatsRow(t, teamID, 2, 3, 5, 5)

	stats, err := GetOrCreateTodayStats("ayla", teamID)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.CurrentStreak)
}

func TestRecordCompletion_FirstOfDayAdvancesStreak(t *testing.T) {
	openTestDB(t)
	teamID := seedTeam(t, "props")

	stats, err := RecordCompletion("ayla", teamID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TasksCompleted)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 1, stats.LongestStreak)
}

func TestRecordCompletion_SameDayOnlyCountsOnce(t *testing.T) {
	openTestDB(t)
	teamID := seedTeam(t, "props")

	for i := 0; i < 4; i++ {
		_, err := RecordCompletion("ayla", teamID)
		require.NoError(t, err)
	}

	stats, err := GetTodayStats("ayla", teamID)
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, 4, stats.TasksCompleted)
	assert.Equal(t, 1, stats.CurrentStreak, "streak advances at most once per day")
}

func TestRecordCompletion_ContinuesYesterdaysStreak(t *testing.T) {
	openTestDB(t)
	teamID := seedTeam(t, "props")

	seedStatsRow(t, teamID, 1, 1, 3, 3)

	stats, err := RecordCompletion("ayla", teamID)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.CurrentStreak)
	assert.Equal(t, 4, stats.LongestStreak)
}

func TestRecordCompletion_LongestStreakPreserved(t *testing.T) {
	openTestDB(t)
	teamID := seedTeam(t, "props")

	// A longer run happened in the past; a fresh 1-day streak must not
	// shrink the recorded maximum.
	seedStatsRow(t, teamID, 1, 0, 0, 10)

	stats, err := RecordCompletion("ayla", teamID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 10, stats.LongestStreak)
}

func TestCurrentStreak_NoRow(t *testing.T) {
	openTestDB(t)
	teamID := seedTeam(t, "props")

	streak, err := CurrentStreak("ayla", teamID)
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
}

func TestLongestStreak_MaxOverHistory(t *testing.T) {
	openTestDB(t)
	teamID := seedTeam(t, "props")

	seedStatsRow(t, teamID, 5, 1, 2, 8)
	seedStatsRow(t, teamID, 1, 1, 3, 3)

	longest, err := LongestStreak("ayla", teamID)
	require.NoError(t, err)
	assert.Equal(t, 8, longest)
}

func TestRecordCreation(t *testing.T) {
	openTestDB(t)
	teamID := seedTeam(t, "props")

	stats, err := RecordCreation("ayla", teamID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TasksCreated)
	assert.Equal(t, 0, stats.CurrentStreak, "creating tasks does not advance the streak")
}

func TestGetStatsRange(t *testing.T) {
	openTestDB(t)
	teamID := seedTeam(t, "props")

	seedStatsRow(t, teamID, 3, 1, 1, 1)
	seedStatsRow(t, teamID, 1, 2, 2, 2)
	seedStatsRow(t, teamID, 10, 1, 1, 1)

	now := time.Now()
	rows, err := GetStatsRange("ayla", teamID, now.AddDate(0, 0, -6), now)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Date < rows[1].Date, "range is ordered oldest first")
}
