package db

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Thaumonaut/cosplans/internal/models"
)

// GetTodayStats returns today's stats row for a (user, team) pair, or nil
// when no row exists yet.
func GetTodayStats(userID string, teamID uint) (*models.UserTaskStats, error) {
	return getStatsForDate(DB, userID, teamID, models.StatsDate(time.Now()))
}

func getStatsForDate(tx *gorm.DB, userID string, teamID uint, date string) (*models.UserTaskStats, error) {
	var stats models.UserTaskStats
	err := tx.Where("user_id = ? AND team_id = ? AND date = ?", userID, teamID, date).
		First(&stats).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stats, nil
}

// GetOrCreateTodayStats fetches today's stats row, creating it when absent.
//
// On creation the streak is carried over from the most recent day that had
// at least one completion, looking back at most StreakGraceDays days. With
// the default window of 1 only yesterday counts, so a yesterday with zero
// completions resets the streak to 0.
func GetOrCreateTodayStats(userID string, teamID uint) (*models.UserTaskStats, error) {
	var stats *models.UserTaskStats
	err := DB.Transaction(func(tx *gorm.DB) error {
		var err error
		stats, err = getOrCreateTodayStats(tx, userID, teamID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func getOrCreateTodayStats(tx *gorm.DB, userID string, teamID uint) (*models.UserTaskStats, error) {
	now := time.Now()
	today := models.StatsDate(now)

	stats, err := getStatsForDate(tx, userID, teamID, today)
	if err != nil {
		return nil, err
	}
	if stats != nil {
		return stats, nil
	}

	initialStreak := 0
	longestStreak := 0
	grace := StreakGraceDays
	if grace < 1 {
		grace = 1
	}
	for daysBack := 1; daysBack <= grace; daysBack++ {
		day := models.StatsDate(now.AddDate(0, 0, -daysBack))
		previous, err := getStatsForDate(tx, userID, teamID, day)
		if err != nil {
			return nil, err
		}
		if previous == nil {
			continue
		}
		if previous.LongestStreak > longestStreak {
			longestStreak = previous.LongestStreak
		}
		if previous.TasksCompleted > 0 {
			initialStreak = previous.CurrentStreak
			break
		}
	}
	if initialStreak > longestStreak {
		longestStreak = initialStreak
	}

	row := models.UserTaskStats{
		UserID:        userID,
		TeamID:        teamID,
		Date:          today,
		CurrentStreak: initialStreak,
		LongestStreak: longestStreak,
	}
	if err := tx.Create(&row).Error; err != nil {
		// The unique (user, team, date) index rejects concurrent inserts;
		// whoever lost the race reads the winner's row.
		existing, fetchErr := getStatsForDate(tx, userID, teamID, today)
		if fetchErr == nil && existing != nil {
			return existing, nil
		}
		return nil, err
	}
	return &row, nil
}

// RecordCompletion bumps today's completion counter for a (user, team) pair.
// Only the first completion of the day advances the streak; later ones only
// increment the counter.
func RecordCompletion(userID string, teamID uint) (*models.UserTaskStats, error) {
	var stats *models.UserTaskStats
	err := DB.Transaction(func(tx *gorm.DB) error {
		var err error
		stats, err = getOrCreateTodayStats(tx, userID, teamID)
		if err != nil {
			return err
		}

		firstToday := stats.TasksCompleted == 0
		stats.TasksCompleted++
		if firstToday {
			stats.CurrentStreak++
			if stats.CurrentStreak > stats.LongestStreak {
				stats.LongestStreak = stats.CurrentStreak
			}
		}

		return tx.Save(stats).Error
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// RecordCreation bumps today's created-task counter for a (user, team) pair
func RecordCreation(userID string, teamID uint) (*models.UserTaskStats, error) {
	var stats *models.UserTaskStats
	err := DB.Transaction(func(tx *gorm.DB) error {
		var err error
		stats, err = getOrCreateTodayStats(tx, userID, teamID)
		if err != nil {
			return err
		}
		stats.TasksCreated++
		return tx.Save(stats).Error
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// CurrentStreak returns today's streak value, 0 when no row exists
func CurrentStreak(userID string, teamID uint) (int, error) {
	stats, err := GetTodayStats(userID, teamID)
	if err != nil {
		return 0, err
	}
	if stats == nil {
		return 0, nil
	}
	return stats.CurrentStreak, nil
}

// LongestStreak returns the highest streak ever recorded for the pair
func LongestStreak(userID string, teamID uint) (int, error) {
	var longest int
	err := DB.Model(&models.UserTaskStats{}).
		Where("user_id = ? AND team_id = ?", userID, teamID).
		Select("COALESCE(MAX(longest_streak), 0)").
		Scan(&longest).Error
	if err != nil {
		return 0, err
	}
	return longest, nil
}

// GetStatsRange returns the daily rows between two dates inclusive, oldest first
func GetStatsRange(userID string, teamID uint, from, to time.Time) ([]models.UserTaskStats, error) {
	var rows []models.UserTaskStats
	err := DB.Where("user_id = ? AND team_id = ? AND date >= ? AND date <= ?",
		userID, teamID, models.StatsDate(from), models.StatsDate(to)).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
