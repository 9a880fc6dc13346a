package models

import "time"

// StatsDateFormat is the calendar-day key used for daily stats rows
const StatsDateFormat = "2006-01-02"

// UserTaskStats is the daily completion counter for one (user, team) pair.
// Exactly one row exists per (user, team, date); the composite unique index
// backs the first-completion-of-the-day streak update against races.
type UserTaskStats struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID string `gorm:"not null;uniqueIndex:idx_stats_user_team_date" json:"user_id"`
	TeamID uint   `gorm:"not null;uniqueIndex:idx_stats_user_team_date" json:"team_id"`
	Date   string `gorm:"not null;uniqueIndex:idx_stats_user_team_date" json:"date"` // YYYY-MM-DD

	TasksCompleted int `gorm:"default:0" json:"tasks_completed"`
	TasksCreated   int `gorm:"default:0" json:"tasks_created"`
	CurrentStreak  int `gorm:"default:0" json:"current_streak"`
	LongestStreak  int `gorm:"default:0" json:"longest_streak"`
}

// StatsDate formats a timestamp as a stats row date key
func StatsDate(t time.Time) string {
	return t.Format(StatsDateFormat)
}
