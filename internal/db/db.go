package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Thaumonaut/cosplans/internal/models"
	"github.com/Thaumonaut/cosplans/internal/notify"
)

var DB *gorm.DB

// DatabasePath overrides the default database location when set
// (done by the CLI from config before Initialize is called).
var DatabasePath string

// StreakGraceDays is how many days back GetOrCreateTodayStats scans for a
// day with completions before treating the streak as broken. 1 means only
// yesterday counts.
var StreakGraceDays = 1

// Notifier receives fire-and-forget events for task changes. Delivery
// failures never affect the operation that produced the event.
var Notifier notify.Dispatcher = notify.NewLogDispatcher(nil)

// Initialize sets up the database connection and runs migrations
func Initialize() error {
	dbPath := DatabasePath
	if dbPath == "" {
		var err error
		dbPath, err = defaultDatabasePath()
		if err != nil {
			return fmt.Errorf("failed to resolve database path: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create cosplans directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = db

	if err := runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func defaultDatabasePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".cosplans", "cosplans.db"), nil
}

// runMigrations creates/updates the database schema
func runMigrations() error {
	return DB.AutoMigrate(
		&models.Team{},
		&models.Stage{},
		&models.Task{},
		&models.Subtask{},
		&models.StageDeadline{},
		&models.UserTaskStats{},
	)
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		sqlDB, err := DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
