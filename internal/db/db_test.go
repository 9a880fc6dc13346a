package db

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB swaps the package database for a fresh in-memory one
func openTestDB(t *testing.T) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	previous := DB
	DB = gdb
	require.NoError(t, runMigrations())

	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
		DB = previous
	})
}

// seedTeam creates a team with the default three-stage workflow
func seedTeam(t *testing.T, name string) uint {
	t.Helper()

	team, err := FindOrCreateTeam(name)
	require.NoError(t, err)
	return team.ID
}
