package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Thaumonaut/cosplans/internal/config"
	"github.com/Thaumonaut/cosplans/internal/db"
	"github.com/Thaumonaut/cosplans/internal/models"
	"github.com/Thaumonaut/cosplans/internal/notify"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "cosplans",
	Short: "A kanban-style planner for hobby projects",
	Long: `cosplans is a command-line planner for hobby projects: customizable
kanban stages per team, per-stage milestone deadlines, a daily completion
streak, and suggestions for what to work on next.`,
}

// initDB loads config and initializes the database, panicking on failure
func initDB() {
	loaded, err := config.Load()
	if err != nil {
		panic(err)
	}
	cfg = loaded

	db.DatabasePath = cfg.DatabasePath
	db.StreakGraceDays = cfg.StreakGraceDays
	if cfg.WebhookURL != "" {
		db.Notifier = notify.NewWebhookDispatcher(cfg.WebhookURL, nil)
	}

	if err := db.Initialize(); err != nil {
		panic(err)
	}
}

// resolveTeam returns the team named by --team (or the configured default),
// creating it with default stages on first use.
func resolveTeam(cmd *cobra.Command) (*models.Team, error) {
	name, _ := cmd.Flags().GetString("team")
	if name == "" {
		name = cfg.DefaultTeam
	}
	return db.FindOrCreateTeam(name)
}

// currentUser returns the user recorded against streaks and assignments
func currentUser(cmd *cobra.Command) string {
	user, _ := cmd.Flags().GetString("user")
	if user == "" {
		user = cfg.User
	}
	return user
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cosplans %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.PersistentFlags().String("team", "", "Team to operate on (defaults to configured team)")
	rootCmd.PersistentFlags().String("user", "", "User recorded for streaks and assignments")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(stagesCmd)
	rootCmd.AddCommand(deadlineCmd)
	rootCmd.AddCommand(subtaskCmd)
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(versionCmd)
}
