package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Thaumonaut/cosplans/internal/db"
)

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show your daily completion streak",
	Long:  "Show today's completions, the current streak, the longest streak ever, and the last week of activity.",
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		team, err := resolveTeam(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		user := currentUser(cmd)

		today, err := db.GetTodayStats(user, team.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		longest, err := db.LongestStreak(user, team.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		completedToday := 0
		current := 0
		if today != nil {
			completedToday = today.TasksCompleted
			current = today.CurrentStreak
		}

		fmt.Printf("Completed today: %d\n", completedToday)
		fmt.Printf("🔥 Current streak: %d day(s)\n", current)
		fmt.Printf("🏆 Longest streak: %d day(s)\n", longest)

		now := time.Now()
		week, err := db.GetStatsRange(user, team.ID, now.AddDate(0, 0, -6), now)
		if err != nil || len(week) == 0 {
			return
		}

		fmt.Println("\nLast 7 days:")
		for _, day := range week {
			marker := "·"
			if day.TasksCompleted > 0 {
				marker = "●"
			}
			fmt.Printf("  %s %s  %d completed\n", marker, day.Date, day.TasksCompleted)
		}
	},
}
