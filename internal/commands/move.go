package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Thaumonaut/cosplans/internal/db"
)

var moveCmd = &cobra.Command{
	Use:   "move [task-id] [stage]",
	Short: "Move a task to another stage",
	Long: `Move a task to the named stage of its team's workflow. Moving into a
completion stage records the completion for your daily streak, and milestone
deadlines for stages now behind the task are settled automatically.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		taskID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid task ID '%s'\n", args[0])
			return
		}

		task, err := db.GetTaskByID(uint(taskID))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		stage, err := findStageByName(task.TeamID, args[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		moved, err := db.MoveTaskToStage(task.ID, stage.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("➡️  Moved task #%d to %s: %s\n", moved.ID, stage.Name, moved.Title)
		if moved.Completed() {
			fmt.Println("🎉 Task completed!")
		}
	},
}

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Move a task to the completion stage",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		taskID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid task ID '%s'\n", args[0])
			return
		}

		task, err := db.GetTaskByID(uint(taskID))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		completion, err := db.CompletionStage(task.TeamID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if completion == nil {
			fmt.Println("Error: this team has no completion stage")
			return
		}

		moved, err := db.MoveTaskToStage(task.ID, completion.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("✅ Completed task #%d: %s\n", moved.ID, moved.Title)

		if user := currentUser(cmd); user != "" {
			if streak, err := db.CurrentStreak(user, task.TeamID); err == nil && streak > 0 {
				fmt.Printf("🔥 Streak: %d day(s)\n", streak)
			}
		}
	},
}
