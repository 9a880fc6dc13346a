package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Thaumonaut/cosplans/internal/db"
	"github.com/Thaumonaut/cosplans/internal/parser"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long:  "Add a task to the team's board. It lands in the first non-completion stage unless --stage says otherwise.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		team, err := resolveTeam(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		dueFlag, _ := cmd.Flags().GetString("due")
		dueDate, err := parser.ParseDueDate(dueFlag)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		stageName, _ := cmd.Flags().GetString("stage")
		var stageID uint
		if stageName != "" {
			stage, err := findStageByName(team.ID, stageName)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			stageID = stage.ID
		}

		priority, _ := cmd.Flags().GetString("priority")
		description, _ := cmd.Flags().GetString("note")

		task, err := db.CreateTask(db.CreateTaskRequest{
			Title:       strings.Join(args, " "),
			TeamID:      team.ID,
			StageID:     stageID,
			Priority:    priority,
			AssignedTo:  currentUser(cmd),
			Description: description,
			DueDate:     dueDate,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("✅ Added task #%d: %s\n", task.ID, task.Title)
		if task.Stage != nil {
			fmt.Printf("Stage: %s\n", task.Stage.Name)
		}
		if task.Due != nil {
			fmt.Printf("Due: %s\n", parser.FormatDueDate(task.Due))
		}
	},
}

func init() {
	addCmd.Flags().StringP("priority", "p", "", "Priority: low, medium, high")
	addCmd.Flags().StringP("due", "d", "", "Due date: dd/mm/yyyy, today, tomorrow, or 'N days'")
	addCmd.Flags().StringP("stage", "s", "", "Stage to add the task to")
	addCmd.Flags().StringP("note", "n", "", "Task description")
}
