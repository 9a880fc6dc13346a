package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Thaumonaut/cosplans/internal/db"
	"github.com/Thaumonaut/cosplans/internal/parser"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks",
	Long:    "List the team's tasks with their stage, priority, due date, and subtask progress",
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		team, err := resolveTeam(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		all, _ := cmd.Flags().GetBool("all")
		stageName, _ := cmd.Flags().GetString("stage")

		filters := db.TaskFilters{
			TeamID:           team.ID,
			ExcludeCompleted: !all,
		}
		if stageName != "" {
			stage, err := findStageByName(team.ID, stageName)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			filters.StageID = stage.ID
			filters.ExcludeCompleted = false
		}

		tasks, err := db.GetTasks(filters)
		if err != nil {
			fmt.Printf("Error fetching tasks: %v\n", err)
			return
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks found. Use 'cosplans add \"task title\"' to create one.")
			return
		}

		fmt.Printf("%-4s %-14s %-40s %-8s %-9s %s\n", "ID", "STAGE", "TITLE", "PRIORITY", "SUBTASKS", "DUE")
		fmt.Println(strings.Repeat("-", 96))

		for _, task := range tasks {
			stage := ""
			if task.Stage != nil {
				stage = task.Stage.Name
			}
			if len(stage) > 12 {
				stage = stage[:9] + "..."
			}

			title := task.Title
			if len(title) > 38 {
				title = title[:35] + "..."
			}

			subtasks := ""
			if task.TotalSubtasks > 0 {
				subtasks = fmt.Sprintf("%d/%d", task.CompletedSubtasks, task.TotalSubtasks)
			}

			fmt.Printf("%-4d %-14s %-40s %-8s %-9s %s\n",
				task.ID,
				stage,
				title,
				task.PriorityLabel(),
				subtasks,
				parser.FormatDueDate(task.Due))
		}
	},
}

func init() {
	listCmd.Flags().BoolP("all", "a", false, "Include completed tasks")
	listCmd.Flags().StringP("stage", "s", "", "Only show tasks in this stage")
}
