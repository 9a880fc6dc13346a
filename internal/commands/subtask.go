package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Thaumonaut/cosplans/internal/db"
)

var subtaskCmd = &cobra.Command{
	Use:     "subtask",
	Aliases: []string{"sub"},
	Short:   "Manage a task's checklist",
}

var subtaskAddCmd = &cobra.Command{
	Use:   "add [task-id] [title]",
	Short: "Add a checklist item to a task",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		taskID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid task ID '%s'\n", args[0])
			return
		}

		subtask, err := db.AddSubtask(uint(taskID), strings.Join(args[1:], " "))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("✅ Added subtask #%d: %s\n", subtask.ID, subtask.Title)
	},
}

var subtaskListCmd = &cobra.Command{
	Use:     "ls [task-id]",
	Aliases: []string{"list"},
	Short:   "List a task's checklist",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		taskID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid task ID '%s'\n", args[0])
			return
		}

		subtasks, err := db.GetSubtasks(uint(taskID))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if len(subtasks) == 0 {
			fmt.Println("No subtasks for this task.")
			return
		}

		for _, s := range subtasks {
			check := "[ ]"
			if s.Completed {
				check = "[x]"
			}
			fmt.Printf("%s #%d %s\n", check, s.ID, s.Title)
		}
	},
}

var subtaskToggleCmd = &cobra.Command{
	Use:   "done [subtask-id]",
	Short: "Toggle a checklist item",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		subtaskID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid subtask ID '%s'\n", args[0])
			return
		}

		subtask, err := db.ToggleSubtask(uint(subtaskID))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if subtask.Completed {
			fmt.Printf("✅ Checked off: %s\n", subtask.Title)
		} else {
			fmt.Printf("↩️  Unchecked: %s\n", subtask.Title)
		}
	},
}

var subtaskRemoveCmd = &cobra.Command{
	Use:   "rm [subtask-id]",
	Short: "Delete a checklist item",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		subtaskID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid subtask ID '%s'\n", args[0])
			return
		}

		if err := db.DeleteSubtask(uint(subtaskID)); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("🗑  Deleted subtask #%d\n", subtaskID)
	},
}

func init() {
	subtaskCmd.AddCommand(subtaskAddCmd)
	subtaskCmd.AddCommand(subtaskListCmd)
	subtaskCmd.AddCommand(subtaskToggleCmd)
	subtaskCmd.AddCommand(subtaskRemoveCmd)
}
