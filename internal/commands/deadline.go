package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Thaumonaut/cosplans/internal/db"
	"github.com/Thaumonaut/cosplans/internal/models"
	"github.com/Thaumonaut/cosplans/internal/parser"
)

var deadlineCmd = &cobra.Command{
	Use:   "deadline",
	Short: "Manage per-stage milestone deadlines",
	Long: `Milestone deadlines attach a target date to a (task, stage) pair:
"reach In Progress by Friday". When the task advances past a stage, pending
milestones for that stage are settled automatically.`,
}

var deadlineSetCmd = &cobra.Command{
	Use:   "set [task-id] [stage] [date]",
	Short: "Set a milestone deadline for a task's stage",
	Args:  cobra.ExactArgs(3),
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

		due, err := parser.ParseDueDate(args[2])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if due == nil {
			fmt.Println("Error: a deadline date is required")
			return
		}

		deadline, err := db.CreateDeadline(task.ID, stage.ID, *due)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("⏱  Milestone set: reach %s by %s (task #%d)\n",
			stage.Name, deadline.Deadline.Format("02/01/2006"), task.ID)
	},
}

var deadlineListCmd = &cobra.Command{
	Use:     "ls [task-id]",
	Aliases: []string{"list"},
	Short:   "List a task's milestone deadlines with urgency",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		taskID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid task ID '%s'\n", args[0])
			return
		}

		deadlines, err := db.GetDeadlinesForTask(uint(taskID))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if len(deadlines) == 0 {
			fmt.Println("No milestone deadlines for this task.")
			return
		}

		now := time.Now()
		fmt.Printf("%-4s %-14s %-12s %-12s %s\n", "ID", "STAGE", "DEADLINE", "URGENCY", "STATUS")
		fmt.Println(strings.Repeat("-", 58))
		for i := range deadlines {
			d := &deadlines[i]

			stage := ""
			if d.Stage != nil {
				stage = d.Stage.Name
			}

			urgency, days := db.ClassifyDeadline(d, now)
			status := "pending"
			if d.CompletedAt != nil {
				status = "done " + d.CompletedAt.Format("02/01")
			}

			fmt.Printf("%-4d %-14s %-12s %-12s %s\n",
				d.ID,
				stage,
				d.Deadline.Format("02/01/2006"),
				formatUrgency(urgency, days),
				status)
		}
	},
}

var deadlineDoneCmd = &cobra.Command{
	Use:   "done [task-id] [stage]",
	Short: "Manually mark a milestone deadline as met",
	Args:  cobra.ExactArgs(2),
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

		deadline, err := db.CompleteDeadline(task.ID, stage.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if deadline == nil {
			fmt.Println("No milestone deadline exists for that stage.")
			return
		}

		fmt.Printf("✅ Milestone met: %s (task #%d)\n", stage.Name, task.ID)
	},
}

var deadlineRemoveCmd = &cobra.Command{
	Use:   "rm [deadline-id]",
	Short: "Delete a milestone deadline",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		deadlineID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid deadline ID '%s'\n", args[0])
			return
		}

		if err := db.DeleteDeadline(uint(deadlineID)); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("🗑  Deleted deadline #%d\n", deadlineID)
	},
}

func formatUrgency(urgency models.DeadlineUrgency, days int) string {
	switch urgency {
	case models.UrgencyOverdue:
		return fmt.Sprintf("overdue %dd", -days)
	case models.UrgencyUrgent:
		return "urgent"
	case models.UrgencyApproaching:
		return fmt.Sprintf("in %dd", days)
	default:
		return "safe"
	}
}

func init() {
	deadlineCmd.AddCommand(deadlineSetCmd)
	deadlineCmd.AddCommand(deadlineListCmd)
	deadlineCmd.AddCommand(deadlineDoneCmd)
	deadlineCmd.AddCommand(deadlineRemoveCmd)
}
