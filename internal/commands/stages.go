package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Thaumonaut/cosplans/internal/db"
	"github.com/Thaumonaut/cosplans/internal/models"
)

// findStageByName matches a stage by case-insensitive name or numeric ID
func findStageByName(teamID uint, nameOrID string) (*models.Stage, error) {
	if id, err := strconv.ParseUint(nameOrID, 10, 32); err == nil {
		stage, err := db.GetStage(uint(id))
		if err != nil {
			return nil, err
		}
		if stage.TeamID != teamID {
			return nil, &models.InvalidStageError{StageID: stage.ID, TeamID: teamID}
		}
		return stage, nil
	}

	stages, err := db.GetStages(teamID)
	if err != nil {
		return nil, err
	}
	for i := range stages {
		if strings.EqualFold(stages[i].Name, nameOrID) {
			return &stages[i], nil
		}
	}
	return nil, fmt.Errorf("no stage named %q in this team", nameOrID)
}

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "Manage the team's workflow stages",
}

var stagesListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List the team's stages in order",
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		team, err := resolveTeam(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		stages, err := db.GetStages(team.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("%-4s %-6s %-20s %s\n", "ID", "ORDER", "NAME", "COMPLETION")
		fmt.Println(strings.Repeat("-", 44))
		for _, stage := range stages {
			completion := ""
			if stage.IsCompletionStage {
				completion = "✓"
			}
			fmt.Printf("%-4d %-6d %-20s %s\n", stage.ID, stage.DisplayOrder, stage.Name, completion)
		}
	},
}

var stagesAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a stage to the workflow",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		team, err := resolveTeam(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		stages, err := db.GetStages(team.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		order := 0
		for _, s := range stages {
			if s.DisplayOrder >= order {
				order = s.DisplayOrder + 1
			}
		}

		completion, _ := cmd.Flags().GetBool("completion")
		stage, err := db.CreateStage(team.ID, args[0], order, completion)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("✅ Added stage #%d: %s (order %d)\n", stage.ID, stage.Name, stage.DisplayOrder)
	},
}

var stagesRenameCmd = &cobra.Command{
	Use:   "rename [stage] [new-name]",
	Short: "Rename a stage",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		team, err := resolveTeam(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		stage, err := findStageByName(team.ID, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		renamed, err := db.RenameStage(stage.ID, args[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("✏️  Renamed stage #%d to %s\n", renamed.ID, renamed.Name)
	},
}

var stagesRemoveCmd = &cobra.Command{
	Use:   "rm [stage]",
	Short: "Delete a stage (fails while tasks still reference it)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		team, err := resolveTeam(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		stage, err := findStageByName(team.ID, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if err := db.DeleteStage(stage.ID); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("🗑  Deleted stage %s\n", stage.Name)
	},
}

var stagesReorderCmd = &cobra.Command{
	Use:   "reorder [stage] [stage] ...",
	Short: "Reorder stages to match the given sequence",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		team, err := resolveTeam(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		ids := make([]uint, 0, len(args))
		for _, arg := range args {
			stage, err := findStageByName(team.ID, arg)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			ids = append(ids, stage.ID)
		}

		stages, err := db.ReorderStages(team.ID, ids)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		names := make([]string, len(stages))
		for i, s := range stages {
			names[i] = s.Name
		}
		fmt.Printf("🔀 New order: %s\n", strings.Join(names, " → "))
	},
}

var stagesDefaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Create the default Todo / In Progress / Done workflow if the team has no stages",
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		team, err := resolveTeam(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		stages, err := db.EnsureDefaultStages(team.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("Team %s has %d stage(s)\n", team.Name, len(stages))
	},
}

func init() {
	stagesAddCmd.Flags().Bool("completion", false, "Flag this stage as the completion stage")

	stagesCmd.AddCommand(stagesListCmd)
	stagesCmd.AddCommand(stagesAddCmd)
	stagesCmd.AddCommand(stagesRenameCmd)
	stagesCmd.AddCommand(stagesRemoveCmd)
	stagesCmd.AddCommand(stagesReorderCmd)
	stagesCmd.AddCommand(stagesDefaultsCmd)
}
