package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Thaumonaut/cosplans/internal/tui"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the interactive kanban board",
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		team, err := resolveTeam(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if err := tui.RunBoard(team.ID, team.Name); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	},
}
