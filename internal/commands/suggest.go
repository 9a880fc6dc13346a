package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Thaumonaut/cosplans/internal/db"
	"github.com/Thaumonaut/cosplans/internal/suggest"
)

var (
	suggestTitleStyle  = lipgloss.NewStyle().Bold(true)
	suggestReasonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	urgencyStyles = map[suggest.UrgencyLevel]lipgloss.Style{
		suggest.UrgencyCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("#E5484D")).Bold(true),
		suggest.UrgencyHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("#F76B15")),
		suggest.UrgencyMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC53D")),
		suggest.UrgencyLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("#46A758")),
	}
)

var suggestCmd = &cobra.Command{
	Use:     "next",
	Aliases: []string{"suggest"},
	Short:   "Suggest what to work on next",
	Long: `Rank open tasks by due-date urgency, priority, blocked state, and
estimated effort, and print the top picks with the reasoning.`,
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		team, err := resolveTeam(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		tasks, err := db.GetTasks(db.TaskFilters{TeamID: team.ID})
		if err != nil {
			fmt.Printf("Error fetching tasks: %v\n", err)
			return
		}

		opts := suggest.DefaultOptions()
		if cfg.MaxSuggestions > 0 {
			opts.MaxSuggestions = cfg.MaxSuggestions
		}
		if n, _ := cmd.Flags().GetInt("count"); n > 0 {
			opts.MaxSuggestions = n
		}

		suggestions := suggest.GetSuggestions(tasks, opts)
		if len(suggestions) == 0 {
			fmt.Println("Nothing to suggest, the board is clear. 🎉")
			return
		}

		for i, s := range suggestions {
			urgency := urgencyStyles[s.Urgency].Render(string(s.Urgency))
			fmt.Printf("%d. %s  (score %.0f, %s)\n",
				i+1,
				suggestTitleStyle.Render(fmt.Sprintf("#%d %s", s.Task.ID, s.Task.Title)),
				s.Score*100,
				urgency)
			fmt.Printf("   %s\n", suggestReasonStyle.Render(s.UrgencyReason+". "+s.Reasoning))
		}
	},
}

func init() {
	suggestCmd.Flags().IntP("count", "c", 0, "Number of suggestions to show")
}
