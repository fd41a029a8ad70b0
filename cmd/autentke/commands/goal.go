package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/autentke/autentke/internal/app"
	"github.com/autentke/autentke/internal/goal"
	"github.com/autentke/autentke/internal/pricing"
)

var goalMonth string

var goalCmd = &cobra.Command{
	Use:     "goal",
	Aliases: []string{"goals"},
	Short:   "Manage monthly revenue goals",
}

var goalSetCmd = &cobra.Command{
	Use:   "set <target>",
	Short: "Set the revenue goal of a month",
	Long: `Set the revenue goal of a month, replacing any previous goal.

Examples:
  autentke goal set 8.000,00                   # Current month
  autentke goal set 6500 --month 2026-12`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := pricing.ParseAmount(args[0])
		if err != nil {
			return fmt.Errorf("invalid target: %w", err)
		}

		return withApp(cmd.Context(), func(a *app.App) error {
			g, err := a.Goals.Set(cmd.Context(), goalMonth, target)
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(g)
			}

			success("goal for %s set to %s", g.Month, pricing.FormatBRL(g.Target))

			return nil
		})
	},
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every recorded goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app.App) error {
			gs, err := a.Goals.List(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(gs)
			}

			rows := make([][]string, 0, len(gs))
			for _, g := range gs {
				rows = append(rows, goalRow(g))
			}

			printTable(goalHeaders, rows, 2)

			return nil
		})
	},
}

var goalGetCmd = &cobra.Command{
	Use:   "get [month]",
	Short: "Show the goal of a month",
	Long: `Show the goal of a month given as YYYY-MM. Without a month the current one is
shown.

Examples:
  autentke goal get
  autentke goal get 2026-12`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var month string
		if len(args) == 1 {
			month = args[0]
		}

		return withApp(cmd.Context(), func(a *app.App) error {
			g, err := a.Goals.GetByMonth(cmd.Context(), month)
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(g)
			}

			printTable(goalHeaders, [][]string{goalRow(g)}, 2)

			return nil
		})
	},
}

var goalDeleteCmd = &cobra.Command{
	Use:   "delete <goal-id>",
	Short: "Delete a goal",
	Long: `Delete a goal. The month falls back to the default goal.

Examples:
  autentke goal delete 6f1c...`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid goal id: %w", err)
		}

		return withApp(cmd.Context(), func(a *app.App) error {
			if err := a.Goals.Delete(cmd.Context(), id); err != nil {
				return err
			}

			success("goal %s deleted", id)

			return nil
		})
	},
}

var goalHeaders = []string{"ID", "MONTH", "TARGET"}

func goalRow(g *goal.Goal) []string {
	return []string{g.ID.String(), g.Month, pricing.FormatBRL(g.Target)}
}

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalSetCmd, goalListCmd, goalGetCmd, goalDeleteCmd)

	goalSetCmd.Flags().StringVar(&goalMonth, "month", "", "Month as YYYY-MM (default: current month)")
}
