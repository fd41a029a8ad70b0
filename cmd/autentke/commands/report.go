package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/autentke/autentke/internal/app"
	"github.com/autentke/autentke/internal/export"
)

var exportDir string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Sales reports",
}

var reportSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the sales summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app.App) error {
			h, err := a.Reports.History(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(h.Summary)
			}

			fmt.Print(export.Summary(h))

			return nil
		})
	},
}

var reportExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the sales report as a CSV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app.App) error {
			path, err := a.Exports.ExportFile(cmd.Context(), exportDir, time.Now())
			if err != nil {
				return err
			}

			fmt.Println(path)

			return nil
		})
	},
}

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Archive every sold product",
	Long: `Archive every sold product so it leaves the daily stock view. Archived sales
still count in every report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app.App) error {
			n, err := a.Products.ArchiveSold(cmd.Context())
			if err != nil {
				return err
			}

			success("%d product(s) archived", n)

			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(reportCmd, archiveCmd)
	reportCmd.AddCommand(reportSummaryCmd, reportExportCmd)

	reportExportCmd.Flags().StringVar(&exportDir, "dir", "./exports", "Output directory")
}
