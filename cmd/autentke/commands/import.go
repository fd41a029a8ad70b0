package commands

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/autentke/autentke/internal/app"
)

var importCmd = &cobra.Command{
	Use:   "import <collection-id> <file>",
	Short: "Import a supplier packing list into a collection",
	Long: `Import a supplier packing list (CSV, comma or semicolon separated, any common
encoding) and register its products in a collection.

Either every product of the file is created or none is.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid collection id: %w", err)
		}

		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()

		return withApp(cmd.Context(), func(a *app.App) error {
			res, err := a.Imports.Import(cmd.Context(), id, f)
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(res)
			}

			success("imported %d product(s) from %d line(s)", res.Products, res.Lines)

			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
