package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/autentke/autentke/internal/database"
)

var steps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
	Long: `Manage the database schema.

Subcommands:
  up       - Apply pending migrations
  down     - Rollback migrations
  version  - Show the applied version`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return database.Migrate(cfg.ConnectionString())
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Rollback migrations",
	Long: `Rollback applied migrations.

Examples:
  autentke migrate down            # Rollback the last migration
  autentke migrate down --steps 2  # Rollback the last two migrations`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return database.Rollback(cfg.ConnectionString(), steps)
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the applied schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		version, dirty, err := database.MigrationVersion(cfg.ConnectionString())
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(map[string]any{"version": version, "dirty": dirty})
		}

		state := "clean"
		if dirty {
			state = "dirty"
		}

		fmt.Printf("version %d (%s)\n", version, state)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)

	migrateDownCmd.Flags().IntVar(&steps, "steps", 1, "Number of migrations to rollback")
}
