package main

import (
	"fmt"
	"os"

	"github.com/localnerve/basetrack/internal/database"
	"github.com/spf13/cobra"
)

var flagMigrateSeed bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.close()

		if err := database.AutoMigrate(s.db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		fmt.Fprintln(os.Stderr, "migrations applied")

		if !flagMigrateSeed {
			return nil
		}
		ctx, cancel := commandContext()
		defer cancel()
		return database.SeedCatalog(ctx, s.db, s.catalog)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().BoolVar(&flagMigrateSeed, "seed", true, "Seed the hero catalog")
}
