package main

import (
	"github.com/spf13/cobra"

	"manufacturing-backend/internal/db"
)

func migrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gormDB, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close(gormDB)

			// Init already migrated when auto_migrate is on.
			if a.cfg.Database.ShouldAutoMigrate() {
				return nil
			}
			return db.Migrate(gormDB, a.log)
		},
	}
}
