package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"manufacturing-backend/internal/db"
	"manufacturing-backend/internal/seed"
	"manufacturing-backend/internal/store"
)

func seedCommand(a *app) *cobra.Command {
	var (
		file  string
		reset bool
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demonstration data from a YAML fixture file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.seed(cmd.Context(), file, reset)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "./config/fixtures.yaml", "Fixture file")
	cmd.Flags().BoolVar(&reset, "reset", false, "Delete all existing rows first")
	return cmd
}

func (a *app) seed(ctx context.Context, file string, reset bool) error {
	fx, err := seed.ParseFile(file)
	if err != nil {
		a.log.Error("Failed to read fixtures", zap.String("file", file), zap.Error(err))
		return err
	}

	gormDB, err := a.openDB()
	if err != nil {
		return err
	}
	defer db.Close(gormDB)

	loc, err := time.LoadLocation(a.cfg.App.Timezone)
	if err != nil {
		return err
	}
	rep, err := seed.NewLoader(store.NewGormStore(gormDB, store.Options{Location: loc}), a.log).Load(ctx, fx, reset)
	if err != nil {
		a.log.Error("Seeding failed", zap.String("file", file), zap.Error(err))
		return err
	}

	fmt.Printf("Database populated: %d contacts, %d wires, %d processes, %d recipes, %d jobs, %d setups, %d commands\n",
		rep.Contacts, rep.Wires, rep.Processes, rep.Recipes, rep.Jobs, rep.Setups, rep.Commands)
	return nil
}
