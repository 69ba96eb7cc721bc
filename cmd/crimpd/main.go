package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"manufacturing-backend/config"
	"manufacturing-backend/internal/db"
	"manufacturing-backend/internal/pkg/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "1.0"

// app carries what every subcommand needs once the config is loaded.
type app struct {
	configPath string

	cfg *config.Config
	log *zap.Logger
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stderr))
}

// execute runs the command line and reports any error on stderr, since the
// root command silences cobra's own printing.
func execute(args []string, stderr io.Writer) int {
	cmd := rootCommand()
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "crimpd: %v\n", err)
		return 1
	}
	return 0
}

func rootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "crimpd",
		Short:         "Crimping machine recipe server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	defaultPath := os.Getenv("CONFIG_PATH")
	if defaultPath == "" {
		defaultPath = "./config/config.yaml" // Default path for local development
	}
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", defaultPath, "Path to the YAML config file (env CONFIG_PATH)")

	rootCmd.AddCommand(
		serveCommand(a),
		seedCommand(a),
		migrateCommand(a),
	)
	return rootCmd
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration from %s: %v\n", a.configPath, err)
		return err
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		return err
	}
	log.Info("Configuration loaded", zap.String("path", a.configPath))

	a.cfg = cfg
	a.log = log
	return nil
}

// openDB connects to the configured database and logs failures before
// returning them.
func (a *app) openDB() (*gorm.DB, error) {
	gormDB, err := db.Init(&a.cfg.Database, a.log)
	if err != nil {
		a.log.Error("Failed to initialize database", zap.Error(err))
		return nil, err
	}
	return gormDB, nil
}
