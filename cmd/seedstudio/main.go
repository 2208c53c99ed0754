// Command seedstudio runs the Seed Studio garden server and its maintenance
// commands.
package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dukerupert/seedstudio/internal/config"
	"github.com/dukerupert/seedstudio/internal/database"
	"github.com/dukerupert/seedstudio/internal/logging"
	"github.com/dukerupert/seedstudio/internal/store"
)

var (
	// flagConfig is set by the --config flag.
	flagConfig string

	cfg    *config.Config
	logger *slog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "seedstudio",
	Short:         "Seed Studio keeps track of your seeds, plantings and garden chores",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return err
		}
		logger = logging.Setup(cfg.LogLevel, cfg.LogFormat)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: ./config.yaml when present)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(vapidCmd)
}

// openStore opens the database and the slot store on top of it.
func openStore() (*sql.DB, *store.SlotStore, error) {
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return db, store.NewSlotStore(db, logger), nil
}
