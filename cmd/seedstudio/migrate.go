package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dukerupert/seedstudio/internal/schema"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and upgrade stored data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, slots, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		res, err := schema.Migrate(slots, logger)
		if err != nil {
			return err
		}
		if res.From == res.To {
			fmt.Fprintf(cmd.OutOrStdout(), "data is at schema v%d\n", res.To)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "upgraded data from schema v%d to v%d\n", res.From, res.To)
		}
		if res.Report.Changed() {
			fmt.Fprintln(cmd.OutOrStdout(), "corrected:", res.Report.String())
		}
		return nil
	},
}
