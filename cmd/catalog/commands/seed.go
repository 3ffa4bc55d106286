package commands

import (
	"fmt"

	"github.com/mytheresa/catalog-api/internal/database"
	"github.com/spf13/cobra"
)

// NewSeedCmd creates the seed command
func NewSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo catalog into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			db, err := database.Open(cmd.Context(), cfg.Database, log)
			if err != nil {
				return err
			}
			defer database.Close(db)

			inserted, err := database.Seed(cmd.Context(), db, log)
			if err != nil {
				return err
			}
			if !inserted {
				fmt.Fprintln(cmd.OutOrStdout(), "catalog already contains data, nothing seeded")
			}
			return nil
		},
	}
}
