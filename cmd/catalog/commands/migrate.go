package commands

import (
	"fmt"

	"github.com/mytheresa/catalog-api/internal/database"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewMigrateCmd creates the migrate command
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|version]",
		Short:     "Apply or roll back the SQL schema migrations",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "down", "version"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			m, err := database.NewMigrator(cfg.Database.DSN(), log)
			if err != nil {
				return err
			}
			defer func() {
				if err := m.Close(); err != nil {
					log.Warn("close migrator", zap.Error(err))
				}
			}()

			switch args[0] {
			case "up":
				return m.Up()
			case "down":
				return m.Down()
			case "version":
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
				return nil
			default:
				return fmt.Errorf("unknown migrate command %q", args[0])
			}
		},
	}
}
