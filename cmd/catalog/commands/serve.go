package commands

import (
	"os/signal"
	"syscall"

	"github.com/mytheresa/catalog-api/app/server"
	"github.com/mytheresa/catalog-api/internal/database"
	"github.com/mytheresa/catalog-api/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if autoMigrate, _ := cmd.Flags().GetBool("auto-migrate"); autoMigrate {
				cfg.App.AutoMigrate = true
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			db, err := database.Open(ctx, cfg.Database, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := database.Close(db); err != nil {
					log.Warn("close database", zap.Error(err))
				}
			}()

			if cfg.App.AutoMigrate {
				log.Info("running gorm auto-migration")
				if err := models.AutoMigrate(db); err != nil {
					return err
				}
			}

			log.Info("starting catalog api",
				zap.String("version", Version),
				zap.String("env", cfg.App.Env),
			)
			return server.New(cfg, db, log).Run(ctx)
		},
	}

	serveCmd.Flags().Bool("auto-migrate", false, "Create or update the schema with gorm before serving")
	return serveCmd
}
