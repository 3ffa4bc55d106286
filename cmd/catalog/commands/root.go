package commands

import (
	"fmt"
	"os"

	"github.com/mytheresa/catalog-api/internal/config"
	"github.com/mytheresa/catalog-api/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Version will be set during build
	Version = "dev"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Product catalog REST API",
		Long: `catalog serves a REST API for categories, products and tags backed by
PostgreSQL, and manages its schema and demo data.

Example:
	 catalog migrate up && catalog seed && catalog serve
`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Path to configuration file (default: ./config.yaml)")

	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewMigrateCmd())
	rootCmd.AddCommand(NewSeedCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration named by --config and builds the logger.
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("initialize logger: %w", err)
	}
	return cfg, log.With(zap.String("service", cfg.App.Name)), nil
}
