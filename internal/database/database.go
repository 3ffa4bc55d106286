// Package database opens the catalog's PostgreSQL connection pool and owns its
// schema migrations and demo seed data.
package database

import (
	"context"
	"fmt"

	"github.com/mytheresa/catalog-api/internal/config"
	"github.com/mytheresa/catalog-api/internal/logger"
	"github.com/mytheresa/catalog-api/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to PostgreSQL, applies pool limits from cfg and verifies the
// connection. The caller owns the returned handle and must Close it.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	return open(ctx, postgres.Open(cfg.DSN()), cfg, log)
}

func open(ctx context.Context, dialector gorm.Dialector, cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:               logger.NewGormLogger(log, logger.GormLevel(cfg.LogLevel), cfg.SlowThreshold),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := models.SetupJoinTables(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	log.Info("database connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("dbname", cfg.DBName),
	)
	return db, nil
}

// Ping checks that the pool can still reach the database.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}
