package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrator applies the embedded SQL migrations.
type Migrator struct {
	migrate *migrate.Migrate
	db      *sql.DB
	logger  *zap.Logger
}

// NewMigrator opens its own lib/pq connection to dsn.
func NewMigrator(dsn string, log *zap.Logger) (*Migrator, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	m, err := newMigrate(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Migrator{migrate: m, db: db, logger: log}, nil
}

func newMigrate(db *sql.DB) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// Up runs all pending migrations
func (m *Migrator) Up() error {
	m.logger.Info("Running migrations up")

	err := m.migrate.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("No migrations to apply")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration up failed: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	m.logger.Info("Migrations completed",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}

// Down rolls back all migrations
func (m *Migrator) Down() error {
	m.logger.Info("Running migrations down")

	err := m.migrate.Down()
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("No migrations to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration down failed: %w", err)
	}

	m.logger.Info("All migrations rolled back")
	return nil
}

// Version returns the current migration version; 0 when none was applied.
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

// Close releases the migrator and its connection.
func (m *Migrator) Close() error {
	sourceErr, dbErr := m.migrate.Close()
	if sourceErr != nil {
		return fmt.Errorf("failed to close source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("failed to close database: %w", dbErr)
	}
	return nil
}
