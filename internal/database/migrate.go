package database

import (
	"embed"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/iliyamo/movienight/internal/config"
)

//go:embed migrations/mysql/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// Migrate applies all pending embedded migrations for the configured driver.
// It opens its own connection because migrate closes it when done.
func Migrate(cfg config.Config) error {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		return RunMigrations(SQLite, "sqlite://"+cfg.DBPath)
	default:
		c := mysqlConfig(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		c.MultiStatements = true
		return RunMigrations(MySQL, "mysql://"+c.FormatDSN())
	}
}

// RunMigrations applies the embedded migrations of dialect d to databaseURL.
func RunMigrations(d Dialect, databaseURL string) error {
	src, err := iofs.New(migrationsFS, "migrations/"+string(d))
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("migration init: %w", err)
	}
	defer m.Close()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up: %w", err)
	}

	version, dirty, _ := m.Version()
	log.Printf("migrations applied (driver=%s version=%d dirty=%v)", d, version, dirty)
	return nil
}
