package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// SchemaVersion is the metadata version this package reads and writes.
const SchemaVersion = "1"

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// Initialize creates the tables and indexes if absent and seeds the roles
// and the schema version row. It is safe to call on every startup.
func (s *ChatStore) Initialize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m, err := s.newMigrate()
	if err != nil {
		return s.fail("initialize schema", err)
	}
	if s.dialect == dialectPostgres {
		// Closing the SQLite migrator would close the store's own handle.
		defer m.Close()
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return s.fail("initialize schema", err)
	}

	return nil
}

// newMigrate builds a migrator for the store's dialect. SQLite migrates
// over the store's own connection so that in-memory databases see the
// schema; PostgreSQL gets a dedicated connection that is closed afterwards.
func (s *ChatStore) newMigrate() (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations/"+s.dialect.migrationsDir())
	if err != nil {
		return nil, fmt.Errorf("open migrations: %w", err)
	}

	if s.dialect == dialectPostgres {
		return migrate.NewWithSourceInstance("iofs", src, s.location)
	}

	driver, err := sqlite3.WithInstance(s.db.DB, &sqlite3.Config{})
	if err != nil {
		return nil, fmt.Errorf("migration driver: %w", err)
	}

	return migrate.NewWithInstance("iofs", src, "sqlite3", driver)
}

func (d dialect) migrationsDir() string {
	if d == dialectPostgres {
		return "postgres"
	}
	return "sqlite"
}

// SchemaVersion returns the version recorded in the metadata table, or
// ErrNotFound when the row is missing.
func (s *ChatStore) SchemaVersion(ctx context.Context) (string, error) {
	var version sql.NullString
	err := s.db.GetContext(ctx, &version, schemaVersionQuery)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !version.Valid) {
		return "", s.check("get schema version", ErrNotFound)
	}
	if err != nil {
		return "", s.fail("get schema version", err)
	}

	return version.String, nil
}

func (s *ChatStore) checkSchemaVersion(ctx context.Context) error {
	version, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	if version != SchemaVersion {
		s.log.Printf("incompatible schema version %q, want %q", version, SchemaVersion)
		return fmt.Errorf("%w: have %q, want %q", ErrIncompatibleSchema, version, SchemaVersion)
	}

	return nil
}
