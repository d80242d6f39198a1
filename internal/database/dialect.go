package database

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/npezzotti/go-chatstore/internal/config"
)

type dialect string

const (
	dialectSQLite   dialect = "sqlite3"
	dialectPostgres dialect = "postgres"
)

func dialectFor(location string) dialect {
	if strings.HasPrefix(location, "postgres://") || strings.HasPrefix(location, "postgresql://") {
		return dialectPostgres
	}
	return dialectSQLite
}

func (d dialect) driverName() string {
	return string(d)
}

// dsn builds the connection string. SQLite pragmas go into the DSN so that
// every connection the pool opens gets them, not just the first one.
func (d dialect) dsn(cfg config.DatabaseConfig) string {
	if d == dialectPostgres {
		return cfg.Location
	}

	params := url.Values{}
	params.Set("_foreign_keys", "on")
	params.Set("_journal_mode", "WAL")
	params.Set("_synchronous", "NORMAL")
	params.Set("_txlock", "immediate")
	params.Set("_busy_timeout", fmt.Sprint(cfg.BusyTimeout.Milliseconds()))

	location := cfg.Location
	if !strings.HasPrefix(location, "file:") {
		location = "file:" + location
	}

	sep := "?"
	if strings.Contains(location, "?") {
		sep = "&"
	}

	return location + sep + params.Encode()
}

// configurePool keeps SQLite on a single connection: the store is one
// logical session and ":memory:" databases exist per connection.
func (d dialect) configurePool(db *sqlx.DB) {
	if d == dialectSQLite {
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	}
}
