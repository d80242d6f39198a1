package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"

	"github.com/jmoiron/sqlx"
	"github.com/npezzotti/go-chatstore/internal/calendar"
	"github.com/npezzotti/go-chatstore/internal/config"
	"github.com/npezzotti/go-chatstore/internal/stats"
)

// ChatStore owns every row of the chat schema. It holds one long-lived
// handle to the backing engine, acquired by Open and released by Close.
type ChatStore struct {
	db       *sqlx.DB
	dialect  dialect
	location string
	log      *log.Logger
	stats    stats.StatsProvider
	calendar calendar.Calendar

	closeOnce sync.Once
	closeErr  error
	closed    atomic.Bool
}

// Open connects to the store at cfg.Location, applies the engine settings,
// brings the schema up to date and verifies its version.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *log.Logger, statsProvider stats.StatsProvider) (*ChatStore, error) {
	if cfg.Location == "" {
		return nil, errors.New("database location cannot be empty")
	}

	cal, err := calendar.New(cfg.TimeZone)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	if statsProvider == nil {
		statsProvider = stats.Discard
	}

	d := dialectFor(cfg.Location)
	db, err := sqlx.ConnectContext(ctx, d.driverName(), d.dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	d.configurePool(db)

	s := &ChatStore{
		db:       db,
		dialect:  d,
		location: cfg.Location,
		log:      logger,
		stats:    statsProvider,
		calendar: cal,
	}

	if err := s.Initialize(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if err := s.checkSchemaVersion(ctx); err != nil {
		db.Close()
		return nil, err
	}

	s.registerMetrics()

	return s, nil
}

// Close releases the connection. Calling it more than once is a no-op.
func (s *ChatStore) Close() error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		s.closeErr = s.db.Close()
	})
	return s.closeErr
}

func (s *ChatStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return s.fail("ping", err)
	}
	return nil
}

func (s *ChatStore) registerMetrics() {
	for _, name := range metricNames {
		s.stats.RegisterMetric(name)
	}
}

// check passes nil and not-found errors through with op context and hands
// everything else to fail.
func (s *ChatStore) check(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.fail(op, err)
}

// fail logs an engine error for operators and returns it wrapped with op.
func (s *ChatStore) fail(op string, err error) error {
	if s.closed.Load() {
		err = ErrClosed
	}
	if isUniqueViolation(err) {
		err = fmt.Errorf("%w: %w", ErrConflict, err)
	}
	s.log.Printf("[%s] sql error: %v", op, err)
	s.stats.Incr(metricStoreErrors)
	return fmt.Errorf("%s: %w", op, err)
}

// inTx runs fn inside a transaction, rolling back when fn returns an error.
func (s *ChatStore) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %w (original: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
