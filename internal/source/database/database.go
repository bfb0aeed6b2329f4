// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package database implements a source streaming the rows returned by a SQL query.
// The column names of the result set become the record fields.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	_ "github.com/ClickHouse/clickhouse-go/v2" // registers the "clickhouse" driver
	"github.com/caarlos0/env/v11"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver

	"github.com/mia-platform/flowdebug/internal/logger"
	"github.com/mia-platform/flowdebug/internal/source"
	"github.com/mia-platform/flowdebug/internal/tuple"
)

const (
	loggerName = "flowdebug:source:database"

	driverEnvName = "FLOWDEBUG_SQL_DRIVER"
	dsnEnvName    = "FLOWDEBUG_SQL_DSN"
	queryEnvName  = "FLOWDEBUG_SQL_QUERY"
)

var (
	// ErrMissingEnvVariable reports missing mandatory environment variables.
	ErrMissingEnvVariable = errors.New("missing environment variable")
	// ErrInvalidEnvVariable reports malformed environment variable values.
	ErrInvalidEnvVariable = errors.New("invalid environment value")
	// ErrDatabaseSource wraps errors emitted by the database source.
	ErrDatabaseSource = errors.New("database source")

	// supportedDrivers maps the accepted driver names to a description.
	supportedDrivers = map[string]string{
		"sqlite":     "SQLite database file",
		"pgx":        "PostgreSQL server",
		"clickhouse": "ClickHouse server",
	}
)

var (
	_ source.Source         = &Source{}
	_ source.ClosableSource = &Source{}
)

type config struct {
	Driver string `env:"FLOWDEBUG_SQL_DRIVER" envDefault:"sqlite"`
	DSN    string `env:"FLOWDEBUG_SQL_DSN"`
	Query  string `env:"FLOWDEBUG_SQL_QUERY"`
}

func (c config) validate() error {
	missingEnvs := make([]string, 0)
	if c.DSN == "" {
		missingEnvs = append(missingEnvs, dsnEnvName)
	}
	if c.Query == "" {
		missingEnvs = append(missingEnvs, queryEnvName)
	}
	if len(missingEnvs) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingEnvVariable, strings.Join(missingEnvs, ", "))
	}

	if _, ok := supportedDrivers[c.Driver]; !ok {
		return fmt.Errorf("%w: %s must be one of %s", ErrInvalidEnvVariable, driverEnvName, strings.Join(SupportedDrivers(), ", "))
	}

	return nil
}

// SupportedDrivers returns the sorted list of accepted driver names.
func SupportedDrivers() []string {
	return slices.Sorted(maps.Keys(supportedDrivers))
}

// Source runs a query and streams its rows.
type Source struct {
	db    *sql.DB
	query string
	args  []any

	closeOnce sync.Once
}

// NewSource reads the driver, dsn and query from the environment and opens the database.
func NewSource() (*Source, error) {
	cfg, err := env.ParseAs[config]()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseSource, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseSource, err)
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrDatabaseSource, cfg.Driver, err)
	}
	db.SetMaxOpenConns(2)
	db.SetConnMaxLifetime(10 * time.Minute)

	return NewSourceWithDB(db, cfg.Query), nil
}

// NewSourceWithDB returns a Source running query, with args, against db. The source owns db
// and closes it on Close.
func NewSourceWithDB(db *sql.DB, query string, args ...any) *Source {
	return &Source{db: db, query: query, args: args}
}

// StartStream runs the query and sends one entry per row.
func (s *Source) StartStream(ctx context.Context, results chan<- *tuple.Entry) error {
	log := logger.Named(ctx, loggerName)

	rows, err := s.db.QueryContext(ctx, s.query, s.args...)
	if err != nil {
		return fmt.Errorf("%w: query: %w", ErrDatabaseSource, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("%w: columns: %w", ErrDatabaseSource, err)
	}
	fields := tuple.Fields(columns)
	log.Debug("query started", "fields", fields.Print())

	count := 0
	for rows.Next() {
		values := make(tuple.Tuple, len(columns))
		pointers := make([]any, len(columns))
		for idx := range values {
			pointers[idx] = &values[idx]
		}

		if err := rows.Scan(pointers...); err != nil {
			return fmt.Errorf("%w: scan: %w", ErrDatabaseSource, err)
		}
		normalize(values)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case results <- &tuple.Entry{Fields: fields, Tuple: values}:
			count++
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: rows: %w", ErrDatabaseSource, err)
	}

	log.Debug("query exhausted", "rows", count)
	return nil
}

// normalize copies driver owned byte slices into strings.
func normalize(values tuple.Tuple) {
	for idx, value := range values {
		if raw, ok := value.([]byte); ok {
			values[idx] = string(raw)
		}
	}
}

// Close closes the database handle.
func (s *Source) Close(_ context.Context, _ time.Duration) error {
	var err error
	s.closeOnce.Do(func() {
		err = s.db.Close()
	})
	return err
}
