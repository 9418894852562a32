// Package store persists acquired match data to Postgres or a local
// SQLite file.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/courtline/matchdata/internal/model"
)

// Store is the persistence interface for acquired match data.
type Store interface {
	// SaveMatches appends rows to the matches table in the given order
	// and returns the number of rows written.
	SaveMatches(ctx context.Context, rows []model.MatchRecord) (int64, error)
	// RecordAcquisition writes the bookkeeping row for one run.
	RecordAcquisition(ctx context.Context, acq model.Acquisition) error

	Migrate(ctx context.Context) error
	Close() error
}

// Options selects and configures a store driver.
type Options struct {
	Driver string // "postgres" or "sqlite"
	DSN    string
	Schema string // postgres only; empty means unqualified
	Table  string // matches table name; default "matches"
}

// Open creates a store for the configured driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	if opts.Table == "" {
		opts.Table = "matches"
	}
	switch opts.Driver {
	case "postgres":
		return NewPostgres(ctx, opts)
	case "sqlite":
		return NewSQLite(opts)
	default:
		return nil, eris.Errorf("store: unknown driver %q", opts.Driver)
	}
}
