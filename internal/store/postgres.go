package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/courtline/matchdata/internal/db"
	"github.com/courtline/matchdata/internal/model"
)

// PostgresStore implements Store using pgxpool. Match rows go in through
// the COPY protocol.
type PostgresStore struct {
	pool   db.Pool
	schema string
	table  string
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, opts Options) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(opts.DSN)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 4
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, schema: opts.Schema, table: opts.Table}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS %s (
	id        BIGSERIAL PRIMARY KEY,
	state     TEXT NOT NULL,
	league    TEXT NOT NULL,
	season    TEXT NOT NULL,
	ts        TIMESTAMPTZ NOT NULL,
	home      TEXT NOT NULL,
	away      TEXT NOT NULL,
	winner    TEXT NOT NULL,
	home_pts  INTEGER NOT NULL,
	away_pts  INTEGER NOT NULL,
	h_q1 INTEGER NOT NULL, a_q1 INTEGER NOT NULL,
	h_q2 INTEGER NOT NULL, a_q2 INTEGER NOT NULL,
	h_q3 INTEGER NOT NULL, a_q3 INTEGER NOT NULL,
	h_q4 INTEGER NOT NULL, a_q4 INTEGER NOT NULL,
	h_ot INTEGER NOT NULL DEFAULT 0, a_ot INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS acquisitions (
	id          TEXT PRIMARY KEY,
	source      TEXT NOT NULL,
	state       TEXT NOT NULL DEFAULT '',
	league      TEXT NOT NULL DEFAULT '',
	season      TEXT NOT NULL DEFAULT '',
	row_count   INTEGER NOT NULL,
	started_at  TIMESTAMPTZ NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_%s_season ON %s(season);
CREATE INDEX IF NOT EXISTS idx_acquisitions_source ON acquisitions(source);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, migrationSQL(postgresMigration, s.table))
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveMatches(ctx context.Context, rows []model.MatchRecord) (int64, error) {
	values := make([][]any, 0, len(rows))
	for _, r := range rows {
		values = append(values, r.Values())
	}
	if s.schema != "" {
		return db.CopyFromSchema(ctx, s.pool, s.schema, s.table, model.MatchColumns(), values)
	}
	return db.CopyFrom(ctx, s.pool, s.table, model.MatchColumns(), values)
}

func (s *PostgresStore) RecordAcquisition(ctx context.Context, acq model.Acquisition) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO acquisitions (id, source, state, league, season, row_count, started_at, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		acq.ID, string(acq.Source), acq.State, acq.League, acq.Season,
		acq.RowCount, acq.StartedAt, acq.FinishedAt,
	)
	return eris.Wrap(err, "postgres: insert acquisition")
}
