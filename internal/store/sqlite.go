package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/courtline/matchdata/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite, for local
// file-backed persistence without a database server.
type SQLiteStore struct {
	db    *sql.DB
	table string
}

// NewSQLite opens a SQLite database at the DSN path and configures WAL mode.
func NewSQLite(opts Options) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", opts.DSN)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db, table: opts.Table}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS %s (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	state     TEXT NOT NULL,
	league    TEXT NOT NULL,
	season    TEXT NOT NULL,
	ts        DATETIME NOT NULL,
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
	started_at  DATETIME NOT NULL,
	finished_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_%s_season ON %s(season);
CREATE INDEX IF NOT EXISTS idx_acquisitions_source ON acquisitions(source);
`

// migrationSQL fills the matches table name into a migration template.
// The template references the table three times: definition, index name
// and index target.
func migrationSQL(template, table string) string {
	return fmt.Sprintf(template, table, table, table)
}

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, migrationSQL(sqliteMigration, s.table))
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveMatches(ctx context.Context, rows []model.MatchRecord) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	insert := fmt.Sprintf(`INSERT INTO %s
		(state, league, season, ts, home, away, winner, home_pts, away_pts,
		 h_q1, a_q1, h_q2, a_q2, h_q3, a_q3, h_q4, a_q4, h_ot, a_ot)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, s.table)

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare insert")
	}
	defer stmt.Close() //nolint:errcheck

	var n int64
	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.Values()...); err != nil {
			return n, eris.Wrap(err, "sqlite: insert match")
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit")
	}
	return n, nil
}

func (s *SQLiteStore) RecordAcquisition(ctx context.Context, acq model.Acquisition) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO acquisitions (id, source, state, league, season, row_count, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		acq.ID, string(acq.Source), acq.State, acq.League, acq.Season,
		acq.RowCount, acq.StartedAt, acq.FinishedAt,
	)
	return eris.Wrap(err, "sqlite: insert acquisition")
}
