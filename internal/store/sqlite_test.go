package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtline/matchdata/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(Options{DSN: filepath.Join(t.TempDir(), "matchdata.db"), Table: "matches"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteStore_SaveMatches(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	n, err := s.SaveMatches(ctx, testMatches())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	var count int
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches`).Scan(&count))
	assert.Equal(t, 2, count)

	var home, winner string
	require.NoError(t, s.db.QueryRowContext(ctx,
		`SELECT home, winner FROM matches ORDER BY id LIMIT 1`).Scan(&home, &winner))
	assert.Equal(t, "Lakers", home)
	assert.Equal(t, "home", winner)
}

func TestSQLiteStore_SaveMatches_Empty(t *testing.T) {
	s := newTestSQLiteStore(t)

	n, err := s.SaveMatches(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestSQLiteStore_RecordAcquisition(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	err := s.RecordAcquisition(ctx, model.Acquisition{
		ID:         "run-1",
		Source:     model.SourceCSV,
		Season:     "2022-2023",
		RowCount:   7,
		StartedAt:  time.Now().UTC(),
		FinishedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	var source string
	var rowCount int
	require.NoError(t, s.db.QueryRowContext(ctx,
		`SELECT source, row_count FROM acquisitions WHERE id = ?`, "run-1").Scan(&source, &rowCount))
	assert.Equal(t, "csv", source)
	assert.Equal(t, 7, rowCount)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown driver")
}

func TestOpen_SQLiteDefaultsTable(t *testing.T) {
	s, err := Open(context.Background(), Options{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "m.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Migrate(context.Background()))
	n, err := s.SaveMatches(context.Background(), testMatches())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
