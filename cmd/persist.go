package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/courtline/matchdata/internal/model"
	"github.com/courtline/matchdata/internal/store"
	"github.com/courtline/matchdata/internal/tunnel"
)

// openStore opens the configured store, routing postgres through the SSH
// tunnel when enabled. The returned cleanup closes the store and the
// tunnel and must run on every exit path.
func openStore(ctx context.Context) (store.Store, func(), error) {
	opts := store.Options{
		Driver: cfg.Store.Driver,
		DSN:    cfg.Store.DatabaseURL,
		Schema: cfg.Store.Schema,
		Table:  cfg.Store.Table,
	}

	var tun *tunnel.Tunnel
	if opts.Driver == "postgres" && cfg.Tunnel.Enabled {
		t, err := tunnel.Open(ctx, cfg.Tunnel)
		if err != nil {
			return nil, nil, eris.Wrap(err, "open tunnel")
		}
		opts.DSN = cfg.Store.ConnString(t.Addr())
		tun = t
	}

	st, err := store.Open(ctx, opts)
	if err != nil {
		if tun != nil {
			_ = tun.Close()
		}
		return nil, nil, eris.Wrap(err, "open store")
	}

	cleanup := func() {
		_ = st.Close()
		if tun != nil {
			_ = tun.Close()
		}
	}
	return st, cleanup, nil
}

// persistRows saves match rows plus the acquisition bookkeeping record.
// Persisting zero rows is an error: an empty acquisition is a failed one.
func persistRows(ctx context.Context, rows []model.MatchRecord, acq model.Acquisition) error {
	if len(rows) == 0 {
		return eris.New("no rows to persist")
	}

	st, cleanup, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	n, err := st.SaveMatches(ctx, rows)
	if err != nil {
		return eris.Wrap(err, "save matches")
	}

	acq.ID = uuid.New().String()
	acq.RowCount = int(n)
	acq.FinishedAt = time.Now().UTC()
	if err := st.RecordAcquisition(ctx, acq); err != nil {
		return eris.Wrap(err, "record acquisition")
	}

	zap.L().Info("persisted matches",
		zap.Int64("rows", n),
		zap.String("source", string(acq.Source)),
		zap.String("acquisition_id", acq.ID),
	)
	return nil
}
