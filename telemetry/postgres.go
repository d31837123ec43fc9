package telemetry

import (
	"context"
	"math"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// PostgresSink persists every PhaseSummary to a phase_summaries table,
// one row per RecordPhase call. Optional: an assembly run that has no
// database configured uses NopSink instead.
type PostgresSink struct {
	pool *pgxpool.Pool
	run  string
}

// ConnectPostgres opens a pool against connStr and verifies it with a
// ping. runID tags every row written through the returned sink,
// letting one table hold summaries from many runs.
func ConnectPostgres(ctx context.Context, connStr, runID string) (*PostgresSink, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, errors.Wrap(err, "telemetry: connect postgres")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "telemetry: ping postgres")
	}

	return &PostgresSink{pool: pool, run: runID}, nil
}

// InitSchema creates the phase_summaries table if it does not already
// exist, so a fresh database needs no separate migration step.
func (s *PostgresSink) InitSchema(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS phase_summaries (
			id          BIGSERIAL PRIMARY KEY,
			run_id      TEXT NOT NULL,
			phase       TEXT NOT NULL,
			loaded      INTEGER NOT NULL,
			removed     INTEGER NOT NULL,
			surviving   INTEGER NOT NULL,
			snr         DOUBLE PRECISION,
			recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return errors.Wrap(err, "telemetry: init schema")
	}

	return nil
}

// RecordPhase inserts one row for summary. A non-finite SNR (no
// vertices were removed that phase) is stored as NULL rather than a
// value Postgres' double precision type cannot represent on every
// wire encoding.
func (s *PostgresSink) RecordPhase(summary PhaseSummary) error {
	const insert = `
		INSERT INTO phase_summaries (run_id, phase, loaded, removed, surviving, snr)
		VALUES ($1, $2, $3, $4, $5, $6);
	`

	var snr interface{}
	if !math.IsInf(summary.SNR, 0) {
		snr = summary.SNR
	}

	ctx := context.Background()
	_, err := s.pool.Exec(ctx, insert, s.run, summary.Name, summary.Loaded, summary.Removed, summary.Surviving, snr)
	if err != nil {
		return errors.Wrapf(err, "telemetry: record phase %q", summary.Name)
	}

	return nil
}

// Close releases the underlying connection pool.
func (s *PostgresSink) Close() error {
	s.pool.Close()
	return nil
}
