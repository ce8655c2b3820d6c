package trace

import (
	"context"
	"fmt"
	"time"

	"github.com/tdurand/strobe/internal/sim"
)

// WriteRun archives one finished run: its metadata row plus every recorded
// event, in one transaction. Events are written after the run completes so
// none of the archiving cost lands inside the measured region.
func (s *Store) WriteRun(ctx context.Context, token, planName string, workers int, startedAt time.Time, events []sim.Event) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (token, plan, workers, started_at)
		VALUES (?, ?, ?, ?)
	`, token, planName, workers, startedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("write run %s: %w", token, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO events (run_token, seq, kind, marker_id, worker, label)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("write run %s: %w", token, err)
	}
	defer stmt.Close()

	for _, ev := range events {
		if _, err := stmt.ExecContext(ctx, token, ev.Seq, string(ev.Kind), ev.ID, ev.Worker, ev.Label); err != nil {
			return fmt.Errorf("write event %d of run %s: %w", ev.Seq, token, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write run %s: %w", token, err)
	}
	return nil
}
