package trace

import (
	"context"
	"fmt"
	"time"

	"github.com/tdurand/strobe/internal/sim"
)

// RunInfo summarizes one archived run.
type RunInfo struct {
	Token     string
	Plan      string
	Workers   int
	StartedAt time.Time
	Events    int
}

// Runs lists archived runs, oldest first. UUIDv7 tokens sort by creation
// time, so token order is start order.
func (s *Store) Runs(ctx context.Context) ([]RunInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.token, r.plan, r.workers, r.started_at, COUNT(e.seq)
		FROM runs r
		LEFT JOIN events e ON e.run_token = r.token
		GROUP BY r.token
		ORDER BY r.token
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunInfo
	for rows.Next() {
		var info RunInfo
		var started string
		if err := rows.Scan(&info.Token, &info.Plan, &info.Workers, &started, &info.Events); err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		info.StartedAt, err = time.Parse(time.RFC3339Nano, started)
		if err != nil {
			return nil, fmt.Errorf("list runs: bad started_at for %s: %w", info.Token, err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// Events returns one run's events in sequence order.
func (s *Store) Events(ctx context.Context, token string) ([]sim.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, kind, marker_id, worker, label
		FROM events
		WHERE run_token = ?
		ORDER BY seq
	`, token)
	if err != nil {
		return nil, fmt.Errorf("read events of %s: %w", token, err)
	}
	defer rows.Close()

	var out []sim.Event
	for rows.Next() {
		var ev sim.Event
		var kind string
		if err := rows.Scan(&ev.Seq, &kind, &ev.ID, &ev.Worker, &ev.Label); err != nil {
			return nil, fmt.Errorf("read events of %s: %w", token, err)
		}
		ev.Kind = sim.EventKind(kind)
		out = append(out, ev)
	}
	return out, rows.Err()
}

// CycleCounts returns, per worker, how many full busy+idle cycles the run
// recorded. A cycle is counted by its closing idle-end marker.
func (s *Store) CycleCounts(ctx context.Context, token string) (map[int]int64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT worker, COUNT(*)
		FROM events
		WHERE run_token = ? AND kind = ? AND marker_id = ?
		GROUP BY worker
	`, token, string(sim.EventPhase), sim.MarkerIdleEnd)
	if err != nil {
		return nil, fmt.Errorf("cycle counts of %s: %w", token, err)
	}
	defer rows.Close()

	out := make(map[int]int64)
	for rows.Next() {
		var worker int
		var n int64
		if err := rows.Scan(&worker, &n); err != nil {
			return nil, fmt.Errorf("cycle counts of %s: %w", token, err)
		}
		out[worker] = n
	}
	return out, rows.Err()
}
