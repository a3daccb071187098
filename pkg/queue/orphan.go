package queue

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// orphanState tracks orphan-sweep metrics (thread-safe), mirroring the
// teacher's orphanState.
type orphanState struct {
	mu        sync.Mutex
	lastScan  time.Time
	recovered int
}

// runOrphanSweep periodically marks as FAILED any session that is in a
// non-terminal, non-INIT status (RESEARCH/VERIFY/SYNTHESIZE) and was created
// more than orphanThreshold ago — the signature of a worker process that
// crashed mid-run,
// since the planner itself always carries a session from INIT to a terminal
// status without pausing.
func (p *WorkerPool) runOrphanSweep(ctx context.Context) {
	ticker := time.NewTicker(p.orphanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.sweepOnce(ctx)
		}
	}
}

func (p *WorkerPool) sweepOnce(ctx context.Context) {
	recovered, err := p.store.FailStaleSessions(ctx, p.orphanThreshold)
	if err != nil {
		slog.Error("orphan sweep failed", "error", err)
	}
	if recovered > 0 {
		slog.Warn("recovered orphaned sessions", "count", recovered)
	}

	p.orphans.mu.Lock()
	p.orphans.lastScan = time.Now()
	p.orphans.recovered += recovered
	p.orphans.mu.Unlock()
}
