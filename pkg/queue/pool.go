package queue

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/models"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/store"
)

// WorkerPool manages a pool of queue workers plus the orphan sweep.
type WorkerPool struct {
	store        *store.Store
	runner       Runner
	workerCount  int
	pollInterval time.Duration

	workers  []*Worker
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	started  bool

	orphans         orphanState
	orphanInterval  time.Duration
	orphanThreshold time.Duration
}

// NewWorkerPool creates a worker pool of workerCount workers. orphanInterval
// and orphanThreshold default to 1 minute and 15 minutes respectively when
// zero.
func NewWorkerPool(s *store.Store, runner Runner, workerCount int, pollInterval, orphanInterval, orphanThreshold time.Duration) *WorkerPool {
	if orphanInterval <= 0 {
		orphanInterval = time.Minute
	}
	if orphanThreshold <= 0 {
		orphanThreshold = 15 * time.Minute
	}
	return &WorkerPool{
		store:           s,
		runner:          runner,
		workerCount:     workerCount,
		pollInterval:    pollInterval,
		workers:         make([]*Worker, 0, workerCount),
		stopCh:          make(chan struct{}),
		orphanInterval:  orphanInterval,
		orphanThreshold: orphanThreshold,
	}
}

// Start spawns worker goroutines and the orphan-sweep background task. It is
// safe to call multiple times; subsequent calls are no-ops.
func (p *WorkerPool) Start(ctx context.Context) {
	if p.started {
		slog.Warn("worker pool already started, ignoring duplicate Start call")
		return
	}
	p.started = true

	slog.Info("starting worker pool", "worker_count", p.workerCount)

	for i := 0; i < p.workerCount; i++ {
		workerID := fmt.Sprintf("worker-%d", i)
		worker := NewWorker(workerID, p.store, p.runner, p.pollInterval)
		p.workers = append(p.workers, worker)
		worker.Start(ctx)
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.runOrphanSweep(ctx)
	}()

	slog.Info("worker pool started")
}

// Stop signals all workers and the orphan sweep to stop and waits for them
// to finish. Workers finish their current session before exiting.
func (p *WorkerPool) Stop() {
	slog.Info("stopping worker pool")
	for _, worker := range p.workers {
		worker.Stop()
	}
	p.stopOnce.Do(func() { close(p.stopCh) })
	p.wg.Wait()
	slog.Info("worker pool stopped")
}

// Health reports the pool's aggregate state for GET /api/health.
func (p *WorkerPool) Health(ctx context.Context) *PoolHealth {
	queueDepth, err := p.store.CountByStatus(ctx, models.StatusInit)
	dbHealthy := err == nil
	if err != nil {
		slog.Error("failed to query queue depth for health check", "error", err)
	}

	workerStats := make([]WorkerHealth, len(p.workers))
	activeWorkers := 0
	for i, worker := range p.workers {
		stats := worker.Health()
		workerStats[i] = stats
		if stats.Status == WorkerStatusWorking {
			activeWorkers++
		}
	}

	p.orphans.mu.Lock()
	lastScan := p.orphans.lastScan
	recovered := p.orphans.recovered
	p.orphans.mu.Unlock()

	return &PoolHealth{
		IsHealthy:        len(p.workers) > 0 && dbHealthy,
		DBReachable:      dbHealthy,
		TotalWorkers:     len(p.workers),
		ActiveWorkers:    activeWorkers,
		QueueDepth:       queueDepth,
		WorkerStats:      workerStats,
		LastOrphanScan:   lastScan,
		OrphansRecovered: recovered,
	}
}
