package queue

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/store"
)

// Worker polls the session queue and runs each claimed session to
// completion. The planner never installs its own cancellation (spec §7,
// "the planner never installs global cancellation"), so a worker's only
// cancellation source is the pool's shutdown context.
type Worker struct {
	id           string
	store        *store.Store
	runner       Runner
	pollInterval time.Duration
	stopCh       chan struct{}
	stopOnce     sync.Once
	wg           sync.WaitGroup

	mu                sync.RWMutex
	status            string
	currentSessionID  string
	sessionsProcessed int
	lastActivity      time.Time
}

// NewWorker builds a Worker. pollInterval is how long it sleeps after
// finding the queue empty.
func NewWorker(id string, s *store.Store, runner Runner, pollInterval time.Duration) *Worker {
	return &Worker{
		id:           id,
		store:        s,
		runner:       runner,
		pollInterval: pollInterval,
		stopCh:       make(chan struct{}),
		status:       WorkerStatusIdle,
		lastActivity: time.Now(),
	}
}

// Start begins the poll loop in a goroutine.
func (w *Worker) Start(ctx context.Context) {
	w.wg.Add(1)
	go w.run(ctx)
}

// Stop signals the worker to stop after its current session and waits for
// it to exit. Safe to call more than once.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.wg.Wait()
}

// Health reports this worker's current activity.
func (w *Worker) Health() WorkerHealth {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return WorkerHealth{
		ID:                w.id,
		Status:            w.status,
		CurrentSessionID:  w.currentSessionID,
		SessionsProcessed: w.sessionsProcessed,
		LastActivity:      w.lastActivity,
	}
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()
	log := slog.With("worker_id", w.id)
	log.Info("worker started")

	for {
		select {
		case <-w.stopCh:
			log.Info("worker shutting down")
			return
		case <-ctx.Done():
			log.Info("context cancelled, worker shutting down")
			return
		default:
			if err := w.pollAndProcess(ctx); err != nil {
				if errors.Is(err, ErrNoSessionsAvailable) {
					w.sleep(w.pollInterval)
					continue
				}
				log.Error("error claiming session", "error", err)
				w.sleep(time.Second)
			}
		}
	}
}

func (w *Worker) sleep(d time.Duration) {
	select {
	case <-w.stopCh:
	case <-time.After(d):
	}
}

// pollAndProcess claims the next pending session, if any, and runs it
// through the planner to completion. The planner itself persists every
// status transition, trace, and final snapshot; the worker only tracks
// claim/processed bookkeeping for health reporting.
func (w *Worker) pollAndProcess(ctx context.Context) error {
	session, err := w.store.ClaimNextSession(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNoSessionsAvailable
		}
		return err
	}

	log := slog.With("session_id", session.ID, "worker_id", w.id)
	log.Info("session claimed")

	w.setStatus(WorkerStatusWorking, session.ID)
	defer w.setStatus(WorkerStatusIdle, "")

	if _, err := w.runner.Run(ctx, session.ID, session.Question); err != nil {
		log.Error("planner run failed", "error", err)
	}

	w.mu.Lock()
	w.sessionsProcessed++
	w.mu.Unlock()

	log.Info("session processing complete")
	return nil
}

func (w *Worker) setStatus(status, sessionID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status = status
	w.currentSessionID = sessionID
	w.lastActivity = time.Now()
}
