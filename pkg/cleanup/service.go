// Package cleanup runs a background sweep over expired query_cache rows,
// grounded on the teacher's own pkg/cleanup service idiom (periodic ticker
// loop, idempotent runs safe from multiple pods) but retargeted at this
// service's cache table. Session rows themselves are never touched here —
// spec §3 requires a session, once created, to never be deleted by the
// core.
package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/store"
)

// Service periodically deletes query_cache rows past their expiry.
type Service struct {
	store           *store.Store
	cleanupInterval time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

// NewService creates a cleanup service. cleanupInterval comes from
// config.Config's CleanupInterval.
func NewService(s *store.Store, cleanupInterval time.Duration) *Service {
	return &Service{store: s, cleanupInterval: cleanupInterval}
}

// Start launches the background cleanup loop. Calling Start twice without an
// intervening Stop is a no-op.
func (s *Service) Start(ctx context.Context) {
	if s.cancel != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go s.run(ctx)

	slog.Info("cleanup service started", "interval", s.cleanupInterval)
}

// Stop signals the cleanup loop to exit and waits for it to finish.
func (s *Service) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	slog.Info("cleanup service stopped")
}

func (s *Service) run(ctx context.Context) {
	defer close(s.done)

	s.sweepOnce(ctx)

	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepOnce(ctx)
		}
	}
}

func (s *Service) sweepOnce(ctx context.Context) {
	count, err := s.store.DeleteExpiredCache(ctx)
	if err != nil {
		slog.Error("cache cleanup sweep failed", "error", err)
		return
	}
	if count > 0 {
		slog.Info("cache cleanup sweep removed expired entries", "count", count)
	}
}
