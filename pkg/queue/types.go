// Package queue is the background job runner that turns a submitted
// session (status INIT, written by the API's POST /api/query handler) into
// a completed one: a small pool of workers polls the sessions table and
// runs each claimed session through the planner's full state machine.
// Grounded on the teacher's pkg/queue worker-pool idiom (Worker, WorkerPool,
// orphan detection), simplified to this service's single-table queue — no
// ent, no chain/stage execution, no Slack/event-stream side channels.
package queue

import (
	"context"
	"errors"
	"time"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/models"
)

// ErrNoSessionsAvailable is returned by a poll that finds no INIT session.
var ErrNoSessionsAvailable = errors.New("queue: no sessions available")

// Worker status constants, mirroring the teacher's idle/working pair.
const (
	WorkerStatusIdle    = "idle"
	WorkerStatusWorking = "working"
)

// Runner executes one session's full planner run to completion.
// *planner.Planner satisfies this; tests substitute a fake so the worker
// loop can be driven deterministically without a real oracle or network.
type Runner interface {
	Run(ctx context.Context, sessionID, question string) (*models.ResearchResult, error)
}

// WorkerHealth reports one worker's current activity.
type WorkerHealth struct {
	ID                string    `json:"id"`
	Status            string    `json:"status"`
	CurrentSessionID  string    `json:"current_session_id,omitempty"`
	SessionsProcessed int       `json:"sessions_processed"`
	LastActivity      time.Time `json:"last_activity"`
}

// PoolHealth reports the worker pool's aggregate state, consumed by
// GET /api/health.
type PoolHealth struct {
	IsHealthy        bool           `json:"is_healthy"`
	DBReachable      bool           `json:"db_reachable"`
	TotalWorkers     int            `json:"total_workers"`
	ActiveWorkers    int            `json:"active_workers"`
	QueueDepth       int            `json:"queue_depth"`
	WorkerStats      []WorkerHealth `json:"worker_stats"`
	LastOrphanScan   time.Time      `json:"last_orphan_scan"`
	OrphansRecovered int            `json:"orphans_recovered"`
}
