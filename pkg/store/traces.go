package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/models"
)

// InsertPlannerTrace appends one VERIFY-state audit row. Callers are
// responsible for never populating StopReason or any other field with
// prompt text or raw oracle output — the trace is an audit artifact, not a
// debug log.
func (s *Store) InsertPlannerTrace(ctx context.Context, t *models.PlannerTrace) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	query := s.db.Rebind(`INSERT INTO planner_traces
		(id, session_id, attempt_number, planner_state, verification_decision, strategy_used, num_docs, stop_reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.DB.ExecContext(ctx, query,
		t.ID, t.SessionID, t.AttemptNumber, t.PlannerState, t.Decision, t.StrategyUsed, t.NumDocs, t.StopReason, formatTime(t.CreatedAt))
	return err
}

// ListPlannerTraces returns every trace row for a session in attempt order,
// the data backing the GET .../trace endpoint.
func (s *Store) ListPlannerTraces(ctx context.Context, sessionID string) ([]models.PlannerTrace, error) {
	query := s.db.Rebind(`SELECT id, session_id, attempt_number, planner_state, verification_decision, strategy_used, num_docs, stop_reason, created_at
		FROM planner_traces WHERE session_id = ? ORDER BY attempt_number ASC`)
	rows, err := s.db.DB.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.PlannerTrace
	for rows.Next() {
		var t models.PlannerTrace
		var createdAt string
		if err := rows.Scan(&t.ID, &t.SessionID, &t.AttemptNumber, &t.PlannerState, &t.Decision, &t.StrategyUsed, &t.NumDocs, &t.StopReason, &createdAt); err != nil {
			return nil, err
		}
		t.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
