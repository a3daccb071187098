package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/database"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/models"
)

// ClaimNextSession atomically picks the oldest INIT session, flips it to
// RESEARCH, and returns it. It returns ErrNotFound when the queue is empty.
// On Postgres the inner SELECT locks the chosen row with FOR UPDATE SKIP
// LOCKED so concurrent workers never claim the same session twice; sqlite
// has a single writer connection (see database.Open) so no equivalent
// locking clause is needed there.
func (s *Store) ClaimNextSession(ctx context.Context) (*models.Session, error) {
	var query string
	if s.db.Dialect == database.Postgres {
		query = `UPDATE sessions SET status = 'RESEARCH' WHERE id = (
			SELECT id FROM sessions WHERE status = 'INIT' ORDER BY created_at ASC LIMIT 1 FOR UPDATE SKIP LOCKED
		) RETURNING id, question, status, final_confidence_level, final_confidence_reason, created_at`
	} else {
		query = `UPDATE sessions SET status = 'RESEARCH' WHERE id = (
			SELECT id FROM sessions WHERE status = 'INIT' ORDER BY created_at ASC LIMIT 1
		) RETURNING id, question, status, final_confidence_level, final_confidence_reason, created_at`
	}

	row := s.db.DB.QueryRowContext(ctx, query)

	var sess models.Session
	var createdAt string
	err := row.Scan(&sess.ID, &sess.Question, &sess.Status, &sess.FinalConfidenceLevel, &sess.FinalConfidenceReason, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	sess.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// CountByStatus reports how many sessions currently sit in status, used by
// the worker pool's health check to surface queue depth.
func (s *Store) CountByStatus(ctx context.Context, status models.SessionStatus) (int, error) {
	query := s.db.Rebind(`SELECT COUNT(*) FROM sessions WHERE status = ?`)
	var count int
	if err := s.db.DB.QueryRowContext(ctx, query, status).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// RequeueStuckSession resets a non-terminal session back to INIT so a
// worker picks it up again. The orphan sweep does not call it; it marks
// stale sessions FAILED through FailStaleSessions instead.
func (s *Store) RequeueStuckSession(ctx context.Context, id string) error {
	return s.UpdateStatus(ctx, id, models.StatusInit)
}

// FailStaleSessions marks as FAILED every session that is currently in a
// non-terminal, non-INIT status (RESEARCH/VERIFY/SYNTHESIZE) and was created
// before now.Add(-olderThan); age is measured from created_at, not from the
// last status change. It returns the number of sessions recovered this way.
// A session this old in one of those states can only mean the worker that
// claimed it crashed before reaching a terminal status — the planner itself
// never pauses there.
func (s *Store) FailStaleSessions(ctx context.Context, olderThan time.Duration) (int, error) {
	threshold := formatTime(time.Now().UTC().Add(-olderThan))
	query := s.db.Rebind(`UPDATE sessions SET status = ?, final_confidence_level = ?, final_confidence_reason = ?
		WHERE status IN (?, ?, ?) AND created_at < ?`)
	result, err := s.db.DB.ExecContext(ctx, query,
		models.StatusFailed, models.ConfidenceLow, "Recovered as orphaned: worker did not reach a terminal status in time.",
		models.StatusResearch, models.StatusVerify, models.StatusSynthesize,
		threshold,
	)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

// DeleteExpiredCache removes every query_cache row whose expiry has already
// passed. Cache entries are orthogonal to sessions (spec §3) — deleting one
// never touches the session it points at, unlike a session row itself,
// which the core never deletes.
func (s *Store) DeleteExpiredCache(ctx context.Context) (int, error) {
	query := s.db.Rebind(`DELETE FROM query_cache WHERE expires_at <= ?`)
	result, err := s.db.DB.ExecContext(ctx, query, formatTime(time.Now().UTC()))
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}
