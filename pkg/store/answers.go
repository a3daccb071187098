package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/models"
)

// InsertAnswerSnapshot persists one synthesized answer. The planner writes
// one per run that reaches SYNTHESIZE; if a session ever holds more than one
// snapshot, only the most recent one is surfaced by LatestAnswerSnapshot.
func (s *Store) InsertAnswerSnapshot(ctx context.Context, a *models.AnswerSnapshot) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	query := s.db.Rebind(`INSERT INTO answer_snapshots (id, session_id, answer_text, confidence_level, confidence_reason, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.DB.ExecContext(ctx, query, a.ID, a.SessionID, a.AnswerText, a.ConfidenceLevel, a.ConfidenceReason, a.Notes, formatTime(a.CreatedAt))
	return err
}

// LatestAnswerSnapshot returns the most recent snapshot for a session, or
// ErrNotFound if none exists.
func (s *Store) LatestAnswerSnapshot(ctx context.Context, sessionID string) (*models.AnswerSnapshot, error) {
	query := s.db.Rebind(`SELECT id, session_id, answer_text, confidence_level, confidence_reason, notes, created_at
		FROM answer_snapshots WHERE session_id = ? ORDER BY created_at DESC LIMIT 1`)
	row := s.db.DB.QueryRowContext(ctx, query, sessionID)

	var a models.AnswerSnapshot
	var createdAt string
	err := row.Scan(&a.ID, &a.SessionID, &a.AnswerText, &a.ConfidenceLevel, &a.ConfidenceReason, &a.Notes, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	a.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
