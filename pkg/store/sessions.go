package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/models"
)

// CreateSession inserts a new session row in INIT status and returns it.
func (s *Store) CreateSession(ctx context.Context, question string) (*models.Session, error) {
	sess := &models.Session{
		ID:        uuid.NewString(),
		Question:  question,
		Status:    models.StatusInit,
		CreatedAt: time.Now().UTC(),
	}
	query := s.db.Rebind(`INSERT INTO sessions (id, question, status, final_confidence_level, final_confidence_reason, created_at)
		VALUES (?, ?, ?, '', '', ?)`)
	_, err := s.db.DB.ExecContext(ctx, query, sess.ID, sess.Question, sess.Status, formatTime(sess.CreatedAt))
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// GetSession loads a session by id, returning ErrNotFound if absent.
func (s *Store) GetSession(ctx context.Context, id string) (*models.Session, error) {
	query := s.db.Rebind(`SELECT id, question, status, final_confidence_level, final_confidence_reason, created_at
		FROM sessions WHERE id = ?`)
	row := s.db.DB.QueryRowContext(ctx, query, id)

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

// UpdateStatus sets the session's in-flight lifecycle status. It never
// touches the final confidence fields — those are set only by
// UpdateFinalStatus when the session reaches a terminal state.
func (s *Store) UpdateStatus(ctx context.Context, id string, status models.SessionStatus) error {
	query := s.db.Rebind(`UPDATE sessions SET status = ? WHERE id = ?`)
	_, err := s.db.DB.ExecContext(ctx, query, status, id)
	return err
}

// UpdateFinalStatus sets the session to a terminal status with its final
// confidence. Called exactly once per session, from SYNTHESIZE or FAILED.
func (s *Store) UpdateFinalStatus(ctx context.Context, id string, status models.SessionStatus, level models.ConfidenceLevel, reason string) error {
	query := s.db.Rebind(`UPDATE sessions SET status = ?, final_confidence_level = ?, final_confidence_reason = ? WHERE id = ?`)
	_, err := s.db.DB.ExecContext(ctx, query, status, level, reason, id)
	return err
}

func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000000Z07:00")
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
