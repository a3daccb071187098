package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/models"
)

// InsertSearchLog appends one search-log row with whatever Success value it
// is given. The planner writes one per research call, always with Success
// set to true.
func (s *Store) InsertSearchLog(ctx context.Context, l *models.SearchLog) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	query := s.db.Rebind(`INSERT INTO search_logs (id, session_id, attempt_number, query_used, num_docs, success, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.DB.ExecContext(ctx, query,
		l.ID, l.SessionID, l.AttemptNumber, l.QueryUsed, l.NumDocs, boolToInt(l.Success), formatTime(l.CreatedAt))
	return err
}

// ListSearchLogs returns every search log for a session in attempt order.
func (s *Store) ListSearchLogs(ctx context.Context, sessionID string) ([]models.SearchLog, error) {
	query := s.db.Rebind(`SELECT id, session_id, attempt_number, query_used, num_docs, success, created_at
		FROM search_logs WHERE session_id = ? ORDER BY attempt_number ASC`)
	rows, err := s.db.DB.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.SearchLog
	for rows.Next() {
		var l models.SearchLog
		var createdAt string
		var success int
		if err := rows.Scan(&l.ID, &l.SessionID, &l.AttemptNumber, &l.QueryUsed, &l.NumDocs, &success, &createdAt); err != nil {
			return nil, err
		}
		l.Success = success != 0
		l.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
