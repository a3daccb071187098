package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/models"
)

// InsertEvidence persists one verified claim group. Sources are stored as a
// JSON array since a claim can carry an arbitrary number of source URLs.
func (s *Store) InsertEvidence(ctx context.Context, e *models.Evidence) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	sources, err := json.Marshal(e.Sources)
	if err != nil {
		return fmt.Errorf("marshal sources: %w", err)
	}
	query := s.db.Rebind(`INSERT INTO evidence (id, session_id, claim_text, verification_status, source_urls, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	_, err = s.db.DB.ExecContext(ctx, query, e.ID, e.SessionID, e.Claim, e.Status, string(sources), formatTime(e.CreatedAt))
	return err
}

// ListEvidence returns every evidence row for a session, the data backing
// the "evidence" field of the GET .../result response.
func (s *Store) ListEvidence(ctx context.Context, sessionID string) ([]models.Evidence, error) {
	query := s.db.Rebind(`SELECT id, session_id, claim_text, verification_status, source_urls, created_at
		FROM evidence WHERE session_id = ? ORDER BY created_at ASC`)
	rows, err := s.db.DB.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Evidence
	for rows.Next() {
		var e models.Evidence
		var createdAt, sources string
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Claim, &e.Status, &sources, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(sources), &e.Sources); err != nil {
			return nil, fmt.Errorf("unmarshal sources: %w", err)
		}
		e.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
