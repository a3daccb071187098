package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/models"
)

// GetCache looks up a query fingerprint, returning ErrNotFound on a miss.
// The caller (the planner) is responsible for checking Valid(now) — an
// expired-but-present row is still returned so callers can tell "miss" from
// "stale" if that distinction ever matters.
func (s *Store) GetCache(ctx context.Context, fingerprint string) (*models.QueryCache, error) {
	query := s.db.Rebind(`SELECT fingerprint, session_id, expires_at FROM query_cache WHERE fingerprint = ?`)
	row := s.db.DB.QueryRowContext(ctx, query, fingerprint)

	var c models.QueryCache
	var expiresAt string
	err := row.Scan(&c.Fingerprint, &c.SessionID, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	c.ExpiresAt, err = parseTime(expiresAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// PutCache upserts a fingerprint -> session mapping with a fresh expiry.
// Called only on an ACCEPT decision, with a 24h TTL (spec §4.8).
func (s *Store) PutCache(ctx context.Context, fingerprint, sessionID string, expiresAt time.Time) error {
	switch s.db.Dialect {
	case "postgres":
		query := s.db.Rebind(`INSERT INTO query_cache (fingerprint, session_id, expires_at) VALUES (?, ?, ?)
			ON CONFLICT (fingerprint) DO UPDATE SET session_id = EXCLUDED.session_id, expires_at = EXCLUDED.expires_at`)
		_, err := s.db.DB.ExecContext(ctx, query, fingerprint, sessionID, formatTime(expiresAt))
		return err
	default:
		query := s.db.Rebind(`INSERT OR REPLACE INTO query_cache (fingerprint, session_id, expires_at) VALUES (?, ?, ?)`)
		_, err := s.db.DB.ExecContext(ctx, query, fingerprint, sessionID, formatTime(expiresAt))
		return err
	}
}
