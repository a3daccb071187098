// Package store is the persistence layer of spec §3 and §4.8: sessions,
// planner traces, search logs, evidence, answer snapshots, and the query
// cache. It is a plain repository value constructed explicitly at startup
// and passed to the planner and the API layer — never a static method
// bundle or a package-level engine (Design Notes, "Static-class
// singletons").
package store

import (
	"errors"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/database"
)

// ErrNotFound is returned by Get-style lookups that find no row.
var ErrNotFound = errors.New("store: not found")

// Store bundles every repository against one shared connection pool.
type Store struct {
	db *database.Client
}

// New constructs a Store bound to client.
func New(client *database.Client) *Store {
	return &Store{db: client}
}
