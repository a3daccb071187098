package models

import "time"

// VerificationStatus is the outcome of cross-source verification for one
// claim group.
type VerificationStatus string

const (
	StatusAgreement    VerificationStatus = "AGREEMENT"
	StatusConflict     VerificationStatus = "CONFLICT"
	StatusSingleSource VerificationStatus = "SINGLE_SOURCE"
)

// VerifiedClaim is the verifier's output for one claim group: the
// representative claim text, its deduplicated source list, and its status.
// It is carried in-process between the research agent, the confidence
// scorer, the verification agent, and the synthesizer.
type VerifiedClaim struct {
	Claim   string
	Status  VerificationStatus
	Sources []string
}

// Evidence is the external, persisted projection of a VerifiedClaim. Claim
// text and sources are copied verbatim — never reworded — from the
// verifier's output.
type Evidence struct {
	ID        string
	SessionID string
	Claim     string
	Status    VerificationStatus
	Sources   []string
	CreatedAt time.Time
}

// AnswerSnapshot is one row per successful synthesis.
type AnswerSnapshot struct {
	ID               string
	SessionID        string
	AnswerText       string
	ConfidenceLevel  ConfidenceLevel
	ConfidenceReason string
	// Notes carries the synthesizer's non-empty warning string (LOW
	// confidence, or a STOP decision reason); empty for HIGH/MEDIUM.
	Notes     string
	CreatedAt time.Time
}

// QueryCache is at most one row per query fingerprint, pointing at a prior
// ACCEPTed session's result.
type QueryCache struct {
	Fingerprint string
	SessionID   string
	ExpiresAt   time.Time
}

// Valid reports whether the cache entry is still usable at instant now.
// Strict inequality: an entry expiring exactly at now is a miss.
func (q QueryCache) Valid(now time.Time) bool {
	return q.ExpiresAt.After(now)
}
