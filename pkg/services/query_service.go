// Package services sits between the HTTP API and the persistence layer: it
// validates requests, translates store.ErrNotFound and malformed input into
// the apperr taxonomy, and shapes store rows into the response bodies the
// API surface returns. It owns no background execution — submitting a
// question only writes an INIT session row; pkg/queue's worker pool is what
// later advances it.
package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/apperr"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/models"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/store"
)

// QueryService implements the submit/status/result/trace operations spec §6
// describes. It is a thin, stateless wrapper around *store.Store — built
// once at startup and shared by every request.
type QueryService struct {
	store *store.Store
}

// NewQueryService builds a QueryService bound to s.
func NewQueryService(s *store.Store) *QueryService {
	return &QueryService{store: s}
}

// Submit validates question and creates a new INIT session for it. The
// background worker pool picks it up; Submit never blocks on research.
func (q *QueryService) Submit(ctx context.Context, question string) (*models.Session, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, apperr.New(apperr.Validation, "question must not be empty")
	}

	sess, err := q.store.CreateSession(ctx, question)
	if err != nil {
		return nil, apperr.Wrap(apperr.Transient, "failed to create session", err)
	}
	return sess, nil
}

// Status loads a session's current lifecycle status by id.
func (q *QueryService) Status(ctx context.Context, id string) (models.SessionStatus, error) {
	sess, err := q.loadSession(ctx, id)
	if err != nil {
		return "", err
	}
	return sess.Status, nil
}

// ResultView is the external /result response shape: no field resembling
// prompt, reasoning, or internal state ever appears here.
type ResultView struct {
	Answer           string         `json:"answer"`
	ConfidenceLevel  string         `json:"confidence_level"`
	ConfidenceReason string         `json:"confidence_reason"`
	Evidence         []EvidenceView `json:"evidence"`
	Notes            string         `json:"notes,omitempty"`
}

// EvidenceView is the external projection of one verified claim.
type EvidenceView struct {
	Claim   string   `json:"claim"`
	Status  string   `json:"status"`
	Sources []string `json:"sources"`
}

// Result loads a terminal session's answer and evidence. It returns a
// Conflict error while the session has not yet reached DONE or FAILED, and
// never invokes the oracle — repeated calls on a terminal session are
// idempotent reads.
func (q *QueryService) Result(ctx context.Context, id string) (*ResultView, error) {
	sess, err := q.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sess.Status.Terminal() {
		return nil, apperr.New(apperr.Conflict, "session is not ready: not terminal yet")
	}

	snapshot, err := q.store.LatestAnswerSnapshot(ctx, id)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, apperr.New(apperr.NotFound, "no answer recorded for this session")
		}
		return nil, apperr.Wrap(apperr.Transient, "failed to load answer snapshot", err)
	}

	evidence, err := q.store.ListEvidence(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.Transient, "failed to load evidence", err)
	}

	view := &ResultView{
		Answer:           snapshot.AnswerText,
		ConfidenceLevel:  string(snapshot.ConfidenceLevel),
		ConfidenceReason: snapshot.ConfidenceReason,
		Notes:            snapshot.Notes,
		Evidence:         make([]EvidenceView, len(evidence)),
	}
	for i, e := range evidence {
		view.Evidence[i] = EvidenceView{Claim: e.Claim, Status: string(e.Status), Sources: e.Sources}
	}
	return view, nil
}

// TraceView is the external /trace response shape: decisions and metadata
// only — never prompt text or oracle output.
type TraceView struct {
	PlannerTraces []models.PlannerTrace `json:"planner_traces"`
	SearchLogs    []models.SearchLog    `json:"search_logs"`
}

// Trace loads the full planner-trace and search-log history for a session.
// Token authorization is checked by the API layer, not here.
func (q *QueryService) Trace(ctx context.Context, id string) (*TraceView, error) {
	if _, err := q.loadSession(ctx, id); err != nil {
		return nil, err
	}

	traces, err := q.store.ListPlannerTraces(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.Transient, "failed to load planner traces", err)
	}
	logs, err := q.store.ListSearchLogs(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.Transient, "failed to load search logs", err)
	}
	return &TraceView{PlannerTraces: traces, SearchLogs: logs}, nil
}

// loadSession validates id as a UUID and loads the session, mapping both a
// malformed id and an unknown one to NotFound (spec §6.1: "404
// invalid/unknown UUID" — the API does not distinguish the two cases).
func (q *QueryService) loadSession(ctx context.Context, id string) (*models.Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.New(apperr.NotFound, "session id is not a valid UUID")
	}

	sess, err := q.store.GetSession(ctx, id)
	if err == store.ErrNotFound {
		return nil, apperr.New(apperr.NotFound, "no session with this id")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Transient, "failed to load session", err)
	}
	return sess, nil
}
