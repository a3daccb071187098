package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/agent"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/models"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/store"
)

// Researcher runs one research attempt. *agent.ResearchAgent satisfies
// this; tests substitute a scripted fake to drive the state machine
// through specific retry/accept/stop sequences deterministically.
type Researcher interface {
	Research(ctx context.Context, question string, numDocs int) *models.ResearchResult
}

// Planner drives one session's full retry loop. It holds no per-session
// state itself — Run constructs a fresh runContext per call — so a single
// Planner value is safe to share across concurrent sessions.
type Planner struct {
	Research Researcher
	Store    *store.Store
	// MaxAttempts bounds retries; zero means agent.DefaultMaxAttempts.
	MaxAttempts int
}

// New builds a Planner. maxAttempts <= 0 selects agent.DefaultMaxAttempts.
func New(research Researcher, s *store.Store, maxAttempts int) *Planner {
	if maxAttempts <= 0 {
		maxAttempts = agent.DefaultMaxAttempts
	}
	return &Planner{Research: research, Store: s, MaxAttempts: maxAttempts}
}

// Run executes the INIT -> ... -> DONE/FAILED state machine for one
// session and returns the final research result, persisting every
// transition, trace, and snapshot along the way.
func (p *Planner) Run(ctx context.Context, sessionID, question string) (*models.ResearchResult, error) {
	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = agent.DefaultMaxAttempts
	}
	rc := newRunContext(maxAttempts)
	var researchResult *models.ResearchResult

	for {
		switch rc.state {
		case models.StatusInit:
			if err := p.handleInit(ctx, sessionID, rc); err != nil {
				return nil, err
			}

		case models.StatusResearch:
			result, err := p.handleResearch(ctx, sessionID, question, rc)
			if err != nil {
				return nil, err
			}
			researchResult = result

		case models.StatusVerify:
			if err := p.handleVerify(ctx, sessionID, researchResult, rc); err != nil {
				return nil, err
			}

		case models.StatusSynthesize:
			if err := p.handleSynthesize(ctx, sessionID, researchResult, rc); err != nil {
				return nil, err
			}

		case models.StatusDone:
			return researchResult, nil

		case models.StatusFailed:
			return p.handleFailed(ctx, sessionID, researchResult, rc)

		default:
			return nil, fmt.Errorf("planner: unreachable state %q", rc.state)
		}
	}
}

func (p *Planner) handleInit(ctx context.Context, sessionID string, rc *runContext) error {
	rc.attemptCount = 1
	rc.currentStrategy = models.StrategyBase
	rc.state = models.StatusResearch
	return p.Store.UpdateStatus(ctx, sessionID, models.StatusResearch)
}

func (p *Planner) handleResearch(ctx context.Context, sessionID, question string, rc *runContext) (*models.ResearchResult, error) {
	if err := p.Store.UpdateStatus(ctx, sessionID, models.StatusResearch); err != nil {
		return nil, err
	}

	rc.lastQueryFingerprint = computeQueryFingerprint(question, rc.currentStrategy, rc.numDocs)

	// Cache lookup happens only on retries, never on the first attempt —
	// the first attempt always does fresh research so a session's own
	// answer is never served from a stale prior run of itself.
	if rc.attemptCount > 1 {
		if cached, err := p.lookupCache(ctx, sessionID, rc.lastQueryFingerprint); err != nil {
			return nil, err
		} else if cached != nil {
			rc.state = models.StatusVerify
			return cached, p.Store.UpdateStatus(ctx, sessionID, models.StatusVerify)
		}
	}

	queryUsed := modifyQuery(question, rc.currentStrategy)
	result := p.Research.Research(ctx, queryUsed, rc.numDocs)

	if err := p.Store.InsertSearchLog(ctx, &models.SearchLog{
		SessionID:     sessionID,
		AttemptNumber: rc.attemptCount,
		QueryUsed:     queryUsed,
		NumDocs:       rc.numDocs,
		Success:       true,
		CreatedAt:     time.Now().UTC(),
	}); err != nil {
		return nil, err
	}

	rc.state = models.StatusVerify
	return result, p.Store.UpdateStatus(ctx, sessionID, models.StatusVerify)
}

func (p *Planner) lookupCache(ctx context.Context, sessionID, fingerprint string) (*models.ResearchResult, error) {
	cached, err := p.Store.GetCache(ctx, fingerprint)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	if !cached.Valid(time.Now().UTC()) {
		return nil, nil
	}

	snapshot, err := p.Store.LatestAnswerSnapshot(ctx, cached.SessionID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	evidenceRows, err := p.Store.ListEvidence(ctx, cached.SessionID)
	if err != nil {
		return nil, err
	}

	evidence := make([]models.VerifiedClaim, 0, len(evidenceRows))
	for _, e := range evidenceRows {
		evidence = append(evidence, models.VerifiedClaim{Claim: e.Claim, Status: e.Status, Sources: e.Sources})
	}

	return &models.ResearchResult{
		Answer:           snapshot.AnswerText,
		ConfidenceLevel:  snapshot.ConfidenceLevel,
		ConfidenceReason: snapshot.ConfidenceReason,
		Evidence:         evidence,
	}, nil
}

func (p *Planner) handleVerify(ctx context.Context, sessionID string, result *models.ResearchResult, rc *runContext) error {
	if err := p.Store.UpdateStatus(ctx, sessionID, models.StatusVerify); err != nil {
		return err
	}

	verdict := agent.Decide(result.Evidence, models.Confidence{Level: result.ConfidenceLevel, Reason: result.ConfidenceReason}, rc.attemptCount, rc.maxAttempts)

	if err := p.Store.InsertPlannerTrace(ctx, &models.PlannerTrace{
		SessionID:     sessionID,
		AttemptNumber: rc.attemptCount,
		PlannerState:  string(models.StatusVerify),
		Decision:      verdict.Decision,
		StrategyUsed:  rc.currentStrategy,
		NumDocs:       rc.numDocs,
		StopReason:    verdict.Reason,
		CreatedAt:     time.Now().UTC(),
	}); err != nil {
		return err
	}

	rc.recordProgress(string(result.ConfidenceLevel), verdict.Decision)

	switch verdict.Decision {
	case models.DecisionAccept:
		rc.state = models.StatusSynthesize
		return p.Store.UpdateStatus(ctx, sessionID, models.StatusSynthesize)

	case models.DecisionStop:
		rc.state = models.StatusSynthesize
		result.Notes = verdict.Reason
		return p.Store.UpdateStatus(ctx, sessionID, models.StatusSynthesize)

	case models.DecisionRetry:
		if rc.shouldStop() {
			rc.state = models.StatusFailed
			return nil
		}

		rc.attemptCount++
		if rc.numDocs < maxNumDocs {
			rc.numDocs = min(rc.numDocs*2, maxNumDocs)
		}

		strategy, ok := nextStrategy(rc.strategyHistory, result.ConfidenceReason, verdict.Recommendation)
		if !ok {
			rc.state = models.StatusFailed
			return nil
		}
		rc.strategyHistory = append(rc.strategyHistory, strategy)
		rc.currentStrategy = strategy

		rc.state = models.StatusResearch
		return p.Store.UpdateStatus(ctx, sessionID, models.StatusResearch)

	default:
		return fmt.Errorf("planner: unreachable decision %q", verdict.Decision)
	}
}

func (p *Planner) handleSynthesize(ctx context.Context, sessionID string, result *models.ResearchResult, rc *runContext) error {
	if err := p.Store.UpdateStatus(ctx, sessionID, models.StatusSynthesize); err != nil {
		return err
	}
	if result == nil {
		rc.budgetExhaustedReason = "No research result available to synthesize."
		rc.state = models.StatusFailed
		return nil
	}

	now := time.Now().UTC()
	if err := p.Store.InsertAnswerSnapshot(ctx, &models.AnswerSnapshot{
		SessionID:        sessionID,
		AnswerText:       result.Answer,
		ConfidenceLevel:  result.ConfidenceLevel,
		ConfidenceReason: result.ConfidenceReason,
		Notes:            result.Notes,
		CreatedAt:        now,
	}); err != nil {
		return err
	}

	for _, e := range result.Evidence {
		if err := p.Store.InsertEvidence(ctx, &models.Evidence{
			SessionID: sessionID,
			Claim:     e.Claim,
			Status:    e.Status,
			Sources:   e.Sources,
			CreatedAt: now,
		}); err != nil {
			return err
		}
	}

	if err := p.Store.UpdateFinalStatus(ctx, sessionID, models.StatusDone, result.ConfidenceLevel, result.ConfidenceReason); err != nil {
		return err
	}

	// Cache only on ACCEPT, never on STOP — a stopped run's answer is not
	// something a later identical question should be handed without its
	// own attempt at fresh verification.
	if rc.lastDecision == models.DecisionAccept && rc.lastQueryFingerprint != "" {
		expires := now.Add(cacheTTLSeconds * time.Second)
		if err := p.Store.PutCache(ctx, rc.lastQueryFingerprint, sessionID, expires); err != nil {
			return err
		}
	}

	rc.state = models.StatusDone
	return nil
}

func (p *Planner) handleFailed(ctx context.Context, sessionID string, result *models.ResearchResult, rc *runContext) (*models.ResearchResult, error) {
	reason := rc.budgetExhaustedReason
	if reason == "" {
		reason = "Planner terminated execution safely."
	}

	if err := p.Store.UpdateFinalStatus(ctx, sessionID, models.StatusFailed, models.ConfidenceLow, reason); err != nil {
		return nil, err
	}

	var evidence []models.VerifiedClaim
	if result != nil {
		evidence = result.Evidence
		now := time.Now().UTC()
		for _, e := range evidence {
			if err := p.Store.InsertEvidence(ctx, &models.Evidence{
				SessionID: sessionID,
				Claim:     e.Claim,
				Status:    e.Status,
				Sources:   e.Sources,
				CreatedAt: now,
			}); err != nil {
				return nil, err
			}
		}
	}

	return &models.ResearchResult{
		Answer:           "The system could not confidently answer the question.",
		ConfidenceLevel:  models.ConfidenceLow,
		ConfidenceReason: "Planner stopped after repeated unsuccessful attempts.",
		Evidence:         evidence,
		Notes:            reason,
	}, nil
}
