package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/database"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/models"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/store"
)

// scriptedResearcher returns one queued *models.ResearchResult per call,
// in order, so a test can script an exact attempt-by-attempt sequence
// through the planner's retry loop.
type scriptedResearcher struct {
	results []*models.ResearchResult
	calls   int
}

func (s *scriptedResearcher) Research(ctx context.Context, question string, numDocs int) *models.ResearchResult {
	r := s.results[s.calls]
	if s.calls < len(s.results)-1 {
		s.calls++
	}
	return r
}

func newTestPlanner(t *testing.T, researcher Researcher, maxAttempts int) (*Planner, *store.Store, string) {
	t.Helper()
	ctx := context.Background()
	client, err := database.Open(ctx, "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	s := store.New(client)
	sess, err := s.CreateSession(ctx, "what is the boiling point of water?")
	require.NoError(t, err)

	return New(researcher, s, maxAttempts), s, sess.ID
}

func TestPlannerAcceptsOnFirstHighConfidenceAttempt(t *testing.T) {
	researcher := &scriptedResearcher{results: []*models.ResearchResult{
		{
			Answer:           "Water boils at 100C at sea level.",
			ConfidenceLevel:  models.ConfidenceHigh,
			ConfidenceReason: "Strong agreement: 2/2 claims corroborated.",
			Evidence: []models.VerifiedClaim{
				{Claim: "Water boils at 100C at sea level", Status: models.StatusAgreement, Sources: []string{"a", "b"}},
			},
		},
	}}
	p, s, sessionID := newTestPlanner(t, researcher, 3)

	result, err := p.Run(context.Background(), sessionID, "what is the boiling point of water?")
	require.NoError(t, err)
	require.Equal(t, models.ConfidenceHigh, result.ConfidenceLevel)
	require.Equal(t, 1, researcher.calls+1)

	sess, err := s.GetSession(context.Background(), sessionID)
	require.NoError(t, err)
	require.Equal(t, models.StatusDone, sess.Status)

	traces, err := s.ListPlannerTraces(context.Background(), sessionID)
	require.NoError(t, err)
	require.Len(t, traces, 1)
	require.Equal(t, models.DecisionAccept, traces[0].Decision)
	require.Equal(t, 5, traces[0].NumDocs)
}

func TestPlannerRetriesThenAccepts(t *testing.T) {
	researcher := &scriptedResearcher{results: []*models.ResearchResult{
		{
			ConfidenceLevel:  models.ConfidenceLow,
			ConfidenceReason: "All 1 claim(s) from single sources only (no corroboration).",
			Evidence:         []models.VerifiedClaim{{Claim: "c", Status: models.StatusSingleSource, Sources: []string{"a"}}},
		},
		{
			Answer:           "Final answer with corroboration.",
			ConfidenceLevel:  models.ConfidenceHigh,
			ConfidenceReason: "Strong agreement.",
			Evidence: []models.VerifiedClaim{
				{Claim: "c", Status: models.StatusAgreement, Sources: []string{"a", "b"}},
			},
		},
	}}
	p, s, sessionID := newTestPlanner(t, researcher, 3)

	result, err := p.Run(context.Background(), sessionID, "question")
	require.NoError(t, err)
	require.Equal(t, models.ConfidenceHigh, result.ConfidenceLevel)

	traces, err := s.ListPlannerTraces(context.Background(), sessionID)
	require.NoError(t, err)
	require.Len(t, traces, 2)
	require.Equal(t, models.DecisionRetry, traces[0].Decision)
	require.Equal(t, 5, traces[0].NumDocs)
	require.Equal(t, models.DecisionAccept, traces[1].Decision)
	require.Equal(t, 10, traces[1].NumDocs)

	logs, err := s.ListSearchLogs(context.Background(), sessionID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	require.Contains(t, logs[1].QueryUsed, "explanation overview")
}

func TestPlannerStopsAfterMaxAttemptsOnPersistentLowConfidence(t *testing.T) {
	low := &models.ResearchResult{
		ConfidenceLevel:  models.ConfidenceLow,
		ConfidenceReason: "All 1 claim(s) from single sources only (no corroboration).",
		Evidence:         []models.VerifiedClaim{{Claim: "c", Status: models.StatusSingleSource, Sources: []string{"a"}}},
	}
	researcher := &scriptedResearcher{results: []*models.ResearchResult{low, low, low}}
	p, s, sessionID := newTestPlanner(t, researcher, 3)

	result, err := p.Run(context.Background(), sessionID, "question")
	require.NoError(t, err)
	require.Equal(t, models.ConfidenceLow, result.ConfidenceLevel)
	require.NotEmpty(t, result.Notes)

	sess, err := s.GetSession(context.Background(), sessionID)
	require.NoError(t, err)
	require.Equal(t, models.StatusDone, sess.Status)
}

func TestPlannerStopsWhenNoClaimsPersistAcrossAttempts(t *testing.T) {
	empty := &models.ResearchResult{
		Answer:           "Insufficient verified information is available to answer this question.",
		ConfidenceLevel:  models.ConfidenceLow,
		ConfidenceReason: "No relevant claims could be extracted from available sources.",
	}
	researcher := &scriptedResearcher{results: []*models.ResearchResult{empty, empty, empty}}
	p, s, sessionID := newTestPlanner(t, researcher, 3)

	result, err := p.Run(context.Background(), sessionID, "question")
	require.NoError(t, err)
	require.Equal(t, models.ConfidenceLow, result.ConfidenceLevel)

	sess, err := s.GetSession(context.Background(), sessionID)
	require.NoError(t, err)
	require.True(t, sess.Status.Terminal())
}

func TestPlannerWritesCacheOnAccept(t *testing.T) {
	researcher := &scriptedResearcher{results: []*models.ResearchResult{
		{
			Answer:           "cached answer",
			ConfidenceLevel:  models.ConfidenceHigh,
			ConfidenceReason: "Strong agreement.",
			Evidence:         []models.VerifiedClaim{{Claim: "c", Status: models.StatusAgreement, Sources: []string{"a", "b"}}},
		},
	}}
	p, s, sessionID := newTestPlanner(t, researcher, 3)

	_, err := p.Run(context.Background(), sessionID, "cacheable question")
	require.NoError(t, err)

	// 5, not the initialNumDocs constant: pins spec's documented starting
	// doc count literally so a future change to the constant can't silently
	// drag this assertion along with it.
	fingerprint := computeQueryFingerprint("cacheable question", models.StrategyBase, 5)
	cached, err := s.GetCache(context.Background(), fingerprint)
	require.NoError(t, err)
	require.Equal(t, sessionID, cached.SessionID)
}
