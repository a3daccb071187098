package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/apperr"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/database"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/models"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/services"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/store"
)

func newTestQueryService(t *testing.T) (*services.QueryService, *store.Store) {
	t.Helper()
	ctx := context.Background()
	client, err := database.Open(ctx, "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	s := store.New(client)
	return services.NewQueryService(s), s
}

func TestSubmitRejectsEmptyQuestion(t *testing.T) {
	q, _ := newTestQueryService(t)
	_, err := q.Submit(context.Background(), "   ")
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperr.Validation, appErr.Kind)
}

func TestSubmitCreatesInitSession(t *testing.T) {
	q, _ := newTestQueryService(t)
	sess, err := q.Submit(context.Background(), "what is the capital of France?")
	require.NoError(t, err)
	require.Equal(t, models.StatusInit, sess.Status)
	require.NotEmpty(t, sess.ID)
}

func TestStatusMalformedUUIDIsNotFound(t *testing.T) {
	q, _ := newTestQueryService(t)
	_, err := q.Status(context.Background(), "not-a-uuid")
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperr.NotFound, appErr.Kind)
}

func TestStatusUnknownSessionIsNotFound(t *testing.T) {
	q, _ := newTestQueryService(t)
	_, err := q.Status(context.Background(), "00000000-0000-0000-0000-000000000000")
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperr.NotFound, appErr.Kind)
}

func TestStatusReturnsCurrentLifecycleStatus(t *testing.T) {
	q, s := newTestQueryService(t)
	ctx := context.Background()
	sess, err := q.Submit(ctx, "question")
	require.NoError(t, err)
	require.NoError(t, s.UpdateStatus(ctx, sess.ID, models.StatusVerify))

	status, err := q.Status(ctx, sess.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusVerify, status)
}

func TestResultConflictBeforeTerminal(t *testing.T) {
	q, _ := newTestQueryService(t)
	sess, err := q.Submit(context.Background(), "question")
	require.NoError(t, err)

	_, err = q.Result(context.Background(), sess.ID)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperr.Conflict, appErr.Kind)
}

func TestResultReturnsAnswerAndEvidenceOnceTerminal(t *testing.T) {
	q, s := newTestQueryService(t)
	ctx := context.Background()
	sess, err := q.Submit(ctx, "question")
	require.NoError(t, err)

	require.NoError(t, s.UpdateFinalStatus(ctx, sess.ID, models.StatusDone, models.ConfidenceHigh, "agreement across sources"))
	require.NoError(t, s.InsertAnswerSnapshot(ctx, &models.AnswerSnapshot{
		SessionID:        sess.ID,
		AnswerText:       "Paris is the capital of France.",
		ConfidenceLevel:  models.ConfidenceHigh,
		ConfidenceReason: "agreement across sources",
		CreatedAt:        time.Now(),
	}))
	require.NoError(t, s.InsertEvidence(ctx, &models.Evidence{
		SessionID: sess.ID,
		Claim:     "Paris is the capital of France",
		Status:    models.StatusAgreement,
		Sources:   []string{"https://a.example", "https://b.example"},
		CreatedAt: time.Now(),
	}))

	view, err := q.Result(ctx, sess.ID)
	require.NoError(t, err)
	require.Equal(t, "Paris is the capital of France.", view.Answer)
	require.Equal(t, "HIGH", view.ConfidenceLevel)
	require.Empty(t, view.Notes)
	require.Len(t, view.Evidence, 1)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, view.Evidence[0].Sources)
}

func TestResultIsIdempotentAndDoesNotMutate(t *testing.T) {
	q, s := newTestQueryService(t)
	ctx := context.Background()
	sess, err := q.Submit(ctx, "question")
	require.NoError(t, err)
	require.NoError(t, s.UpdateFinalStatus(ctx, sess.ID, models.StatusDone, models.ConfidenceLow, "single source only"))
	require.NoError(t, s.InsertAnswerSnapshot(ctx, &models.AnswerSnapshot{
		SessionID:        sess.ID,
		AnswerText:       "insufficient information",
		ConfidenceLevel:  models.ConfidenceLow,
		ConfidenceReason: "single source only",
		Notes:            "Confidence is LOW: treat this answer with caution.",
		CreatedAt:        time.Now(),
	}))

	first, err := q.Result(ctx, sess.ID)
	require.NoError(t, err)
	second, err := q.Result(ctx, sess.ID)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, "Confidence is LOW: treat this answer with caution.", first.Notes)
}

func TestTraceReturnsPlannerTracesAndSearchLogs(t *testing.T) {
	q, s := newTestQueryService(t)
	ctx := context.Background()
	sess, err := q.Submit(ctx, "question")
	require.NoError(t, err)

	require.NoError(t, s.InsertPlannerTrace(ctx, &models.PlannerTrace{
		SessionID:     sess.ID,
		AttemptNumber: 1,
		PlannerState:  "VERIFY",
		Decision:      models.DecisionAccept,
		StrategyUsed:  models.StrategyBase,
		NumDocs:       5,
		CreatedAt:     time.Now(),
	}))
	require.NoError(t, s.InsertSearchLog(ctx, &models.SearchLog{
		SessionID:     sess.ID,
		AttemptNumber: 1,
		QueryUsed:     "question",
		NumDocs:       5,
		Success:       true,
		CreatedAt:     time.Now(),
	}))

	trace, err := q.Trace(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, trace.PlannerTraces, 1)
	require.Len(t, trace.SearchLogs, 1)
}

func TestTraceUnknownSessionIsNotFound(t *testing.T) {
	q, _ := newTestQueryService(t)
	_, err := q.Trace(context.Background(), "00000000-0000-0000-0000-000000000000")
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperr.NotFound, appErr.Kind)
}
