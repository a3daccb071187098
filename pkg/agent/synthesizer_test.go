package agent_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/agent"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/models"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/oracle"
)

func TestSynthesizeShortCircuitsOnNoClaims(t *testing.T) {
	fake := &oracle.Fake{}
	s := agent.NewSynthesizer(fake)
	result := s.Synthesize(context.Background(), "q", nil, models.Confidence{})
	require.Equal(t, models.ConfidenceLow, result.ConfidenceLevel)
	require.Equal(t, 0, fake.Calls())
}

func TestSynthesizeUsesOracleForPhrasing(t *testing.T) {
	fake := &oracle.Fake{Responses: []string{"Water boils at 100C at sea level, per agreeing sources."}}
	s := agent.NewSynthesizer(fake)

	verified := []models.VerifiedClaim{
		{Claim: "Water boils at 100C at sea level", Status: models.StatusAgreement, Sources: []string{"a", "b"}},
	}
	confidence := models.Confidence{Level: models.ConfidenceHigh, Reason: "strong agreement"}

	result := s.Synthesize(context.Background(), "At what temperature does water boil?", verified, confidence)
	require.Equal(t, "Water boils at 100C at sea level, per agreeing sources.", result.Answer)
	require.Equal(t, models.ConfidenceHigh, result.ConfidenceLevel)
	require.Empty(t, result.Notes)
}

func TestSynthesizeAddsNotesOnLowConfidence(t *testing.T) {
	fake := &oracle.Fake{Responses: []string{"Some answer."}}
	s := agent.NewSynthesizer(fake)

	verified := []models.VerifiedClaim{{Claim: "c", Status: models.StatusSingleSource, Sources: []string{"a"}}}
	confidence := models.Confidence{Level: models.ConfidenceLow, Reason: "single source"}

	result := s.Synthesize(context.Background(), "q", verified, confidence)
	require.NotEmpty(t, result.Notes)
}

func TestSynthesizeDegradesOnOracleFailure(t *testing.T) {
	fake := &oracle.Fake{Err: context.DeadlineExceeded}
	s := agent.NewSynthesizer(fake)

	verified := []models.VerifiedClaim{{Claim: "c", Status: models.StatusAgreement, Sources: []string{"a", "b"}}}
	result := s.Synthesize(context.Background(), "q", verified, models.Confidence{Level: models.ConfidenceHigh})
	require.Equal(t, models.ConfidenceLow, result.ConfidenceLevel)
	require.NotEmpty(t, result.Evidence)
}
