package verify_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/models"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/verify"
)

func TestVerifySingleSource(t *testing.T) {
	out := verify.Verify([]models.ExtractedClaim{
		{Claim: "Water boils at 100 degrees Celsius at sea level", SourceURL: "https://a.example"},
	})
	require.Len(t, out, 1)
	require.Equal(t, models.StatusSingleSource, out[0].Status)
	require.Equal(t, []string{"https://a.example"}, out[0].Sources)
}

func TestVerifyAgreement(t *testing.T) {
	out := verify.Verify([]models.ExtractedClaim{
		{Claim: "Water boils at 100 degrees Celsius at sea level", SourceURL: "https://a.example"},
		{Claim: "Water boils at 100 degrees Celsius at sea level", SourceURL: "https://b.example"},
	})
	require.Len(t, out, 1)
	require.Equal(t, models.StatusAgreement, out[0].Status)
	require.ElementsMatch(t, []string{"https://a.example", "https://b.example"}, out[0].Sources)
}

func TestVerifySameSourceTwiceIsSingleSource(t *testing.T) {
	out := verify.Verify([]models.ExtractedClaim{
		{Claim: "The new policy will reduce inflation significantly this year", SourceURL: "https://a.example"},
		{Claim: "The new policy will reduce inflation significantly this year", SourceURL: "https://a.example"},
	})
	// same source twice still counts as a single source, not conflict
	require.Len(t, out, 1)
	require.Equal(t, models.StatusSingleSource, out[0].Status)
}

func TestConfidenceScoreCascade(t *testing.T) {
	cases := []struct {
		name  string
		in    []models.VerifiedClaim
		level models.ConfidenceLevel
	}{
		{"empty", nil, models.ConfidenceLow},
		{
			"conflict beats everything",
			[]models.VerifiedClaim{
				{Status: models.StatusConflict, Sources: []string{"a", "b"}},
				{Status: models.StatusAgreement, Sources: []string{"a", "b"}},
			},
			models.ConfidenceLow,
		},
		{
			"all single source",
			[]models.VerifiedClaim{
				{Status: models.StatusSingleSource, Sources: []string{"a"}},
				{Status: models.StatusSingleSource, Sources: []string{"b"}},
			},
			models.ConfidenceLow,
		},
		{
			"majority agreement is high",
			[]models.VerifiedClaim{
				{Status: models.StatusAgreement, Sources: []string{"a", "b"}},
				{Status: models.StatusAgreement, Sources: []string{"a", "c"}},
			},
			models.ConfidenceHigh,
		},
		{
			"minority agreement is medium",
			[]models.VerifiedClaim{
				{Status: models.StatusAgreement, Sources: []string{"a", "b"}},
				{Status: models.StatusSingleSource, Sources: []string{"c"}},
				{Status: models.StatusSingleSource, Sources: []string{"d"}},
			},
			models.ConfidenceMedium,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := verify.Score(tc.in)
			require.Equal(t, tc.level, got.Level)
			require.NotEmpty(t, got.Reason)
		})
	}
}
