// Package verify cross-checks grouped claims against each other and grades
// the resulting confidence, grounded on the original VerificationEngine and
// ConfidenceScorer.
package verify

import (
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/claims"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/models"
)

// Verify groups extractedClaims by semantic similarity and classifies each
// group's cross-source agreement: a single-source group is SINGLE_SOURCE;
// a multi-source group with any pair of opposite-polarity claims is
// CONFLICT; otherwise it is AGREEMENT.
func Verify(extractedClaims []models.ExtractedClaim) []models.VerifiedClaim {
	groups := claims.GroupSimilarClaims(extractedClaims)

	verified := make([]models.VerifiedClaim, 0, len(groups))
	for _, group := range groups {
		sources := uniqueSources(group)
		representative := group[0].Claim

		var status models.VerificationStatus
		switch {
		case len(sources) == 1:
			status = models.StatusSingleSource
		case anyConflict(group):
			status = models.StatusConflict
		default:
			status = models.StatusAgreement
		}

		verified = append(verified, models.VerifiedClaim{
			Claim:   representative,
			Status:  status,
			Sources: sources,
		})
	}
	return verified
}

func uniqueSources(group models.ClaimGroup) []string {
	seen := make(map[string]bool)
	var sources []string
	for _, c := range group {
		if seen[c.SourceURL] {
			continue
		}
		seen[c.SourceURL] = true
		sources = append(sources, c.SourceURL)
	}
	return sources
}

// anyConflict reports whether any pair within group asserts opposite
// polarity — e.g. one source says a policy "reduces" inflation while
// another says it "increases" it.
func anyConflict(group models.ClaimGroup) bool {
	for i := 0; i < len(group); i++ {
		for j := i + 1; j < len(group); j++ {
			if isConflicting(group[i].Claim, group[j].Claim) {
				return true
			}
		}
	}
	return false
}

func isConflicting(a, b string) bool {
	return claims.Score(a)*claims.Score(b) < 0
}
