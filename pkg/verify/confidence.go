package verify

import (
	"fmt"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/models"
)

// Score grades a set of verified claims into HIGH/MEDIUM/LOW confidence via
// an ordered rule cascade — conflict beats everything, all-single-source is
// LOW, zero agreement is LOW, agreement on at least half the claims across
// 2+ distinct sources is HIGH,
// any other agreement is MEDIUM. Order matters: each rule assumes every
// rule above it did not match.
func Score(verifiedClaims []models.VerifiedClaim) models.Confidence {
	if len(verifiedClaims) == 0 {
		return models.Confidence{Level: models.ConfidenceLow, Reason: "No verified claims available."}
	}

	var agreementCount, conflictCount, singleSourceCount int
	sourceSet := make(map[string]bool)
	for _, c := range verifiedClaims {
		switch c.Status {
		case models.StatusAgreement:
			agreementCount++
		case models.StatusConflict:
			conflictCount++
		case models.StatusSingleSource:
			singleSourceCount++
		}
		for _, s := range c.Sources {
			sourceSet[s] = true
		}
	}
	totalClaims := len(verifiedClaims)
	sourceCount := len(sourceSet)

	if conflictCount > 0 {
		return models.Confidence{
			Level:  models.ConfidenceLow,
			Reason: fmt.Sprintf("Conflicting information detected in %d claim(s).", conflictCount),
		}
	}

	if singleSourceCount == totalClaims {
		return models.Confidence{
			Level:  models.ConfidenceLow,
			Reason: fmt.Sprintf("All %d claim(s) from single sources only (no corroboration).", totalClaims),
		}
	}

	if agreementCount == 0 {
		return models.Confidence{Level: models.ConfidenceLow, Reason: "No claims have multi-source agreement."}
	}

	if float64(agreementCount) >= float64(totalClaims)*0.5 && sourceCount >= 2 {
		return models.Confidence{
			Level: models.ConfidenceHigh,
			Reason: fmt.Sprintf(
				"Strong agreement: %d/%d claims corroborated by multiple independent sources (%d total).",
				agreementCount, totalClaims, sourceCount),
		}
	}

	if agreementCount > 0 {
		return models.Confidence{
			Level:  models.ConfidenceMedium,
			Reason: fmt.Sprintf("Partial corroboration: %d/%d claims agreed upon.", agreementCount, totalClaims),
		}
	}

	return models.Confidence{Level: models.ConfidenceLow, Reason: "Insufficient evidence for confident answer."}
}
