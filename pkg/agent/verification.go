package agent

import (
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/models"
)

// DefaultMaxAttempts is the canonical retry ceiling used when a caller
// does not override it, matching the original VerificationAgent's
// constructor default.
const DefaultMaxAttempts = 3

// Decide is the meta-control policy over one VERIFY evaluation: a pure
// function of the verified claims, the scored confidence, and how many
// attempts have been spent. It never touches storage or the network.
func Decide(verifiedClaims []models.VerifiedClaim, confidence models.Confidence, attempt, maxAttempts int) models.VerificationVerdict {
	if len(verifiedClaims) == 0 {
		if attempt >= maxAttempts {
			return models.VerificationVerdict{
				Decision: models.DecisionStop,
				Reason:   "No verifiable claims could be found after multiple attempts.",
			}
		}
		return models.VerificationVerdict{
			Decision:       models.DecisionRetry,
			Reason:         "No verifiable claims were found. Additional sources may help.",
			Recommendation: "Search broader or alternative sources.",
		}
	}

	if hasStatus(verifiedClaims, models.StatusConflict) {
		if attempt >= maxAttempts {
			return models.VerificationVerdict{
				Decision: models.DecisionStop,
				Reason:   "Conflicting evidence persists despite additional verification attempts.",
			}
		}
		return models.VerificationVerdict{
			Decision:       models.DecisionRetry,
			Reason:         "Sources provide conflicting evidence. Further verification may resolve discrepancies.",
			Recommendation: "Seek additional independent sources.",
		}
	}

	switch confidence.Level {
	case models.ConfidenceHigh:
		return models.VerificationVerdict{
			Decision: models.DecisionAccept,
			Reason:   "Multiple independent sources agree on the same claim. Further verification is unlikely to change the conclusion.",
		}
	case models.ConfidenceMedium:
		return models.VerificationVerdict{
			Decision: models.DecisionAccept,
			Reason:   "Evidence from multiple sources broadly supports the conclusion, though agreement is limited.",
		}
	case models.ConfidenceLow:
		if attempt >= maxAttempts {
			return models.VerificationVerdict{
				Decision: models.DecisionStop,
				Reason:   "Confidence remains low after repeated attempts. Further verification is unlikely to improve certainty.",
			}
		}
		return models.VerificationVerdict{
			Decision:       models.DecisionRetry,
			Reason:         "The conclusion is based on limited evidence. Additional independent sources may improve confidence.",
			Recommendation: "Search for authoritative or corroborating sources.",
		}
	}

	return models.VerificationVerdict{
		Decision: models.DecisionStop,
		Reason:   "Unable to determine verification status reliably.",
	}
}

func hasStatus(verifiedClaims []models.VerifiedClaim, status models.VerificationStatus) bool {
	for _, c := range verifiedClaims {
		if c.Status == status {
			return true
		}
	}
	return false
}
