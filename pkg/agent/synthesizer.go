package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/models"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/oracle"
)

// Synthesizer turns verified claims into prose via the oracle, used only
// for phrasing — it is given no license to add facts, infer, or speculate,
// and the prompt says so explicitly. This is the no-persistence variant:
// the original carried a sibling definition that also wrote through to the
// answer/evidence repositories, but that write path duplicated what the
// planner already does when it persists a ResearchResult, so only the
// pure-synthesis definition survives here.
type Synthesizer struct {
	Oracle oracle.Client
}

// NewSynthesizer builds a Synthesizer backed by o.
func NewSynthesizer(o oracle.Client) *Synthesizer {
	return &Synthesizer{Oracle: o}
}

// Synthesize composes one ResearchResult from a set of already-verified,
// already-scored claims. An empty claim set short-circuits before ever
// calling the oracle.
func (s *Synthesizer) Synthesize(ctx context.Context, question string, verifiedClaims []models.VerifiedClaim, confidence models.Confidence) *models.ResearchResult {
	if len(verifiedClaims) == 0 {
		return &models.ResearchResult{
			Answer:           "Insufficient verified information is available to answer this question.",
			ConfidenceLevel:  models.ConfidenceLow,
			ConfidenceReason: "No verifiable claims were found.",
			Notes:            "No relevant claims could be extracted.",
		}
	}

	prompt := buildSynthesisPrompt(question, verifiedClaims, confidence.Level)

	answer, err := s.Oracle.Complete(ctx, prompt)
	if err != nil {
		return &models.ResearchResult{
			Answer:           "Insufficient verified information is available to answer this question.",
			ConfidenceLevel:  models.ConfidenceLow,
			ConfidenceReason: "Answer synthesis failed.",
			Evidence:         verifiedClaims,
			Notes:            "Synthesis could not complete; evidence is available but unsummarized.",
		}
	}

	return &models.ResearchResult{
		Answer:           answer,
		ConfidenceLevel:  confidence.Level,
		ConfidenceReason: confidence.Reason,
		Evidence:         verifiedClaims,
		Notes:            generateNotes(confidence.Level),
	}
}

func buildSynthesisPrompt(question string, verifiedClaims []models.VerifiedClaim, level models.ConfidenceLevel) string {
	var claimLines []string
	for _, c := range verifiedClaims {
		claimLines = append(claimLines, fmt.Sprintf("- %s (Status: %s)", c.Claim, c.Status))
	}

	return fmt.Sprintf(`You are a professional research summarizer.

STRICT RULES:
- Use ONLY the claims provided
- Do NOT add new facts
- Do NOT infer or speculate
- Do NOT change claim meaning
- Be cautious and professional in tone
- One short paragraph only

Question:
%s

Verified Claims:
%s

Overall Confidence Level: %s

Compose a clear, honest answer based ONLY on the above.
`, question, strings.Join(claimLines, "\n"), level)
}

func generateNotes(level models.ConfidenceLevel) string {
	if level == models.ConfidenceLow {
		return "The available evidence is limited or conflicting. Further independent confirmation is recommended."
	}
	return ""
}
