// Package agent orchestrates one research attempt end to end — gather,
// extract, verify, score, synthesize — and the meta-control decision over
// its outcome, grounded on the original ResearchAgent/VerificationAgent/
// AnswerSynthesizer trio.
package agent

import (
	"context"
	"regexp"
	"strings"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/claims"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/models"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/verify"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/web"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s]`)

var stopwords = map[string]bool{
	"the": true, "is": true, "a": true, "an": true, "of": true, "to": true,
	"and": true, "in": true, "for": true, "on": true, "with": true, "by": true,
	"as": true, "that": true, "this": true, "what": true, "how": true, "why": true,
	"when": true, "where": true, "which": true, "does": true, "do": true,
	"are": true, "was": true, "were": true, "will": true, "would": true,
	"can": true, "could": true, "should": true, "must": true, "may": true, "might": true,
}

// normalize lowercases text, strips punctuation, and drops stopwords and
// very short tokens, yielding the keyword set relevance is judged against.
func normalize(text string) map[string]bool {
	lower := nonAlphanumeric.ReplaceAllString(strings.ToLower(text), "")
	out := make(map[string]bool)
	for _, word := range strings.Fields(lower) {
		if stopwords[word] || len(word) <= 2 {
			continue
		}
		out[word] = true
	}
	return out
}

// isRelevant reports whether claim shares at least one significant keyword
// with question — a deliberately permissive filter, since over-filtering
// loses real evidence more often than under-filtering admits noise.
func isRelevant(claim, question string) bool {
	claimWords := normalize(claim)
	questionWords := normalize(question)
	for w := range claimWords {
		if questionWords[w] {
			return true
		}
	}
	return false
}

// ResearchAgent runs one attempt of the gather -> extract -> verify ->
// score -> synthesize pipeline. It holds no session state between calls.
type ResearchAgent struct {
	Environment *web.Environment
	Extractor   *claims.Extractor
	Synthesizer *Synthesizer
}

// NewResearchAgent wires the pipeline stages into one agent.
func NewResearchAgent(env *web.Environment, extractor *claims.Extractor, synthesizer *Synthesizer) *ResearchAgent {
	return &ResearchAgent{Environment: env, Extractor: extractor, Synthesizer: synthesizer}
}

// Research runs a single attempt for question, gathering up to numDocs
// documents. It never returns an error: every failure mode downgrades to a
// low-confidence ResearchResult instead, matching the "no relevant claims"
// short-circuit the original agent returns directly.
func (a *ResearchAgent) Research(ctx context.Context, question string, numDocs int) *models.ResearchResult {
	documents, _ := a.Environment.Run(ctx, question, numDocs)

	var relevantClaims []models.ExtractedClaim
	for _, doc := range documents {
		extracted, err := a.Extractor.Extract(ctx, doc.Text, doc.URL)
		if err != nil {
			continue
		}
		for _, c := range extracted {
			if isRelevant(c.Claim, question) {
				relevantClaims = append(relevantClaims, c)
			}
		}
	}

	if len(relevantClaims) == 0 {
		return &models.ResearchResult{
			Answer:           "Insufficient verified information is available to answer this question.",
			ConfidenceLevel:  models.ConfidenceLow,
			ConfidenceReason: "No relevant claims could be extracted from available sources.",
			Notes:            "Further investigation is recommended.",
		}
	}

	verifiedClaims := verify.Verify(relevantClaims)
	confidence := verify.Score(verifiedClaims)

	return a.Synthesizer.Synthesize(ctx, question, verifiedClaims, confidence)
}
