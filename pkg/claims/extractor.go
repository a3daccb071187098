package claims

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/models"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/oracle"
)

// maxTextLength bounds the text sent to the oracle per document, avoiding
// timeouts on very long pages. 12000 characters is roughly 4000 tokens.
const maxTextLength = 12000

// minSourceTextLength is the shortest raw document text worth extracting
// from at all.
const minSourceTextLength = 50

// minClaimWords is the minimum word count for a line to be treated as a
// substantive claim rather than a fragment.
const minClaimWords = 8

var boilerplateKeywords = []string{
	"member fdic",
	"all rights reserved",
	"privacy policy",
	"terms of use",
	"copyright",
	"offers checking accounts",
}

var pureMetadataPatterns = []string{
	"written by", "authored by", "posted by",
	"min read", "minute read", "reading time",
	"share on twitter", "share on facebook", "follow us", "subscribe to",
	"last modified", "last updated",
	"advertisement", "sponsored content",
	"table of contents",
	"click here", "read more about",
	"home >", "news >", "blog >",
}

var timePattern = regexp.MustCompile(`\b(\d{1,2}:\d{2}|am|pm|ist|gmt|utc)\b`)

// Extractor converts raw page text into atomic factual claims via the
// oracle. It is a pure transformation over the oracle's output — it never
// reasons about truth, only about shape (length, boilerplate, metadata).
type Extractor struct {
	Oracle oracle.Client
}

// NewExtractor builds an Extractor backed by o.
func NewExtractor(o oracle.Client) *Extractor {
	return &Extractor{Oracle: o}
}

// Extract returns the claims found in text, attributed to sourceURL. A
// too-short document yields an empty, non-error result. An oracle failure
// is returned as an error; the research agent skips that document, so one
// bad page never aborts a whole research attempt.
func (e *Extractor) Extract(ctx context.Context, text, sourceURL string) ([]models.ExtractedClaim, error) {
	if len(strings.TrimSpace(text)) < minSourceTextLength {
		return nil, nil
	}

	if len(text) > maxTextLength {
		text = text[:maxTextLength]
	}

	response, err := e.Oracle.Complete(ctx, buildExtractionPrompt(text))
	if err != nil {
		return nil, fmt.Errorf("claim extraction: %w", err)
	}

	return parseClaimLines(response, sourceURL), nil
}

func buildExtractionPrompt(text string) string {
	return fmt.Sprintf(`You are an information extraction system specialized in extracting SUBSTANTIVE factual claims.

Extract ONLY explicit, factual claims that contain real information about the topic.

EXTRACT (examples):
- "ONDC was launched by the Government of India in 2022"
- "Amazon reported $500 billion in revenue"

DO NOT EXTRACT (skip these completely):
- Author names, publication dates, read time, navigation text, social sharing, metadata, article structure, generic statements.

Rules:
- Extract only verifiable factual statements WITH REAL INFORMATION
- One claim per bullet (minimum 8 words each)
- Claims must contain specific facts, names, numbers, dates, or concrete information
- If no substantive factual claims exist, return NONE

Return format (use exactly this format):
- <claim 1>
- <claim 2>

TEXT:
%s
`, text)
}

func parseClaimLines(response, sourceURL string) []models.ExtractedClaim {
	var claims []models.ExtractedClaim
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "-") {
			continue
		}
		claimText := strings.TrimSpace(strings.TrimPrefix(line, "-"))

		if isTooShort(claimText) || isBoilerplate(claimText) || isMetadata(claimText) {
			continue
		}

		claims = append(claims, models.ExtractedClaim{Claim: claimText, SourceURL: sourceURL})
	}
	return claims
}

func isTooShort(claim string) bool {
	return len(strings.Fields(claim)) < minClaimWords
}

func isBoilerplate(claim string) bool {
	lower := strings.ToLower(claim)
	for _, k := range boilerplateKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// isMetadata filters short navigation/byline/timestamp fragments while
// leaving long claims (10+ words) alone even if they mention an
// organization or date in passing.
func isMetadata(claim string) bool {
	lower := strings.ToLower(claim)
	words := strings.Fields(lower)

	if len(words) >= 10 {
		return false
	}

	for _, p := range pureMetadataPatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}

	if len(words) < 8 {
		matches := timePattern.FindAllString(lower, -1)
		if len(matches) >= 2 {
			return true
		}
	}

	return false
}
