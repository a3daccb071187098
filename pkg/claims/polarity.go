// Package claims turns raw page text into atomic factual claims and groups
// semantically-equivalent claims across sources, grounded on the original
// ClaimExtractor/ClaimMatcher/polarity modules.
package claims

import "strings"

// Polarity is the directional sign of an assertion: Positive for claims of
// decrease/control, Negative for claims of increase/worsening, Neutral when
// neither or both keyword sets fire equally.
type Polarity int

const (
	Negative Polarity = -1
	Neutral  Polarity = 0
	Positive Polarity = 1
)

// positiveKeywords and negativeKeywords are verb-based polarity indicators;
// the lists are kept exactly as in the source they were grounded on so the
// scored examples ("reduces inflation" vs "increases inflation") still hold.
var positiveKeywords = []string{
	"reduce", "decrease", "lower", "decline", "fall", "slow", "limit", "control", "curb",
}

var negativeKeywords = []string{
	"increase", "rise", "raise", "boost", "accelerate", "worsen", "expand",
}

// Score returns the polarity of a single claim's text by majority keyword
// count. A tie, including zero hits on both sides, is Neutral.
func Score(text string) Polarity {
	lower := strings.ToLower(text)

	positiveHits := countHits(lower, positiveKeywords)
	negativeHits := countHits(lower, negativeKeywords)

	switch {
	case positiveHits > negativeHits:
		return Positive
	case negativeHits > positiveHits:
		return Negative
	default:
		return Neutral
	}
}

func countHits(lower string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			n++
		}
	}
	return n
}
