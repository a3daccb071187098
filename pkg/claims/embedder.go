package claims

import (
	"hash/fnv"
	"math"
	"strings"
)

// embeddingDims is the width of the deterministic local embedding. The
// original implementation called out to a hosted embedding API with a
// hardcoded key; that is replaced here with a pure, local hashed
// bag-of-words vector so claim grouping needs no network call and no
// credential at all. Cosine similarity over hashed term frequencies gives
// the same near-duplicate-detection behavior the matcher depends on.
const embeddingDims = 256

// embed produces a deterministic, L2-normalized embedding of text by
// hashing each lowercased token into one of embeddingDims buckets and
// accumulating term counts, the hashing-trick analog of a learned
// embedding for this service's purposes (semantic near-duplicate claims
// share most of their vocabulary).
func embed(text string) []float64 {
	vec := make([]float64, embeddingDims)
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		tok = strings.Trim(tok, ".,;:!?\"'()[]")
		if tok == "" {
			continue
		}
		h := fnv.New32a()
		_, _ = h.Write([]byte(tok))
		vec[h.Sum32()%embeddingDims]++
	}
	normalize(vec)
	return vec
}

func normalize(vec []float64) {
	var sumSq float64
	for _, v := range vec {
		sumSq += v * v
	}
	if sumSq == 0 {
		return
	}
	norm := math.Sqrt(sumSq)
	for i := range vec {
		vec[i] /= norm
	}
}

// cosineSimilarity returns the cosine of the angle between a and b, in
// [-1, 1]. Both vectors are assumed the same length (always true here,
// since embed always returns embeddingDims floats).
func cosineSimilarity(a, b []float64) float64 {
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot
}
