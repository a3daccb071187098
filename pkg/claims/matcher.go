package claims

import "github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/models"

// SimilarityThreshold is the cosine-similarity cutoff above which two
// claims are treated as the same underlying assertion.
const SimilarityThreshold = 0.85

// GroupSimilarClaims buckets claims by greedy single-linkage similarity
// against each group's representative (first) member, in encounter order —
// the same algorithm the matcher this is grounded on uses: a claim joins
// the first existing group whose representative it is similar enough to,
// or starts a new group if none matches.
func GroupSimilarClaims(items []models.ExtractedClaim) []models.ClaimGroup {
	if len(items) == 0 {
		return nil
	}

	embeddings := make([][]float64, len(items))
	for i, c := range items {
		embeddings[i] = embed(c.Claim)
	}

	var groups []models.ClaimGroup
	repIndex := make([]int, 0, len(items))

	for i, c := range items {
		placed := false
		for g := range groups {
			sim := cosineSimilarity(embeddings[i], embeddings[repIndex[g]])
			if sim >= SimilarityThreshold {
				groups[g] = append(groups[g], c)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, models.ClaimGroup{c})
			repIndex = append(repIndex, i)
		}
	}

	return groups
}
