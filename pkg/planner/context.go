// Package planner runs the INIT -> RESEARCH -> VERIFY -> SYNTHESIZE state
// machine that drives one session from question to answer, retrying with
// rotated search strategies until the meta-control policy accepts or
// stops. Grounded on the original PlannerAgent/PlannerContext.
package planner

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/models"
)

const (
	initialNumDocs  = 5
	maxNumDocs      = 20
	maxNoProgress   = 3
	cacheTTLSeconds = 60 * 60 * 24
)

var whitespace = regexp.MustCompile(`\s+`)

// runContext tracks one planner run's mutable state between state-handler
// invocations. It is never persisted as a whole — only the fields that
// map onto PlannerTrace/SearchLog rows are.
type runContext struct {
	state               models.SessionStatus
	attemptCount        int
	maxAttempts         int
	numDocs             int
	strategyHistory     []models.Strategy
	currentStrategy     models.Strategy
	lastConfidence      string
	lastDecision        models.Decision
	noProgressCount     int
	budgetExhaustedReason string
	lastQueryFingerprint string
}

func newRunContext(maxAttempts int) *runContext {
	return &runContext{
		state:           models.StatusInit,
		maxAttempts:     maxAttempts,
		numDocs:         initialNumDocs,
		currentStrategy: models.StrategyBase,
	}
}

// recordProgress compares this round's (confidence, decision) pair against
// the prior round's; an unchanged pair increments the stall counter, any
// change resets it. Three consecutive stalls trips shouldStop.
func (c *runContext) recordProgress(confidenceLevel string, decision models.Decision) {
	if confidenceLevel == c.lastConfidence && decision == c.lastDecision {
		c.noProgressCount++
	} else {
		c.noProgressCount = 0
	}
	c.lastConfidence = confidenceLevel
	c.lastDecision = decision
}

// shouldStop is evaluated before the attempt counter is incremented on a
// RETRY, so attemptCount always reflects attempts actually executed.
func (c *runContext) shouldStop() bool {
	if c.attemptCount >= c.maxAttempts {
		c.budgetExhaustedReason = "Maximum retry attempts reached."
		return true
	}
	if c.noProgressCount >= maxNoProgress {
		c.budgetExhaustedReason = "No progress across multiple attempts."
		return true
	}
	return false
}

// computeQueryFingerprint is the SHA-256 cache key: normalized question,
// current strategy, and doc count, so two attempts with the same
// parameters hit the same cache slot.
func computeQueryFingerprint(question string, strategy models.Strategy, numDocs int) string {
	normalized := whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(question)), " ")
	key := normalized + "|" + string(strategy) + "|" + strconv.Itoa(numDocs)
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// modifyQuery rewrites question per the active strategy's recipe.
func modifyQuery(question string, strategy models.Strategy) string {
	switch strategy {
	case models.StrategyBroadenQuery:
		return question + " explanation overview"
	case models.StrategyAuthoritativeSites:
		return question + " site:gov OR site:edu"
	case models.StrategyResearchFocused:
		return question + " research report policy"
	default:
		return question
	}
}

// nextStrategy picks the next search strategy after a RETRY: a preferred
// strategy inferred from the confidence reason (or the recommendation),
// falling back to the first strategy in canonical order not yet used. It
// reports ok=false when every strategy has been exhausted.
func nextStrategy(history []models.Strategy, confidenceReason, recommendation string) (models.Strategy, bool) {
	used := make(map[models.Strategy]bool, len(history))
	for _, s := range history {
		used[s] = true
	}

	var preferred models.Strategy
	reason := strings.ToLower(confidenceReason)
	switch {
	case strings.Contains(reason, "single source"):
		preferred = models.StrategyBroadenQuery
	case strings.Contains(reason, "conflict"):
		preferred = models.StrategyAuthoritativeSites
	case recommendation != "":
		preferred = models.StrategyResearchFocused
	default:
		preferred = models.StrategyBroadenQuery
	}

	if !used[preferred] {
		return preferred, true
	}

	for _, s := range models.StrategyOrder {
		if !used[s] {
			return s, true
		}
	}
	return "", false
}
