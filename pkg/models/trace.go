package models

import "time"

// Decision is the meta-control verdict over a VERIFY evaluation.
type Decision string

const (
	DecisionAccept Decision = "ACCEPT"
	DecisionRetry  Decision = "RETRY"
	DecisionStop   Decision = "STOP"
)

// Strategy names a query-modification recipe used on retry.
type Strategy string

const (
	StrategyBase                Strategy = "BASE"
	StrategyBroadenQuery        Strategy = "BROADEN_QUERY"
	StrategyAuthoritativeSites  Strategy = "AUTHORITATIVE_SITES"
	StrategyResearchFocused     Strategy = "RESEARCH_FOCUSED"
)

// StrategyOrder is the canonical rotation order used when the preferred
// strategy (chosen from the confidence reason) has already been used.
var StrategyOrder = []Strategy{
	StrategyBase,
	StrategyBroadenQuery,
	StrategyAuthoritativeSites,
	StrategyResearchFocused,
}

// PlannerTrace is one row per VERIFY evaluation. It MUST NEVER carry prompt
// text, raw oracle output, internal reasoning, or private state variables —
// only the decision and the metadata needed to audit it.
type PlannerTrace struct {
	ID             string
	SessionID      string
	AttemptNumber  int
	PlannerState   string // always "VERIFY" for this emission
	Decision       Decision
	StrategyUsed   Strategy
	NumDocs        int
	StopReason     string
	CreatedAt      time.Time
}

// SearchLog is one row per search call issued by the planner.
type SearchLog struct {
	ID            string
	SessionID     string
	AttemptNumber int
	QueryUsed     string
	NumDocs       int
	Success       bool
	CreatedAt     time.Time
}
