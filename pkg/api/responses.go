package api

import "github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/services"

// SubmitQueryResponse is returned by POST /api/query.
type SubmitQueryResponse struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
}

// StatusResponse is returned by GET /api/query/:id/status.
type StatusResponse struct {
	Status string `json:"status"`
}

// ResultResponse is returned by GET /api/query/:id/result. It is
// services.ResultView verbatim — no field named or resembling prompt,
// reasoning, thought, chain_of_thought, raw_output, internal_*, or debug_*.
type ResultResponse = services.ResultView

// TraceResponse is returned by GET /api/query/:id/trace. Only decisions and
// metadata — never prompt text or oracle output.
type TraceResponse = services.TraceView

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Version  string `json:"version"`
}

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}
