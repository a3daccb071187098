package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/apperr"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/config"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/version"
)

// submitQueryHandler handles POST /api/query.
func (s *Server) submitQueryHandler(c *gin.Context) {
	var req SubmitQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, apperr.New(apperr.Validation, "request body must be valid JSON"))
		return
	}

	sess, err := s.queryService.Submit(c.Request.Context(), req.Question)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, SubmitQueryResponse{SessionID: sess.ID, Status: "PROCESSING"})
}

// statusHandler handles GET /api/query/:id/status.
func (s *Server) statusHandler(c *gin.Context) {
	status, err := s.queryService.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, StatusResponse{Status: string(status)})
}

// resultHandler handles GET /api/query/:id/result.
func (s *Server) resultHandler(c *gin.Context) {
	view, err := s.queryService.Result(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// traceHandler handles GET /api/query/:id/trace. The trace token is read
// live per request via config.Getenv rather than the cached Config value, so
// operators can rotate INTERNAL_TRACE_TOKEN without a process restart.
func (s *Server) traceHandler(c *gin.Context) {
	token := config.Getenv("INTERNAL_TRACE_TOKEN")
	if token != "" && c.GetHeader("X-Internal-Token") != token {
		respondErr(c, apperr.New(apperr.Forbidden, "missing or invalid trace token"))
		return
	}

	view, err := s.queryService.Trace(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// healthHandler handles GET /api/health.
func (s *Server) healthHandler(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	if _, err := s.dbClient.Health(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy", Database: "degraded", Version: version.Full()})
		return
	}

	status := "healthy"
	if s.workerPool != nil && !s.workerPool.Health(ctx).IsHealthy {
		status = "degraded"
	}
	c.JSON(http.StatusOK, HealthResponse{Status: status, Database: "ok", Version: version.Full()})
}
