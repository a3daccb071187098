// Package api is the HTTP surface of spec §6: submit/status/result/trace
// plus an ambient health endpoint. Every query handler is a thin adapter —
// it parses the request, calls into services.QueryService, and maps the
// result through respondErr; none of them touches the database or the
// planner directly. The health handler is the exception: it pings the
// database client and reads the worker pool's health itself.
package api

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/database"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/queue"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/services"
)

// Server is the HTTP API server.
type Server struct {
	engine       *gin.Engine
	httpServer   *http.Server
	dbClient     *database.Client
	queryService *services.QueryService
	workerPool   *queue.WorkerPool
}

// NewServer builds a Server and registers its routes. workerPool may be nil
// (health then reports only database reachability).
func NewServer(dbClient *database.Client, queryService *services.QueryService, workerPool *queue.WorkerPool) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), securityHeaders())

	s := &Server{
		engine:       engine,
		dbClient:     dbClient,
		queryService: queryService,
		workerPool:   workerPool,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/api/health", s.healthHandler)

	v1 := s.engine.Group("/api/query")
	v1.POST("", s.submitQueryHandler)
	v1.GET("/:id/status", s.statusHandler)
	v1.GET("/:id/result", s.resultHandler)
	v1.GET("/:id/trace", s.traceHandler)
}

// ServeHTTP lets a *Server stand in directly as an http.Handler, e.g. for
// httptest.NewServer or in-process request tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

// Start runs the HTTP server on addr (blocking).
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{Addr: addr, Handler: s.engine}
	return s.httpServer.ListenAndServe()
}

// StartWithListener runs the HTTP server on a pre-created listener (used by
// tests to bind an OS-assigned port).
func (s *Server) StartWithListener(ln net.Listener) error {
	s.httpServer = &http.Server{Handler: s.engine}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// contextWithTimeout bounds a handler's database call to 5s so a stalled
// connection pool never hangs a health check.
func contextWithTimeout(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), 5*time.Second)
}
