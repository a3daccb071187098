// verifyloop runs the HTTP API and the background research worker pool in
// one process: submit a question, the queue claims it, the planner drives it
// through research/verify/synthesize, and the API surfaces status/result/
// trace for it.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/agent"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/api"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/claims"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/cleanup"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/config"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/database"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/oracle"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/planner"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/queue"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/services"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/store"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/web"
)

const geminiModel = "gemini-1.5-flash"

func main() {
	logLevel := new(slog.LevelVar)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if level, parseErr := parseLogLevel(cfg.LogLevel); parseErr == nil {
		logLevel.Set(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}()
	slog.Info("connected to database", "dialect", dbClient.Dialect)

	s := store.New(dbClient)

	search := web.NewGoogleSearch(cfg.GoogleSearchAPIKey, cfg.GoogleSearchCX, cfg.GoogleSearchEndpoint)
	fetcher := web.NewFetcher(cfg.FetchTimeout)
	environment := web.NewEnvironment(search, fetcher)

	oracleClient := oracle.NewChatClient(cfg.GeminiAPIKey, geminiModel)
	extractor := claims.NewExtractor(oracleClient)
	synthesizer := agent.NewSynthesizer(oracleClient)
	researchAgent := agent.NewResearchAgent(environment, extractor, synthesizer)

	plan := planner.New(researchAgent, s, agent.DefaultMaxAttempts)

	pool := queue.NewWorkerPool(s, plan, cfg.QueueWorkers, cfg.QueuePollInterval, time.Minute, 15*time.Minute)
	pool.Start(ctx)
	slog.Info("worker pool started", "workers", cfg.QueueWorkers)

	retention := cleanup.NewService(s, cfg.CleanupInterval)
	retention.Start(ctx)

	queryService := services.NewQueryService(s)
	server := api.NewServer(dbClient, queryService, pool)

	serverErrCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := server.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
			return
		}
		serverErrCh <- nil
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	case err := <-serverErrCh:
		if err != nil {
			slog.Error("http server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("error shutting down http server", "error", err)
	}

	retention.Stop()
	pool.Stop()
	slog.Info("shutdown complete")
}

func parseLogLevel(level string) (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(level))
	return l, err
}
