package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/standup-sydney/mcp-gateway/internal/audit"
	"github.com/standup-sydney/mcp-gateway/internal/backend"
	"github.com/standup-sydney/mcp-gateway/internal/config"
	"github.com/standup-sydney/mcp-gateway/internal/metrics"
	"github.com/standup-sydney/mcp-gateway/internal/tools"
	"github.com/standup-sydney/mcp-gateway/internal/workflow"
	"github.com/standup-sydney/mcp-gateway/pkg/logger"
)

// main is the composition root: it loads configuration, builds the
// integration snapshot, wires the capabilities into the tool registry, seals
// it, and starts the server.
func main() {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: configuration error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.LogLevel, cfg.Env); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	buildInfo := GetBuildInfo()
	log.Infof("🚀 Starting Stand Up Sydney MCP Gateway | Version: %s | Commit: %s", buildInfo.Version, buildInfo.GitCommit)

	// 1. CONFIGURATION SNAPSHOT
	// Built once from the environment; read-only for the process lifetime.
	snapshot := config.Build(os.Getenv)
	log.Infof("✅ Integration snapshot built. Enabled: %v", snapshot.EnabledNames())

	// 2. OPTIONAL SERVICES
	metrics.Register()
	var recorder tools.Recorder
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancel()
		if err != nil {
			log.Fatalf("❌ Could not connect to Redis at %s: %v", cfg.RedisAddr, err)
		}
		recorder = audit.NewRecorder(rdb, cfg.Gateway.AuditStream, cfg.Gateway.AuditMaxLen)
		log.Infof("✅ Invocation audit trail enabled (stream %q)", cfg.Gateway.AuditStream)
	}

	// 3. REGISTRY, INVOKER, WORKFLOWS
	info := tools.ServerInfo{
		Name:      "Stand Up Sydney MCP Gateway",
		Version:   buildInfo.Version,
		GitCommit: buildInfo.GitCommit,
		Platform:  "comedy_booking_automation",
		StartedAt: time.Now().UTC(),
	}

	registry := tools.NewRegistry()
	invokerOpts := []tools.InvokerOption{tools.WithTimeout(cfg.Gateway.InvokeTimeout)}
	if recorder != nil {
		invokerOpts = append(invokerOpts, tools.WithRecorder(recorder))
	}
	invoker := tools.NewInvoker(registry, snapshot, invokerOpts...)
	reporter := tools.NewReporter(snapshot, registry, info)

	orchestrator := workflow.NewOrchestrator(invoker)
	if err := orchestrator.Define(workflow.BookingDefinition()); err != nil {
		log.Fatalf("❌ %v", err)
	}

	catalog := &tools.Catalog{
		Store:     backend.NewSupabaseClient(os.Getenv(config.EnvSupabaseURL), os.Getenv(config.EnvSupabaseAnonKey)),
		SourceCtl: backend.NewGitHubClient(os.Getenv(config.EnvGitHubToken)),
		Workspace: backend.NewNotionClient(os.Getenv(config.EnvNotionToken)),
		Promotion: backend.NewMetricoolClient(os.Getenv(config.EnvMetricoolAPIKey)),
		Browser:   backend.NewBrowserDriver(),
	}
	if err := registerAll(registry, catalog, reporter, orchestrator); err != nil {
		log.Fatalf("❌ Tool registration failed: %v", err)
	}
	registry.Seal()
	log.Infof("✅ Tool registry sealed with %d tools.", registry.Len())

	// 4. WEB SERVER
	gin.SetMode(os.Getenv("GIN_MODE"))
	handler := NewGatewayHandler(invoker, reporter, registry, info)
	engine := gin.Default()
	engine.GET("/health", handler.HandleHealth)
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	engine.POST("/mcp", handler.HandleMCP)
	v1 := engine.Group("/api/v1")
	{
		v1.GET("/tools", handler.HandleListTools)
		v1.POST("/tools/:name", handler.HandleInvoke)
	}

	srv := &http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), Handler: engine}
	runServerWithGracefulShutdown(srv)
}

// registerAll builds the complete tool catalog. Registration order is the
// order tools/list reports.
func registerAll(registry *tools.Registry, catalog *tools.Catalog, reporter *tools.Reporter, orchestrator *workflow.Orchestrator) error {
	if err := reporter.RegisterTools(registry); err != nil {
		return err
	}
	if err := catalog.Register(registry); err != nil {
		return err
	}
	return workflow.RegisterBookingTool(registry, orchestrator)
}

// runServerWithGracefulShutdown handles the server lifecycle.
func runServerWithGracefulShutdown(srv *http.Server) {
	log := logger.Get()

	go func() {
		log.Infof("👂 Gateway is listening on http://%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Listen error: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server shutdown failed: %v", err)
	}

	log.Info("👋 Server exited gracefully.")
}
