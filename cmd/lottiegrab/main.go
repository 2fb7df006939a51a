// Command lottiegrab is the Lottie animation discovery daemon.
//
// Usage:
//
//	lottiegrab -config lottiegrab.yaml       # full config
//	lottiegrab -url https://example.com      # watch a single page
//	lottiegrab -remote ws://127.0.0.1:9222   # attach to a running Chrome
//	lottiegrab -url https://example.com -mcp # also serve MCP tools on stdio
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	_ "modernc.org/sqlite"

	"github.com/jawish/lottiegrab"
)

func main() {
	configPath := flag.String("config", "", "path to lottiegrab.yaml config file")
	remote := flag.String("remote", "", "WebSocket URL of a running Chrome (overrides config)")
	singleURL := flag.String("url", "", "open and watch a single URL")
	apiAddr := flag.String("api", "", "HTTP API listen address (overrides config)")
	mcpStdio := flag.Bool("mcp", false, "serve MCP tools on stdio")
	dbPath := flag.String("db", "", "animation database path (overrides config)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *configPath, *remote, *singleURL, *apiAddr, *dbPath, *mcpStdio); err != nil {
		logger.Error("lottiegrab: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, configPath, remote, singleURL, apiAddr, dbPath string, mcpStdio bool) error {
	cfg := &lottiegrab.Config{}
	if configPath != "" {
		loaded, err := lottiegrab.LoadConfigFile(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if remote != "" {
		cfg.Browser.Remote = remote
	}
	if singleURL != "" {
		cfg.Browser.Open = append(cfg.Browser.Open, singleURL)
	}
	if apiAddr != "" {
		cfg.API.Addr = apiAddr
	}
	if dbPath != "" {
		cfg.Store.Path = dbPath
	}

	var sinks []lottiegrab.Sink
	for _, sc := range cfg.Sinks {
		switch sc.Type {
		case "stdout":
			sinks = append(sinks, lottiegrab.NewStdoutSink(nil))
		case "webhook":
			sinks = append(sinks, lottiegrab.NewWebhookSink(sc.URL, logger))
		default:
			logger.Warn("lottiegrab: unknown sink type", "type", sc.Type)
		}
	}
	if len(sinks) == 0 {
		sinks = append(sinks, lottiegrab.NewStdoutSink(nil))
	}

	g, err := lottiegrab.New(cfg, logger, sinks...)
	if err != nil {
		return err
	}
	defer g.Stop()

	if err := g.Start(ctx); err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	g.RegisterHTTP(r)

	srv := &http.Server{Addr: cfg.API.Addr, Handler: r}
	go func() {
		logger.Info("lottiegrab: HTTP API listening", "addr", cfg.API.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("lottiegrab: HTTP API", "error", err)
		}
	}()

	if mcpStdio {
		mcpSrv := mcp.NewServer(&mcp.Implementation{
			Name:    "lottiegrab",
			Version: "1.0.0",
		}, nil)
		g.RegisterMCP(mcpSrv)
		go func() {
			logger.Info("lottiegrab: MCP serving on stdio")
			if err := mcpSrv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
				logger.Error("lottiegrab: MCP", "error", err)
			}
		}()
	}

	<-ctx.Done()

	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		logger.Warn("lottiegrab: HTTP shutdown", "error", err)
	}
	return nil
}
