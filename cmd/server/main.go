package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/wanderlist/internal/config"
	"github.com/rpggio/wanderlist/internal/dispatch"
	"github.com/rpggio/wanderlist/internal/docstore"
	"github.com/rpggio/wanderlist/internal/domain/expense"
	"github.com/rpggio/wanderlist/internal/domain/user"
	"github.com/rpggio/wanderlist/internal/identity"
	"github.com/rpggio/wanderlist/internal/logging"
	"github.com/rpggio/wanderlist/internal/mcp"
	"github.com/rpggio/wanderlist/internal/planner"
	"github.com/rpggio/wanderlist/internal/sqlite"
	"github.com/rpggio/wanderlist/internal/state"
	"github.com/rpggio/wanderlist/internal/suggest"
	"github.com/rpggio/wanderlist/internal/transport"
	"github.com/rpggio/wanderlist/internal/weather"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	if cfg.Log.Path != "" {
		fileWriter, err := logging.OpenFile(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer fileWriter.Close()
			logWriter = fileWriter
		}
	}
	logger := logging.New(logWriter, cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A missing database is not fatal: the server still starts and every
	// tool reports the store as unavailable.
	var store docstore.Store
	db, err := openDB(cfg.DB.Path)
	if err != nil {
		logger.Error("document store unavailable", "path", cfg.DB.Path, "error", err)
	}
	if db != nil {
		defer db.Close()
		documents := sqlite.NewDocumentStore(db, cfg.Store.PollInterval, logger)
		defer documents.Close()
		store = documents
	}

	cache := state.New(store, logger)
	if err := cache.Start(ctx); err != nil {
		logger.Error("failed to watch collections", "error", err)
	}
	defer cache.Close()
	if cache.Available() {
		waitCtx, cancel := context.WithTimeout(ctx, cfg.Store.ReadyTimeout)
		for _, name := range []string{docstore.Trips, docstore.Users} {
			if err := cache.WaitReady(waitCtx, name); err != nil {
				logger.Warn("collection not loaded at startup", "collection", name, "error", err)
			}
		}
		cancel()
	}

	userID, err := deviceID(ctx, cfg.Identity, db, logger)
	if err != nil {
		logger.Error("failed to resolve device id", "error", err)
		os.Exit(1)
	}
	if store != nil {
		if _, err := user.NewService(store, logger).Ensure(ctx, userID); err != nil {
			logger.Warn("failed to ensure user profile", "user_id", userID, "error", err)
		}
	}

	backend, err := suggest.NewBackend(ctx, cfg.AI.Provider, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.BaseURL)
	if err != nil {
		logger.Warn("ai provider disabled", "provider", cfg.AI.Provider, "error", err)
		backend = nil
	}
	suggester := suggest.NewClient(backend, logger)
	defer suggester.Close()

	opts := planner.Options{
		Suggester: suggester,
		Converter: expense.NewConverter(cfg.Currency.Reporting, cfg.Currency.Foreign, cfg.Currency.Rate),
	}
	if cfg.Weather.Enabled {
		opts.Weather = weather.NewClient(weather.Config{
			GeocodingURL: cfg.Weather.GeocodingURL,
			ForecastURL:  cfg.Weather.ForecastURL,
			Language:     cfg.Weather.Language,
			Timeout:      cfg.Weather.Timeout,
		}, logger)
	}
	svc := planner.NewService(cache, dispatch.New(store, logger), userID, opts, logger)

	mcpServer := mcp.NewServer(mcp.Config{
		Planner:        svc,
		StoreAvailable: cache.Available,
		TransportMode:  cfg.Transport.Mode,
		Version:        version,
		Logger:         logger,
	})

	logger.Info("wanderlist starting",
		"version", version,
		"transport", cfg.Transport.Mode,
		"user_id", userID,
		"store", cache.Available(),
		"ai", suggester.Enabled(),
		"weather", cfg.Weather.Enabled,
	)

	if cfg.Transport.Mode == "stdio" {
		runStdioMode(ctx, logger, mcpServer)
	} else {
		runHTTPMode(ctx, logger, mcpServer, cache.Available, cfg.Server.Host, cfg.Server.Port)
	}
}

// openDB opens and migrates the database. An empty path means no database.
func openDB(path string) (*sqlite.DB, error) {
	if path == "" {
		return nil, errors.New("no database path configured")
	}
	if err := ensureDBDir(path); err != nil {
		return nil, fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// deviceID returns the persistent id of this installation. The YAML file is
// the default. The settings table is used only when configured and available.
func deviceID(ctx context.Context, cfg config.IdentityConfig, db *sqlite.DB, logger *slog.Logger) (string, error) {
	var kv identity.KeyValueStore
	if cfg.Store == "sqlite" && db != nil {
		kv = sqlite.NewSettingsRepository(db)
	} else {
		kv = identity.NewFileStore(cfg.Path)
	}
	return identity.NewProvider(kv, logger).GetOrCreate(ctx)
}

func runStdioMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport")

	// Run blocks until stdin closes or the context is canceled.
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
	logger.Info("shutting down")
}

func runHTTPMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server, storeAvailable func() bool, host string, port int) {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           transport.NewRouter(mcpHandler, storeAvailable, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(ctx, logger, httpServer)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(ctx context.Context, logger *slog.Logger, server *http.Server) {
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
