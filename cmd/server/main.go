package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "golfcart-dashboard/internal/api/http"
	"golfcart-dashboard/internal/config"
	"golfcart-dashboard/internal/jobs"
	"golfcart-dashboard/internal/logger"
	"golfcart-dashboard/internal/repository"
	"golfcart-dashboard/internal/repository/backend"
	"golfcart-dashboard/internal/repository/postgres"
	"golfcart-dashboard/internal/scheduler"
	"golfcart-dashboard/internal/security"
	"golfcart-dashboard/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a job once and exit ('refresh' or 'overdue')")
	issueToken := flag.String("issue-token", "", "Print a session token for the given subject and exit")
	tokenTTL := flag.Duration("token-ttl", 12*time.Hour, "Lifetime of a token printed by -issue-token")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting golf cart dashboard...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)

	tokenManager := security.NewTokenManager(cfg.JWT.Secret)
	if *issueToken != "" {
		token, err := tokenManager.IssueToken(*issueToken, "", *tokenTTL)
		if err != nil {
			log.Fatalf("Failed to issue token: %v", err)
		}
		fmt.Println(token)
		return
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		logger.Error("Failed to open store", "type", cfg.Backend.Type, "error", err)
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	dashboard := service.NewDashboardService(store, service.Options{
		Location:       cfg.Location(),
		Grace:          cfg.GracePeriod(),
		StartMode:      cfg.Reservation.StartMode,
		RejectOverlaps: cfg.Reservation.RejectOverlaps,
		TickInterval:   cfg.TickInterval(),
	})
	defer dashboard.Close()

	jobRunner := jobs.NewJobRunner(dashboard, cfg)

	if *runOnce != "" {
		if *runOnce == "overdue" {
			// The overdue report reads the snapshot, so load it first.
			jobRunner.RefreshSnapshot()
		}
		if !jobRunner.RunOnce(*runOnce) {
			log.Fatalf("Unknown job: %s", *runOnce)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RefreshTimeout())
	report := dashboard.Refresh(ctx)
	cancel()
	if err := report.Err(); err != nil {
		logger.Warn("Initial snapshot incomplete", "error", err)
	}

	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	router := httpapi.NewRouter(dashboard, tokenManager, httpapi.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})
	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       time.Minute,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Received shutdown signal", "signal", sig.String())
	case err := <-serverErr:
		logger.Error("HTTP server error", "error", err)
	}

	// Ends the websocket streams, which Shutdown does not wait for.
	dashboard.Close()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}

// openStore connects to the configured source of rentals, carts, clients and
// vendors. The returned func releases it.
func openStore(cfg *config.Config) (repository.Store, func(), error) {
	switch cfg.Backend.Type {
	case config.BackendPostgres:
		logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			return repository.Store{}, nil, err
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return repository.Store{}, nil, fmt.Errorf("ping database: %w", err)
		}
		logger.Info("Database connection established")
		return postgres.NewStore(db).Repositories(), func() { db.Close() }, nil

	default:
		logger.Info("Using rental backend", "base_url", cfg.Backend.BaseURL, "retry_attempts", cfg.Backend.RetryAttempts)
		client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Token, cfg.BackendTimeout(), backend.RetryPolicy{
			Attempts: cfg.Backend.RetryAttempts,
			Backoff:  cfg.RetryBackoff(),
		})
		return backend.NewStore(client, cfg.Location()), func() {}, nil
	}
}
