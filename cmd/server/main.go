package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"mitche/backend/internal/db"
	"mitche/backend/internal/logging"
	"mitche/backend/internal/routes"
)

// @title Mitché API
// @version 1.0
// @description Backend for the Mitché community mutual-aid platform.
// @host localhost:8080
// @BasePath /
func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize structured logging
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}

	if err := logging.Init(appEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Mitché starting up",
		"environment", appEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	// Connect to DB with sqlx
	if err := db.InitPostgres(); err != nil {
		logging.Error("Failed to connect to Postgres (sqlx)", "error", err.Error())
		log.Fatalf("❌ Failed to connect to Postgres (sqlx): %v", err)
	}
	logging.Info("Connected to Postgres (sqlx)")

	// Connect to DB with GORM
	host := os.Getenv("PG_HOST")
	port := os.Getenv("PG_PORT")
	user := os.Getenv("PG_USER")
	dbname := os.Getenv("PG_DB")
	password := os.Getenv("PG_PASSWORD")
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbname)

	if _, err := db.InitPostgresORM(dsn); err != nil {
		logging.Error("Failed to connect to Postgres (GORM)", "error", err.Error())
		log.Fatalf("❌ Failed to connect to Postgres (GORM): %v", err)
	}
	logging.Info("Connected to Postgres (GORM)")

	upSince := time.Now()

	// Initialize router with Chi
	// Note: metricsReg is created in RegisterRoutes and applied as global middleware
	router := routes.RegisterRoutes(upSince)

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router) // Mount Chi router at root
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	srv := &http.Server{
		Addr:    ":8080",
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logging.Info("Server starting", "port", 8080, "environment", appEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logging.Info("Shutdown signal received, draining connections")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("❌ Server exited: %v", err)
	}
	logging.Info("Server stopped")
}
