package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"mitche/backend/internal/aggregator"
	"mitche/backend/internal/db"
	"mitche/backend/internal/metrics"
)

func main() {
	apply := flag.Bool("apply", false, "write updates; without this flag the run only reports what would change")
	pageSize := flag.Int("page-size", aggregator.DefaultPageSize, "ledger/user scan page size")
	flag.Parse()

	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags)

	host := os.Getenv("PG_HOST")
	port := os.Getenv("PG_PORT")
	user := os.Getenv("PG_USER")
	dbname := os.Getenv("PG_DB")
	password := os.Getenv("PG_PASSWORD")
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbname)

	gormDB, err := db.InitPostgresORM(dsn)
	if err != nil {
		log.Printf("Failed to connect to Postgres: %v", err)
		os.Exit(1)
	}

	agg := aggregator.New(gormDB, aggregator.Options{
		Apply:    *apply,
		PageSize: *pageSize,
		Metrics:  metrics.NewMetricsRegistry(),
	})

	if err := agg.Run(context.Background()); err != nil {
		log.Printf("Reconciliation failed: %v", err)
		os.Exit(1)
	}
}
