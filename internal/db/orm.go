package db

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PgDB is the GORM handle shared by the repositories and the aggregator.
var PgDB *gorm.DB

func InitPostgresORM(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	PgDB = db
	log.Println("Connected to Postgres via GORM (users, echoes, ledger, achievements)")
	return db, nil
}
