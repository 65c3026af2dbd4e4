package db

import (
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// DB is the sqlx handle used for raw-SQL reads such as the ledger
// reconciliation totals; row writes go through the GORM handle in orm.go.
var DB *sqlx.DB

func InitPostgres() error {

	host := os.Getenv("PG_HOST")
	port := os.Getenv("PG_PORT")
	user := os.Getenv("PG_USER")
	dbname := os.Getenv("PG_DB")
	if dbname == "" {
		dbname = "mitche"
	}
	password := os.Getenv("PG_PASSWORD")
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbname)

	var err error

	for i := 0; i < 10; i++ {
		DB, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return err

}
