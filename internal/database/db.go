package database

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/clubhub/backend/internal/config"
)

// Connect opens the MySQL connection and verifies it is reachable. The
// handle is passed explicitly to every component; there is no package-level
// connection.
func Connect(cfg config.MySQLConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("database: failed to connect: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("database: connection is not active: %w", err)
	}

	return db, nil
}
