package config

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"github.com/psurana/pulse-etl/etl/utils"
)

// EnsureDatabase creates the target database when the server supports it.
// SQLite databases are plain files and come into existence on open.
func EnsureDatabase(cfg DatabaseConfig, logger *utils.ETLLogger) error {
	if cfg.Driver != "mysql" {
		return nil
	}

	db, err := sql.Open(cfg.Driver, cfg.ServerDSN())
	if err != nil {
		return fmt.Errorf("connecting to database server: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec("CREATE DATABASE IF NOT EXISTS " + cfg.Name); err != nil {
		return fmt.Errorf("creating database %s: %w", cfg.Name, err)
	}
	logger.Info("Database %q created or already exists", cfg.Name)
	return nil
}

// ConnectDatabase opens the sink connection, tunes the pool and verifies the
// connection with a ping.
func ConnectDatabase(cfg DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening sink connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sink: %w", err)
	}

	return db, nil
}

// CloseDatabase releases the sink connection.
func CloseDatabase(db *sql.DB, logger *utils.ETLLogger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Error("Closing sink connection: %v", err)
		return
	}
	logger.Info("Sink connection closed")
}
