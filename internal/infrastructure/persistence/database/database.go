// Package database provides the database connection for Tiendo, supporting
// a local SQLite file or a remote libsql database selected by configuration.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/TiendoLabs/tiendo-go/pkg/config"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Database wraps the shared connection pool.
type Database struct {
	Conn     *sql.DB
	UseTurso bool
}

// Config selects the backing store. When TursoDatabase and TursoToken are set
// the remote libsql driver is used; otherwise SQLitePath.
type Config struct {
	SQLitePath    string
	TursoDatabase string
	TursoToken    string
}

// DefaultConfig builds a Config from the environment-driven defaults.
func DefaultConfig() *Config {
	return &Config{
		SQLitePath:    config.DatabasePath,
		TursoDatabase: config.TursoDatabaseURL,
		TursoToken:    config.TursoAuthToken,
	}
}

// New opens the configured database and verifies connectivity.
func New(cfg *Config) (*Database, error) {
	var conn *sql.DB
	var err error
	var useTurso bool

	if cfg.TursoDatabase != "" && cfg.TursoToken != "" {
		connStr := cfg.TursoDatabase + "?authToken=" + cfg.TursoToken
		conn, err = sql.Open("libsql", connStr)
		if err != nil {
			return nil, fmt.Errorf("turso connection failed: %w", err)
		}
		if err := conn.Ping(); err != nil {
			conn.Close()
			return nil, fmt.Errorf("turso ping failed: %w", err)
		}
		useTurso = true
	} else {
		dbDir := filepath.Dir(cfg.SQLitePath)
		if dbDir != "." {
			if err := os.MkdirAll(dbDir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}

		conn, err = sql.Open("sqlite3", cfg.SQLitePath+"?_foreign_keys=on")
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database: %w", err)
		}
		if err := conn.Ping(); err != nil {
			conn.Close()
			return nil, fmt.Errorf("SQLite database ping failed: %w", err)
		}
	}

	conn.SetMaxOpenConns(config.DBMaxOpenConns)
	conn.SetMaxIdleConns(config.DBMaxIdleConns)
	conn.SetConnMaxLifetime(time.Duration(config.DBConnMaxLifetimeMinutes) * time.Minute)
	conn.SetConnMaxIdleTime(time.Duration(config.DBConnMaxIdleMinutes) * time.Minute)

	return &Database{Conn: conn, UseTurso: useTurso}, nil
}

// Close releases the connection pool.
func (db *Database) Close() error {
	if db.Conn != nil {
		return db.Conn.Close()
	}
	return nil
}

// ConnectionInfo describes the active backend for startup logging.
func (db *Database) ConnectionInfo() string {
	if db.UseTurso {
		return "Turso (libsql)"
	}
	return "SQLite"
}
