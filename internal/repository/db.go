package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialects supported by the store. The DSN decides: postgres URLs go through
// pgx, everything else is treated as a sqlite file path.
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

type Config struct {
	DSN         string
	DialTimeout time.Duration
}

// Open connects to the configured database, pings it, and ensures the
// invoices schema exists. It returns the handle and the resolved dialect.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*sql.DB, string, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 3 * time.Second
	}

	var db *sql.DB
	dialect := DialectSQLite
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		dialect = DialectPostgres
		pc, err := pgx.ParseConfig(cfg.DSN)
		if err != nil {
			logger.Error("db.parse_dsn_failed", "error", err)
			return nil, "", fmt.Errorf("parse postgres dsn: %w", err)
		}
		db = stdlib.OpenDB(*pc)
	} else {
		var err error
		db, err = sql.Open("sqlite", cfg.DSN)
		if err != nil {
			logger.Error("db.open_failed", "dsn", cfg.DSN, "error", err)
			return nil, "", fmt.Errorf("open sqlite: %w", err)
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		logger.Error("db.ping_failed", "dialect", dialect, "error", err)
		return nil, "", fmt.Errorf("ping database: %w", err)
	}

	if err := initSchema(ctx, db, dialect); err != nil {
		_ = db.Close()
		logger.Error("db.init_schema_failed", "dialect", dialect, "error", err)
		return nil, "", err
	}

	logger.Info("db.open_ok", "dialect", dialect)
	return db, dialect, nil
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS invoices (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	company_name  TEXT NOT NULL,
	invoice_date  DATE NOT NULL,
	total_amount  DECIMAL(10, 2) NOT NULL,
	created_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_invoice_date ON invoices(invoice_date);
CREATE INDEX IF NOT EXISTS idx_company_name ON invoices(company_name);`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS invoices (
	id            BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	company_name  TEXT NOT NULL,
	invoice_date  DATE NOT NULL,
	total_amount  NUMERIC(10, 2) NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_invoice_date ON invoices(invoice_date);
CREATE INDEX IF NOT EXISTS idx_company_name ON invoices(company_name);`

func initSchema(ctx context.Context, db *sql.DB, dialect string) error {
	schema := sqliteSchema
	if dialect == DialectPostgres {
		schema = postgresSchema
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}
