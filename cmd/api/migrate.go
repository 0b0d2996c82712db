// cmd/api/migrate.go
// This file applies the embedded goose migrations at startup.
package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/aoideee/courselibrary/migrations"
)

// gooseLogger forwards goose output to the application logger.
type gooseLogger struct {
	logger *slog.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...), slog.String("component", "migrations"))
}

// Fatalf logs at ERROR level only; migrate returns the error to main, which
// decides how to exit.
func (l gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...), slog.String("component", "migrations"))
}

// migrate brings the schema up to date. With reset set every migration is
// rolled back first, which reloads the seed data.
func migrate(db *sql.DB, logger *slog.Logger, reset bool) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(gooseLogger{logger: logger})

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if reset {
		logger.Warn("resetting database")
		if err := goose.Reset(db, "."); err != nil {
			return fmt.Errorf("failed to reset database: %w", err)
		}
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
