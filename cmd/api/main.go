// Package main is the entry point for the course library API server.
// It wires together configuration, the database connection, and the HTTP router.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/aoideee/courselibrary/internal/config"
	"github.com/aoideee/courselibrary/internal/data"
	"github.com/aoideee/courselibrary/internal/mapping"

	_ "github.com/lib/pq" // Register the PostgreSQL driver with database/sql.
)

// appVersion is the current version of the API, shown in logs.
const appVersion = "1.0.0"

// applicationDependencies bundles every shared resource that HTTP handlers need.
// A pointer to this struct is passed as the receiver on all handler and route methods.
type applicationDependencies struct {
	config   *config.Config    // Settings from defaults, file, environment and flags
	logger   *slog.Logger      // Structured logger that writes to stdout
	models   data.Models       // Stores for authors and courses
	mappings *mapping.Registry // Sealed public-to-storage property mappings
}

// main is the application entry point.
// It loads configuration, opens and migrates the database, wires up
// dependencies, and starts the HTTP server.
func main() {
	var (
		configPath string
		port       int
		env        string
		resetDB    bool
	)

	// Flags override the loaded configuration when set.
	flag.StringVar(&configPath, "config", "", "Path to a YAML config file")
	flag.IntVar(&port, "port", 0, "Server port (overrides server.port)")
	flag.StringVar(&env, "env", "", "Environment(development|staging|production)")
	flag.BoolVar(&resetDB, "reset-db", false, "Roll back and re-apply all migrations on startup")

	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if env != "" {
		cfg.Server.Env = env
	}
	if resetDB {
		cfg.Database.ResetOnStart = true
	}

	logger := newLogger(cfg.Server)

	// Open and verify the database connection pool.
	db, err := openDB(cfg.Database)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	defer db.Close() // Close the pool cleanly when main() returns.

	logger.Info("database connection pool established")

	err = migrate(db, logger, cfg.Database.ResetOnStart)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	mappings := data.NewPropertyMappings()

	// Bundle all shared dependencies into a single struct.
	appInstance := &applicationDependencies{
		config:   cfg,
		logger:   logger,
		models:   data.NewModels(db, mappings),
		mappings: mappings,
	}

	logger.Info("starting course library", "version", appVersion)

	err = appInstance.serve()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// newLogger returns a text logger in development and a JSON logger
// elsewhere, filtered at the configured level.
func newLogger(cfg config.ServerConfig) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Env == "development" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

// openDB opens a PostgreSQL connection pool sized from cfg, then pings the
// database with a 5-second timeout to confirm it is reachable.
// Returns the pool on success, or an error if the connection cannot be established.
func openDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	// sql.Open only validates the DSN format; it does not actually connect yet.
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxIdleTime(cfg.MaxIdleTime)

	// Create a context that cancels automatically after 5 seconds.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// PingContext performs a real round-trip to verify the database is reachable.
	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
