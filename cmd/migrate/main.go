// Command migrate applies, inspects and rolls back the blog schema.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"strconv"
	"strings"

	"scribe/internal/config"
	"scribe/internal/database"
	"scribe/internal/middleware"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: migrate <up|auto|status|down <version>|redo>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := middleware.NewLogger(cfg.Env, "")

	db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{ApplySchema: false})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	ctx := context.Background()
	switch cmd := strings.ToLower(strings.TrimSpace(flag.Arg(0))); cmd {
	case "up":
		if cfg.DBDriver == "sqlite" {
			return fmt.Errorf("sql migrations target postgres; use \"auto\" for sqlite")
		}
		if err := database.RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("sql migrations failed: %w", err)
		}
		logger.Info("sql migrations applied")
	case "auto":
		cfg.DBSchemaMode = database.SchemaModeAuto
		if err := database.ApplySchema(ctx, db, cfg); err != nil {
			return fmt.Errorf("auto schema apply failed: %w", err)
		}
		logger.Info("automigrations applied")
	case "status":
		status, err := database.GetSchemaStatus(ctx, db, cfg)
		if err != nil {
			return fmt.Errorf("schema status failed: %w", err)
		}
		logger.Info("schema status",
			slog.String("mode", status.Mode),
			slog.String("env", status.Environment),
			slog.Bool("run_sql", status.WillRunSQL),
			slog.Bool("run_auto", status.WillRunAutoMigrate),
			slog.Int("applied", len(status.AppliedVersions)),
			slog.Int("pending", len(status.PendingMigrations)),
			slog.Any("missing_tables", status.MissingTables),
		)
		for _, m := range status.PendingMigrations {
			logger.Info("pending migration", slog.String("migration", m.String()))
		}
	case "down":
		if flag.NArg() < 2 {
			return fmt.Errorf("usage: migrate down <version>")
		}
		version, err := strconv.Atoi(flag.Arg(1))
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", flag.Arg(1), err)
		}
		if err := database.RollbackMigration(ctx, db, version); err != nil {
			return fmt.Errorf("rollback failed: %w", err)
		}
		logger.Info("rolled back migration", slog.Int("version", version))
	case "redo":
		status, err := database.GetSchemaStatus(ctx, db, cfg)
		if err != nil {
			return fmt.Errorf("schema status failed: %w", err)
		}
		if len(status.AppliedVersions) == 0 {
			return fmt.Errorf("no applied migration to redo")
		}
		latest := status.AppliedVersions[len(status.AppliedVersions)-1]
		if err := database.RollbackMigration(ctx, db, latest); err != nil {
			return fmt.Errorf("rollback failed: %w", err)
		}
		if err := database.RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("sql migrations failed: %w", err)
		}
		logger.Info("migration redone", slog.Int("version", latest))
	default:
		return usage()
	}

	return nil
}
