package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/fitlog/internal/config"
	"github.com/claude/fitlog/internal/importer"
	"github.com/claude/fitlog/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	dbPath := flag.String("path", "", "path to legacy fitness.db SQLite file (required)")
	dryRun := flag.Bool("dry-run", false, "report counts without inserting into database")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *dbPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: fitlog-import -config config.yaml -path /path/to/fitness.db [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if info, err := os.Stat(*dbPath); err != nil || info.IsDir() {
		log.Error("legacy database file does not exist", "path", *dbPath)
		os.Exit(1)
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := cfg.Database.DSN()

	// Run migrations
	if err := storage.RunMigrations(dsn, cfg.Database.MigrationsDir); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	ctx := context.Background()

	if *dryRun {
		log.Info("DRY RUN mode — no data will be written to the database")
	}

	// Connect database
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	// Run import
	imp := importer.New(db, log, *dryRun)
	stats, err := imp.Import(ctx, *dbPath)
	if err != nil {
		log.Error("import failed", "error", err)
		printStats(log, stats)
		os.Exit(1)
	}

	printStats(log, stats)
	log.Info("import complete")
}

func printStats(log *slog.Logger, stats *importer.Stats) {
	log.Info("import stats",
		"users_inserted", stats.UsersInserted,
		"users_skipped", stats.UsersSkipped,
		"programs_inserted", stats.ProgramsInserted,
		"workouts_inserted", stats.WorkoutsInserted,
		"workouts_orphaned", stats.WorkoutsOrphaned,
		"goals_inserted", stats.GoalsInserted,
	)
}
