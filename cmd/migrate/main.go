package main

import (
	"context"
	"flag"
	"log"

	"github.com/muhammadchandra19/book-builder/pkg/config"
	"github.com/muhammadchandra19/book-builder/pkg/logger"
	"github.com/muhammadchandra19/book-builder/pkg/migration"
	"github.com/muhammadchandra19/book-builder/pkg/questdb"
)

func main() {
	var (
		dir    = flag.String("dir", "migrations/questdb", "Directory holding *.up.sql migrations")
		steps  = flag.Int("steps", 0, "Number of steps to migrate (0 = all)")
		status = flag.Bool("status", false, "List pending migrations and exit")
	)
	flag.Parse()

	ctx := context.Background()

	// Load configuration
	cfg := &config.Config{}
	if err := config.Load(cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Sink.QuestDB.Validate(); err != nil {
		log.Fatalf("Invalid QuestDB config: %v", err)
	}

	zlog, err := logger.NewLogger(
		logger.WithLoggingLevel(logger.ParseLevel(cfg.App.LogLevel)),
		logger.WithConsoleEncoding(),
	)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	// Initialize QuestDB client
	client, err := questdb.NewClient(ctx, cfg.Sink.QuestDB.Config)
	if err != nil {
		log.Fatalf("Failed to initialize QuestDB client: %v", err)
	}
	defer client.Close()

	runner := migration.NewRunner(client, *dir, zlog)

	// Ensure migration tracking table exists
	if err := runner.EnsureMigrationTable(ctx); err != nil {
		log.Fatalf("Failed to create migration table: %v", err)
	}

	if *status {
		pending, err := runner.Pending(ctx)
		if err != nil {
			log.Fatalf("Failed to list migrations: %v", err)
		}
		for _, m := range pending {
			log.Printf("pending: %s_%s", m.ID, m.Name)
		}
		log.Printf("%d pending migrations", len(pending))
		return
	}

	applied, err := runner.MigrateUp(ctx, *steps)
	if err != nil {
		log.Fatalf("Failed to migrate up: %v", err)
	}

	log.Printf("Migration up completed successfully, %d applied", applied)
}
