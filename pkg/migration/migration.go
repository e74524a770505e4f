package migration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/muhammadchandra19/book-builder/pkg/logger"
	"github.com/muhammadchandra19/book-builder/pkg/questdb"
)

const (
	ensureTableSQL = `CREATE TABLE IF NOT EXISTS schema_migrations (
			id STRING,
			name STRING,
			applied_at TIMESTAMP
		) TIMESTAMP(applied_at) PARTITION BY DAY`
	appliedSQL = `SELECT id FROM schema_migrations ORDER BY applied_at`
	recordSQL  = `INSERT INTO schema_migrations (id, name, applied_at) VALUES ($1, $2, now())`
)

// Migration represents a database migration
type Migration struct {
	ID        string
	Name      string
	Timestamp time.Time
	UpSQL     string
}

// Runner applies forward-only migrations to QuestDB. QuestDB cannot delete
// rows, so applied migrations are never reverted.
type Runner struct {
	client       questdb.QuestDBClient
	migrationDir string
	logger       logger.Interface
}

// NewRunner creates a new migration runner
func NewRunner(client questdb.QuestDBClient, migrationDir string, log logger.Interface) *Runner {
	return &Runner{
		client:       client,
		migrationDir: migrationDir,
		logger:       log,
	}
}

// EnsureMigrationTable creates the schema_migrations table if it doesn't exist
func (r *Runner) EnsureMigrationTable(ctx context.Context) error {
	return r.client.Exec(ctx, ensureTableSQL)
}

// GetAppliedMigrations returns the set of applied migration IDs
func (r *Runner) GetAppliedMigrations(ctx context.Context) (map[string]bool, error) {
	applied := make(map[string]bool)

	rows, err := r.client.Query(ctx, appliedSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		applied[id] = true
	}

	return applied, rows.Err()
}

// LoadMigrations loads every *.up.sql file of the migration directory, sorted by name.
func (r *Runner) LoadMigrations() ([]Migration, error) {
	upFiles, err := filepath.Glob(filepath.Join(r.migrationDir, "*.up.sql"))
	if err != nil {
		return nil, err
	}
	sort.Strings(upFiles)

	migrations := make([]Migration, 0, len(upFiles))
	for _, upFile := range upFiles {
		migration, err := parseMigrationFile(upFile)
		if err != nil {
			return nil, fmt.Errorf("failed to parse migration %s: %w", upFile, err)
		}
		migrations = append(migrations, migration)
	}

	return migrations, nil
}

// parseMigrationFile reads one migration named YYYYMMDDHHMMSS_name.up.sql.
func parseMigrationFile(upFilePath string) (Migration, error) {
	upContent, err := os.ReadFile(upFilePath)
	if err != nil {
		return Migration{}, err
	}

	id := strings.TrimSuffix(filepath.Base(upFilePath), ".up.sql")
	name := id
	parts := strings.SplitN(id, "_", 2)
	if len(parts) > 1 {
		name = parts[1]
	}

	timestamp, err := time.Parse("20060102150405", parts[0])
	if err != nil {
		// e.g. "001_initial"
		timestamp = time.Unix(0, 0)
	}

	return Migration{
		ID:        id,
		Name:      name,
		Timestamp: timestamp,
		UpSQL:     strings.TrimSpace(string(upContent)),
	}, nil
}

// Pending returns the migrations not yet applied, in order.
func (r *Runner) Pending(ctx context.Context) ([]Migration, error) {
	migrations, err := r.LoadMigrations()
	if err != nil {
		return nil, err
	}

	applied, err := r.GetAppliedMigrations(ctx)
	if err != nil {
		return nil, err
	}

	var pending []Migration
	for _, migration := range migrations {
		if !applied[migration.ID] {
			pending = append(pending, migration)
		}
	}
	return pending, nil
}

// MigrateUp applies up to steps pending migrations, all of them when steps
// is not positive. It returns the number applied.
func (r *Runner) MigrateUp(ctx context.Context, steps int) (int, error) {
	toApply, err := r.Pending(ctx)
	if err != nil {
		return 0, err
	}

	if steps > 0 && len(toApply) > steps {
		toApply = toApply[:steps]
	}

	applied := 0
	for _, migration := range toApply {
		if migration.UpSQL == "" {
			r.logger.Warn("migration has no SQL", logger.Field{Key: "migration", Value: migration.ID})
			continue
		}

		for _, stmt := range splitStatements(migration.UpSQL) {
			if err := r.client.Exec(ctx, stmt); err != nil {
				return applied, fmt.Errorf("failed to apply migration %s: %w", migration.ID, err)
			}
		}

		if err := r.client.Exec(ctx, recordSQL, migration.ID, migration.Name); err != nil {
			return applied, fmt.Errorf("failed to record migration %s: %w", migration.ID, err)
		}

		applied++
		r.logger.Info("applied migration", logger.Field{Key: "migration", Value: migration.ID})
	}

	return applied, nil
}

// splitStatements splits a script on semicolons; QuestDB runs one statement per call.
func splitStatements(script string) []string {
	var stmts []string
	for _, s := range strings.Split(script, ";") {
		if s = strings.TrimSpace(s); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
