package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migration is one numbered schema change. Files are named 001_name.sql and
// hold an Up part and a Down part separated by "-- +migrate Down".
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// Migrations returns the embedded migrations ordered by version.
func Migrations() ([]Migration, error) {
	return loadMigrations(migrationFiles, "migrations")
}

func loadMigrations(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	var out []Migration
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		version := migrationVersion(e.Name())
		if version == 0 {
			return nil, fmt.Errorf("invalid migration file name: %s", e.Name())
		}

		content, err := fs.ReadFile(fsys, dir+"/"+e.Name())
		if err != nil {
			return nil, err
		}
		parts := strings.Split(string(content), "-- +migrate Down")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid migration file format: %s", e.Name())
		}

		out = append(out, Migration{
			Version: version,
			Name:    e.Name(),
			Up:      strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(parts[0]), "-- +migrate Up")),
			Down:    strings.TrimSpace(parts[1]),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

func migrationVersion(filename string) int {
	var version int
	if _, err := fmt.Sscanf(filename, "%d_", &version); err != nil {
		return 0
	}
	return version
}

// RunMigrations applies every embedded migration not yet recorded in
// schema_migrations, each in its own transaction.
func RunMigrations(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	migrations, err := Migrations()
	if err != nil {
		return err
	}
	return applyMigrations(ctx, db, migrations, log)
}

func applyMigrations(ctx context.Context, db *sql.DB, migrations []Migration, log *zap.Logger) error {
	const createTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version    INTEGER PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	if _, err := db.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if err := applyMigration(ctx, db, m); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", m.Version, err)
		}
		log.Info("applied migration", zap.Int("version", m.Version), zap.String("name", m.Name))
	}
	return nil
}

func appliedVersions(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func applyMigration(ctx context.Context, db *sql.DB, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.Up); err != nil {
		return fmt.Errorf("failed to execute migration: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, m.Version); err != nil {
		return fmt.Errorf("failed to mark migration as applied: %w", err)
	}
	return tx.Commit()
}
