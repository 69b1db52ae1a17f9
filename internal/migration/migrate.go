package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// RunMigrations applies every embedded *.up.sql file, in lexical order, that
// has not been recorded in schema_migrations yet. Each file runs inside its
// own transaction.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	if _, err := db.Exec(
		`CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	); err != nil {
		return err
	}

	entries, err := embeddedMigrations.ReadDir(migrationsDir)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		applied, err := alreadyApplied(db, name)
		if err != nil {
			return err
		}
		if applied {
			continue
		}
		if err := applyOne(db, name); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

func alreadyApplied(db *sql.DB, version string) (bool, error) {
	var count int
	err := db.QueryRow(
		`SELECT COUNT(1) FROM schema_migrations WHERE version = ?`, version,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func applyOne(db *sql.DB, name string) error {
	contents, err := embeddedMigrations.ReadFile(migrationsDir + "/" + name)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(string(contents)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec(
		`INSERT INTO schema_migrations (version) VALUES (?)`, name,
	); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
