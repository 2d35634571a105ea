package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations holds the full schema history, applied in order. Analysis
// results are deliberately not stored: only uploaded recordings and their
// raw samples are persisted, derived series live for one run.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_recordings",
		SQL: `
			CREATE TABLE IF NOT EXISTS recordings (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				sample_rate REAL NOT NULL,
				sample_count INTEGER NOT NULL,
				duration_seconds REAL NOT NULL,
				has_accel INTEGER NOT NULL DEFAULT 0,
				uploaded_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`,
	},
	{
		Version: 2,
		Name:    "create_samples",
		SQL: `
			CREATE TABLE IF NOT EXISTS samples (
				recording_id TEXT NOT NULL,
				seq INTEGER NOT NULL,
				time_tick INTEGER NOT NULL,
				ecg REAL NOT NULL,
				acc_x REAL NOT NULL DEFAULT 0,
				acc_y REAL NOT NULL DEFAULT 0,
				acc_z REAL NOT NULL DEFAULT 0,
				PRIMARY KEY (recording_id, seq),
				FOREIGN KEY (recording_id) REFERENCES recordings(id) ON DELETE CASCADE
			)
		`,
	},
}

// InitMigrationsTable creates the migrations tracking table
func InitMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// appliedVersions returns the set of already applied migration versions
func appliedVersions(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
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

// Migrate applies all pending migrations in version order
func Migrate(db *sql.DB) error {
	if err := InitMigrationsTable(db); err != nil {
		return err
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}

		if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}

		log.Printf("Applied migration %d: %s", m.Version, m.Name)
	}

	return nil
}
