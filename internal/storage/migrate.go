package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// migration is one numbered schema step, read from
// migrations/NNNN_name.{up,down}.sql.
type migration struct {
	version int
	up      string
	down    string
}

// MigrateUp applies every migration newer than the schema version recorded in
// PRAGMA user_version.
func MigrateUp(db *sql.DB) error {
	steps, err := loadMigrations()
	if err != nil {
		return err
	}
	current, err := schemaVersion(db)
	if err != nil {
		return err
	}
	for _, step := range steps {
		if step.version <= current {
			continue
		}
		if err := applyMigration(db, step.up, step.version); err != nil {
			return fmt.Errorf("migrate up to %d: %w", step.version, err)
		}
	}
	return nil
}

// MigrateDown reverts every applied migration, newest first.
func MigrateDown(db *sql.DB) error {
	steps, err := loadMigrations()
	if err != nil {
		return err
	}
	current, err := schemaVersion(db)
	if err != nil {
		return err
	}
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		if step.version > current {
			continue
		}
		previous := 0
		if i > 0 {
			previous = steps[i-1].version
		}
		if err := applyMigration(db, step.down, previous); err != nil {
			return fmt.Errorf("migrate down from %d: %w", step.version, err)
		}
	}
	return nil
}

func loadMigrations() ([]migration, error) {
	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("glob migrations: %w", err)
	}
	byVersion := make(map[int]*migration)
	for _, name := range names {
		base := path.Base(name)
		prefix, _, ok := strings.Cut(base, "_")
		if !ok {
			return nil, fmt.Errorf("migration %s: missing version prefix", base)
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("migration %s: bad version: %w", base, err)
		}
		body, err := migrationFiles.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", base, err)
		}
		step := byVersion[version]
		if step == nil {
			step = &migration{version: version}
			byVersion[version] = step
		}
		switch {
		case strings.HasSuffix(base, ".up.sql"):
			step.up = string(body)
		case strings.HasSuffix(base, ".down.sql"):
			step.down = string(body)
		}
	}

	out := make([]migration, 0, len(byVersion))
	for _, step := range byVersion {
		if step.up == "" || step.down == "" {
			return nil, fmt.Errorf("migration %04d: needs both up and down files", step.version)
		}
		out = append(out, *step)
	}
	slices.SortFunc(out, func(a, b migration) int { return a.version - b.version })
	return out, nil
}

func schemaVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

func applyMigration(db *sql.DB, script string, version int) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec(script); err != nil {
		return err
	}
	// PRAGMA does not take bind parameters.
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", version)); err != nil {
		return err
	}
	return tx.Commit()
}
