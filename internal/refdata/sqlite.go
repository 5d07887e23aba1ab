package refdata

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/craneworks/crane-valuation/pkg/crane"
)

// loadComparablesSQLite reads comparable listings from a SQLite database
// maintained by the surrounding platform's listing importer. The table
// mirrors the YAML layout; rows without a positive price are filtered by the
// caller.
func loadComparablesSQLite(path string) ([]crane.ComparableRecord, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat comparables database: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open comparables database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`
SELECT manufacturer, model_title, year, hours, capacity_tons, price, location, source_tag
FROM comparables`)
	if err != nil {
		return nil, fmt.Errorf("query comparables: %w", err)
	}
	defer rows.Close()

	var records []crane.ComparableRecord
	for rows.Next() {
		var r crane.ComparableRecord
		if err := rows.Scan(&r.Manufacturer, &r.ModelTitle, &r.Year, &r.Hours,
			&r.CapacityTons, &r.Price, &r.Location, &r.SourceTag); err != nil {
			return nil, fmt.Errorf("scan comparable row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comparables: %w", err)
	}
	return records, nil
}

// EnsureComparablesSchema creates the comparables table when pointing the
// loader at a fresh database, mainly for tests and local development.
func EnsureComparablesSchema(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("open comparables database: %w", err)
	}
	defer db.Close()

	const createTable = `
CREATE TABLE IF NOT EXISTS comparables (
  manufacturer TEXT NOT NULL,
  model_title TEXT NOT NULL,
  year INTEGER NOT NULL DEFAULT 0,
  hours INTEGER NOT NULL DEFAULT 0,
  capacity_tons REAL NOT NULL DEFAULT 0,
  price REAL NOT NULL DEFAULT 0,
  location TEXT NOT NULL DEFAULT '',
  source_tag TEXT NOT NULL DEFAULT ''
);`
	if _, err := db.Exec(createTable); err != nil {
		return fmt.Errorf("create comparables table: %w", err)
	}
	return nil
}

// InsertComparables bulk-inserts records, used by tests and seed tooling.
func InsertComparables(path string, records []crane.ComparableRecord) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("open comparables database: %w", err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO comparables
(manufacturer, model_title, year, hours, capacity_tons, price, location, source_tag)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.Manufacturer, r.ModelTitle, r.Year, r.Hours,
			r.CapacityTons, r.Price, r.Location, r.SourceTag); err != nil {
			return err
		}
	}
	return tx.Commit()
}
