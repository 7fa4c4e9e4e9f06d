// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteDatabase is a local catalog for offline use.
type SQLiteDatabase struct {
	db *sql.DB
}

// OpenSQLite opens or creates the catalog at path.
func OpenSQLite(path string) (*SQLiteDatabase, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run %q: %w", pragma, err)
		}
	}

	s := &SQLiteDatabase{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

func (s *SQLiteDatabase) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS tiles (
		type TEXT NOT NULL,
		name TEXT NOT NULL,
		seed INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		noise TEXT NOT NULL DEFAULT '',
		created INTEGER NOT NULL,
		PRIMARY KEY (type, name)
	)`)
	return err
}

// PutRecord inserts record, replacing any record with the same type and name.
func (s *SQLiteDatabase) PutRecord(record Record) error {
	_, err := s.db.Exec(`INSERT INTO tiles (type, name, seed, width, height, noise, created)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (type, name) DO UPDATE SET
			seed = excluded.seed,
			width = excluded.width,
			height = excluded.height,
			noise = excluded.noise,
			created = excluded.created`,
		record.Type, record.Name, record.Seed, record.Width, record.Height, record.Noise, record.Created)
	if err != nil {
		return fmt.Errorf("failed to put record %s/%s: %w", record.Type, record.Name, err)
	}
	return nil
}

func (s *SQLiteDatabase) ReadRecords() ([]Record, error) {
	return s.query(`SELECT type, name, seed, width, height, noise, created FROM tiles ORDER BY type, name`)
}

func (s *SQLiteDatabase) ReadRecordsByType(tileType string) ([]Record, error) {
	return s.query(`SELECT type, name, seed, width, height, noise, created FROM tiles WHERE type = ? ORDER BY name`, tileType)
}

func (s *SQLiteDatabase) query(query string, args ...interface{}) ([]Record, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Type, &r.Name, &r.Seed, &r.Width, &r.Height, &r.Noise, &r.Created); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *SQLiteDatabase) Close() error {
	return s.db.Close()
}
