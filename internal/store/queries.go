package store

import (
	"fmt"
	"time"

	"github.com/blackwell-systems/depscout/internal/cache"
	"github.com/blackwell-systems/depscout/internal/project"
)

// RecordScan appends one scan row plus a result row per project and returns
// the new scan id.
func (s *Store) RecordScan(startedAt time.Time, entries []cache.Entry) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO scans (started_at, project_count) VALUES (?, ?)`,
		startedAt.UTC().Format(time.RFC3339), len(entries),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert scan: %w", err)
	}
	scanID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get scan id: %w", err)
	}

	for _, e := range entries {
		_, err := tx.Exec(
			`INSERT INTO scan_results
			 (scan_id, name, path, ecosystem, framework, outdated_count, major_count, security_count, score, checked_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			scanID, e.Name, e.Path, string(e.Ecosystem), e.Framework,
			e.Outdated, e.Major, e.Security, e.Score,
			e.CheckedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert result for %s: %w", e.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit scan: %w", err)
	}
	return scanID, nil
}

// RecentScans returns the newest scans first, up to limit.
func (s *Store) RecentScans(limit int) ([]Scan, error) {
	rows, err := s.db.Query(
		`SELECT id, started_at, project_count FROM scans ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query scans: %w", err)
	}
	defer rows.Close()

	var scans []Scan
	for rows.Next() {
		var scan Scan
		var startedAt string
		if err := rows.Scan(&scan.ID, &startedAt, &scan.ProjectCount); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		scan.StartedAt, err = time.Parse(time.RFC3339, startedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse started_at: %w", err)
		}
		scans = append(scans, scan)
	}
	return scans, rows.Err()
}

// ScanResults returns the per-project entries of one scan, ordered by name.
func (s *Store) ScanResults(scanID int64) ([]cache.Entry, error) {
	rows, err := s.db.Query(
		`SELECT name, path, ecosystem, framework, outdated_count, major_count, security_count, score, checked_at
		 FROM scan_results WHERE scan_id = ? ORDER BY name`, scanID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query scan results: %w", err)
	}
	defer rows.Close()

	var entries []cache.Entry
	for rows.Next() {
		var e cache.Entry
		var ecosystem, checkedAt string
		if err := rows.Scan(&e.Name, &e.Path, &ecosystem, &e.Framework,
			&e.Outdated, &e.Major, &e.Security, &e.Score, &checkedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		e.Ecosystem = project.Ecosystem(ecosystem)
		e.CheckedAt, err = time.Parse(time.RFC3339, checkedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse checked_at: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ProjectHistory returns a project's entries across scans, newest first.
func (s *Store) ProjectHistory(name string, limit int) ([]cache.Entry, error) {
	rows, err := s.db.Query(
		`SELECT name, path, ecosystem, framework, outdated_count, major_count, security_count, score, checked_at
		 FROM scan_results WHERE name = ? ORDER BY scan_id DESC LIMIT ?`, name, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query project history: %w", err)
	}
	defer rows.Close()

	var entries []cache.Entry
	for rows.Next() {
		var e cache.Entry
		var ecosystem, checkedAt string
		if err := rows.Scan(&e.Name, &e.Path, &ecosystem, &e.Framework,
			&e.Outdated, &e.Major, &e.Security, &e.Score, &checkedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		e.Ecosystem = project.Ecosystem(ecosystem)
		e.CheckedAt, err = time.Parse(time.RFC3339, checkedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse checked_at: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
