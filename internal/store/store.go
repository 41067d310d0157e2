// Package store handles SQLite persistence of opened logs.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/jb4plot/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for open history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS opens (
			id INTEGER PRIMARY KEY,
			path TEXT NOT NULL,
			opened_at TEXT NOT NULL,
			size_bytes INTEGER NOT NULL,
			rows INTEGER NOT NULL,
			header_line INTEGER NOT NULL,
			start_time REAL NOT NULL,
			end_time REAL NOT NULL,
			boost_col TEXT NOT NULL,
			speed_col TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_opens_path ON opens(path);`,
		`CREATE INDEX IF NOT EXISTS idx_opens_opened_at ON opens(opened_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// RecordOpen stores one successful open and returns its row id.
func (s *Store) RecordOpen(ctx context.Context, rec model.OpenRecord) (int64, error) {
	if rec.OpenedAt.IsZero() {
		rec.OpenedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO opens (path, opened_at, size_bytes, rows, header_line, start_time, end_time, boost_col, speed_col)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Path,
		rec.OpenedAt.UTC().Format(time.RFC3339Nano),
		rec.SizeBytes,
		rec.Rows,
		rec.HeaderLine,
		rec.StartTime,
		rec.EndTime,
		rec.BoostCol,
		rec.SpeedCol,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListRecent returns the newest open of each distinct path, most recent first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]model.OpenRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	query := `SELECT o.id, o.path, o.opened_at, o.size_bytes, o.rows, o.header_line,
		o.start_time, o.end_time, o.boost_col, o.speed_col
	FROM opens o
	WHERE o.id = (SELECT MAX(id) FROM opens WHERE path = o.path)
	ORDER BY o.id DESC
	LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.OpenRecord
	for rows.Next() {
		var rec model.OpenRecord
		var openedAt string
		if err := rows.Scan(&rec.ID, &rec.Path, &openedAt, &rec.SizeBytes, &rec.Rows, &rec.HeaderLine,
			&rec.StartTime, &rec.EndTime, &rec.BoostCol, &rec.SpeedCol); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, openedAt)
		if err != nil {
			return nil, err
		}
		rec.OpenedAt = parsed
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// LastPath returns the most recently opened path, or "" when history is empty.
func (s *Store) LastPath(ctx context.Context) (string, error) {
	recent, err := s.ListRecent(ctx, 1)
	if err != nil || len(recent) == 0 {
		return "", err
	}
	return recent[0].Path, nil
}
