package importer

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrUnknownSource is returned for an adapter ID that has no row.
var ErrUnknownSource = errors.New("unknown source")

// Source represents a row from the corpus_sources table.
type Source struct {
	AdapterID   string
	CorpusID    string
	Description string
	SourceURL   string
	License     string
	LastCheck   *int64
	LastStatus  *int
	LastError   *string
	LastImport  *int64
	LastWords   *int
	UpdatedAt   int64
}

// SourceDB records where each corpus is imported from, when it was last
// imported and whether the source is still reachable.
type SourceDB struct {
	db *sql.DB
}

// OpenSourceDB opens (or creates) the SQLite database at path and ensures the
// corpus_sources table exists.
func OpenSourceDB(path string) (*SourceDB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open source db: %w", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS corpus_sources (
		adapter_id   TEXT PRIMARY KEY,
		corpus_id    TEXT NOT NULL,
		description  TEXT NOT NULL,
		source_url   TEXT NOT NULL,
		license      TEXT NOT NULL DEFAULT '',
		last_check   INTEGER,
		last_status  INTEGER,
		last_error   TEXT,
		last_import  INTEGER,
		last_words   INTEGER,
		updated_at   INTEGER NOT NULL
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create corpus_sources table: %w", err)
	}

	return &SourceDB{db: db}, nil
}

func (s *SourceDB) Close() error {
	return s.db.Close()
}

// Seed inserts a default row per adapter. Existing rows are left alone so
// that URL overrides survive restarts.
func (s *SourceDB) Seed(adapters []Adapter) error {
	const q = `INSERT OR IGNORE INTO corpus_sources
		(adapter_id, corpus_id, description, source_url, license, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	now := time.Now().Unix()
	for _, a := range adapters {
		if _, err := s.db.Exec(q, a.ID(), a.CorpusID(), a.Description(), a.DefaultURL(), a.License(), now); err != nil {
			return fmt.Errorf("seed %s: %w", a.ID(), err)
		}
	}
	return nil
}

// GetURL returns the current source URL for a given adapter ID.
func (s *SourceDB) GetURL(adapterID string) (string, error) {
	var url string
	err := s.db.QueryRow(`SELECT source_url FROM corpus_sources WHERE adapter_id = ?`, adapterID).Scan(&url)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("get url: %w %q", ErrUnknownSource, adapterID)
	}
	if err != nil {
		return "", fmt.Errorf("get url for %s: %w", adapterID, err)
	}
	return url, nil
}

// SetURL updates the source URL for a given adapter and records the change timestamp.
func (s *SourceDB) SetURL(adapterID, url string) error {
	return s.update(adapterID, "set url",
		`UPDATE corpus_sources SET source_url = ?, updated_at = ? WHERE adapter_id = ?`,
		url, time.Now().Unix(), adapterID)
}

// UpdateCheck persists the result of an availability check.
func (s *SourceDB) UpdateCheck(adapterID string, status int, checkErr string) error {
	var errPtr *string
	if checkErr != "" {
		errPtr = &checkErr
	}
	return s.update(adapterID, "update check",
		`UPDATE corpus_sources SET last_check = ?, last_status = ?, last_error = ? WHERE adapter_id = ?`,
		time.Now().Unix(), status, errPtr, adapterID)
}

// RecordImport stores the time and word count of a successful import.
func (s *SourceDB) RecordImport(adapterID string, words int) error {
	return s.update(adapterID, "record import",
		`UPDATE corpus_sources SET last_import = ?, last_words = ? WHERE adapter_id = ?`,
		time.Now().Unix(), words, adapterID)
}

func (s *SourceDB) update(adapterID, op, query string, args ...any) error {
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("%s for %s: %w", op, adapterID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w %q", op, ErrUnknownSource, adapterID)
	}
	return nil
}

// ListSources returns all rows ordered by adapter_id.
func (s *SourceDB) ListSources() ([]Source, error) {
	rows, err := s.db.Query(`SELECT adapter_id, corpus_id, description, source_url, license,
		last_check, last_status, last_error, last_import, last_words, updated_at
		FROM corpus_sources ORDER BY adapter_id`)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	defer rows.Close()

	var sources []Source
	for rows.Next() {
		var src Source
		if err := rows.Scan(&src.AdapterID, &src.CorpusID, &src.Description, &src.SourceURL,
			&src.License, &src.LastCheck, &src.LastStatus, &src.LastError,
			&src.LastImport, &src.LastWords, &src.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		sources = append(sources, src)
	}
	return sources, rows.Err()
}
