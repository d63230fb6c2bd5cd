package stagescan

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Record is a persisted project with tracking timestamps.
type Record struct {
	Slug        string          `json:"slug"`
	DisplayName string          `json:"display_name"`
	Status      string          `json:"status"`
	Phase       Phase           `json:"phase"`
	Stage       string          `json:"stage"`
	Files       map[string]bool `json:"files"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

// Summary holds aggregate counts across all tracked projects.
type Summary struct {
	TotalProjects int           `json:"total_projects"`
	ByStatus      map[string]int `json:"by_status"`
	ByPhase       map[Phase]int  `json:"by_phase"`
}

// Store persists scan results in SQLite so stage history survives
// restarts. Projects seen in an earlier scan but missing from the
// current one are kept; they may have been archived elsewhere.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the scan database under dataDir and
// runs migrations.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("stagescan: create data dir: %w", err)
	}

	db, err := openDB("sqlite", filepath.Join(dataDir, "scan.db"))
	if err != nil {
		return nil, fmt.Errorf("stagescan: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("stagescan: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("stagescan: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS projects (
			slug         TEXT PRIMARY KEY,
			display_name TEXT NOT NULL,
			status       TEXT NOT NULL DEFAULT 'active',
			phase        TEXT NOT NULL,
			stage        TEXT NOT NULL,
			files        TEXT NOT NULL DEFAULT '{}',
			created_at   TEXT NOT NULL DEFAULT (datetime('now')),
			updated_at   TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_projects_phase  ON projects(phase);
		CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status);
	`)
	return err
}

// Upsert records a scanned project, preserving created_at and status
// for projects seen before.
func (s *Store) Upsert(p Project) error {
	filesJSON, err := json.Marshal(p.Files)
	if err != nil {
		return fmt.Errorf("stagescan: encode files: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO projects (slug, display_name, status, phase, stage, files)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			display_name = excluded.display_name,
			phase        = excluded.phase,
			stage        = excluded.stage,
			files        = excluded.files,
			updated_at   = datetime('now')
	`, p.Slug, p.DisplayName, p.Status, string(p.Phase), p.Stage, string(filesJSON))
	if err != nil {
		return fmt.Errorf("stagescan: upsert %s: %w", p.Slug, err)
	}
	return nil
}

// List returns all tracked projects ordered by slug.
func (s *Store) List() ([]Record, error) {
	rows, err := s.db.Query(`
		SELECT slug, display_name, status, phase, stage, files, created_at, updated_at
		FROM projects ORDER BY slug
	`)
	if err != nil {
		return nil, fmt.Errorf("stagescan: list projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		var r Record
		var filesJSON string
		var phase string
		if err := rows.Scan(&r.Slug, &r.DisplayName, &r.Status, &phase, &r.Stage, &filesJSON, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		r.Phase = Phase(phase)
		if err := json.Unmarshal([]byte(filesJSON), &r.Files); err != nil {
			r.Files = map[string]bool{}
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Summarize computes aggregate counts from the tracked projects.
func (s *Store) Summarize() (Summary, error) {
	records, err := s.List()
	if err != nil {
		return Summary{}, err
	}
	return summarize(records), nil
}

func summarize(records []Record) Summary {
	sum := Summary{
		TotalProjects: len(records),
		ByStatus:      map[string]int{"active": 0, "completed": 0, "killed": 0, "pivoted": 0},
		ByPhase:       map[Phase]int{PhaseIdeate: 0, PhaseRefine: 0, PhaseMake: 0, PhaseShip: 0},
	}
	for _, r := range records {
		if _, ok := sum.ByStatus[r.Status]; ok {
			sum.ByStatus[r.Status]++
		}
		if _, ok := sum.ByPhase[r.Phase]; ok {
			sum.ByPhase[r.Phase]++
		}
	}
	return sum
}
