// Package store persists conversion runs and their annotated sentences in
// SQLite so results can be queried after the M2 file is written.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"m2align/internal/align"
)

const driverName = "sqlite"

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	orig_path  TEXT NOT NULL,
	cor_path   TEXT NOT NULL,
	lev        INTEGER NOT NULL,
	merge      TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS sentences (
	run_id TEXT NOT NULL REFERENCES runs(id),
	line   INTEGER NOT NULL,
	orig   TEXT NOT NULL,
	cor    TEXT NOT NULL,
	cost   REAL NOT NULL,
	PRIMARY KEY (run_id, line)
);
CREATE TABLE IF NOT EXISTS edits (
	run_id     TEXT NOT NULL,
	line       INTEGER NOT NULL,
	seq        INTEGER NOT NULL,
	o_start    INTEGER NOT NULL,
	o_end      INTEGER NOT NULL,
	c_start    INTEGER NOT NULL,
	c_end      INTEGER NOT NULL,
	category   TEXT NOT NULL,
	correction TEXT NOT NULL,
	PRIMARY KEY (run_id, line, seq),
	FOREIGN KEY (run_id, line) REFERENCES sentences(run_id, line)
);
`

// ErrRunNotFound is returned for an unknown run id.
var ErrRunNotFound = errors.New("store: run not found")

// Run describes one conversion of a parallel corpus.
type Run struct {
	ID          string    `json:"id"`
	StartedAt   time.Time `json:"started_at"`
	OrigPath    string    `json:"orig_path"`
	CorPath     string    `json:"cor_path"`
	Levenshtein bool      `json:"lev"`
	Merge       string    `json:"merge"`
}

// Sentence is one annotated sentence pair of a run.
type Sentence struct {
	Line  int
	Orig  []string
	Cor   []string
	Cost  float64
	Edits []align.Edit
}

type Store struct {
	db *sql.DB
}

// Open opens or creates the database at dsn and applies the schema.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", dsn, err)
	}
	// SQLite allows one writer; a single connection also keeps :memory: databases shared.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// BeginRun records a new run and returns it with its generated id.
func (s *Store) BeginRun(ctx context.Context, r Run) (Run, error) {
	r.ID = uuid.NewString()
	if r.StartedAt.IsZero() {
		r.StartedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, orig_path, cor_path, lev, merge) VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.StartedAt.Format(time.RFC3339Nano), r.OrigPath, r.CorPath, r.Levenshtein, r.Merge)
	if err != nil {
		return Run{}, fmt.Errorf("store: begin run: %w", err)
	}
	return r, nil
}

// Run loads a run by id.
func (s *Store) Run(ctx context.Context, id string) (Run, error) {
	var (
		r       Run
		started string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, orig_path, cor_path, lev, merge FROM runs WHERE id = ?`, id).
		Scan(&r.ID, &started, &r.OrigPath, &r.CorPath, &r.Levenshtein, &r.Merge)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, err
	}
	if r.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return Run{}, fmt.Errorf("store: run %s: %w", id, err)
	}
	return r, nil
}

// SaveSentence stores a sentence and its edits atomically.
func (s *Store) SaveSentence(ctx context.Context, runID string, sent Sentence) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sentences (run_id, line, orig, cor, cost) VALUES (?, ?, ?, ?, ?)`,
		runID, sent.Line, strings.Join(sent.Orig, " "), strings.Join(sent.Cor, " "), sent.Cost); err != nil {
		return fmt.Errorf("store: sentence %d: %w", sent.Line, err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO edits (run_id, line, seq, o_start, o_end, c_start, c_end, category, correction)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, e := range sent.Edits {
		if _, err := stmt.ExecContext(ctx, runID, sent.Line, i,
			e.OStart, e.OEnd, e.CStart, e.CEnd, string(e.Category), e.Correction); err != nil {
			return fmt.Errorf("store: edit %d of sentence %d: %w", i, sent.Line, err)
		}
	}
	return tx.Commit()
}

// Edits returns the stored edits of one sentence in order.
func (s *Store) Edits(ctx context.Context, runID string, line int) ([]align.Edit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT o_start, o_end, c_start, c_end, category, correction FROM edits
		 WHERE run_id = ? AND line = ? ORDER BY seq`, runID, line)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []align.Edit
	for rows.Next() {
		var (
			e   align.Edit
			cat string
		)
		if err := rows.Scan(&e.OStart, &e.OEnd, &e.CStart, &e.CEnd, &cat, &e.Correction); err != nil {
			return nil, err
		}
		e.Category = align.Category(cat)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Stats counts the edits of a run per category.
func (s *Store) Stats(ctx context.Context, runID string) (map[align.Category]int, error) {
	if _, err := s.Run(ctx, runID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, COUNT(*) FROM edits WHERE run_id = ? GROUP BY category`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[align.Category]int{}
	for rows.Next() {
		var (
			cat string
			n   int
		)
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, err
		}
		out[align.Category(cat)] = n
	}
	return out, rows.Err()
}
