// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists computed factorizations in a local SQLite
// database so earlier results can be listed, looked up and exported.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/factors/pkg/types"
)

const (
	defaultDBPath     = "factors.db"
	defaultMaxResults = 100
)

// ErrNotFound is returned by Get when n has never been recorded.
var ErrNotFound = errors.New("factorization not found")

// Store manages the history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the history database at cfg.DBPath, creating the
// parent directory and schema as needed.
func Open(cfg types.HistoryConfig) (*Store, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS factorizations (
			n INTEGER PRIMARY KEY,
			divisors TEXT NOT NULL,
			count INTEGER NOT NULL,
			prime INTEGER NOT NULL,
			computed_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_factorizations_prime ON factorizations(prime)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Put records f, replacing any earlier entry for the same n.
func (s *Store) Put(ctx context.Context, f types.Factorization) error {
	divsJSON, err := json.Marshal(f.Divisors)
	if err != nil {
		return fmt.Errorf("encoding divisors of %d: %w", f.N, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO factorizations (n, divisors, count, prime, computed_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(n) DO UPDATE SET
			divisors=excluded.divisors, count=excluded.count,
			prime=excluded.prime, computed_at=excluded.computed_at`,
		f.N, string(divsJSON), f.Count, f.Prime,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording factorization of %d: %w", f.N, err)
	}
	return nil
}

// Record implements the server's recorder hook.
func (s *Store) Record(ctx context.Context, f types.Factorization) error {
	return s.Put(ctx, f)
}

// Get returns the recorded factorization of n.
func (s *Store) Get(ctx context.Context, n int) (types.Factorization, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT n, divisors, count, prime FROM factorizations WHERE n = ?`, n)
	f, err := scanFactorization(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Factorization{}, fmt.Errorf("n=%d: %w", n, ErrNotFound)
	}
	if err != nil {
		return types.Factorization{}, fmt.Errorf("reading factorization of %d: %w", n, err)
	}
	return f, nil
}

// ListOptions filters a history listing.
type ListOptions struct {
	// PrimeOnly restricts the listing to primes.
	PrimeOnly bool

	// Limit caps the row count. Zero uses the store default.
	Limit int
}

// List returns recorded factorizations ordered by n.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.Factorization, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = s.maxResults
	}

	query := `SELECT n, divisors, count, prime FROM factorizations`
	if opts.PrimeOnly {
		query += ` WHERE prime = 1`
	}
	query += ` ORDER BY n LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var results []types.Factorization
	for rows.Next() {
		f, err := scanFactorization(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		results = append(results, f)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFactorization(sc scanner) (types.Factorization, error) {
	var (
		f        types.Factorization
		divsJSON string
	)
	if err := sc.Scan(&f.N, &divsJSON, &f.Count, &f.Prime); err != nil {
		return types.Factorization{}, err
	}
	if err := json.Unmarshal([]byte(divsJSON), &f.Divisors); err != nil {
		return types.Factorization{}, fmt.Errorf("decoding divisors of %d: %w", f.N, err)
	}
	return f, nil
}
