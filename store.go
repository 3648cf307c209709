package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS problems (
	id       INTEGER PRIMARY KEY,
	slug     TEXT NOT NULL,
	name     TEXT NOT NULL,
	category TEXT NOT NULL,
	level    INTEGER NOT NULL,
	percent  REAL NOT NULL,
	starred  INTEGER NOT NULL DEFAULT 0,
	locked   INTEGER NOT NULL DEFAULT 0,
	descriptor TEXT NOT NULL DEFAULT ''
)`

var errProblemNotFound = errors.New("problem not found")

// Store caches the catalog in SQLite
type Store struct {
	db *sql.DB
}

// OpenStore opens (and creates) the cache database at path
func OpenStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveProblems upserts problems, keeping any cached descriptor
func (s *Store) SaveProblems(ctx context.Context, problems []Problem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO problems
		(id, slug, name, category, level, percent, starred, locked, descriptor)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			slug = excluded.slug, name = excluded.name, category = excluded.category,
			level = excluded.level, percent = excluded.percent,
			starred = excluded.starred, locked = excluded.locked`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range problems {
		if _, err := stmt.ExecContext(ctx, p.ID, p.Slug, p.Name, p.Category, int(p.Level),
			p.Percent, p.Starred, p.Locked, p.Desc); err != nil {
			return fmt.Errorf("saving problem %d: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// Problems returns every cached problem in catalog order (ascending id)
func (s *Store) Problems(ctx context.Context) ([]Problem, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, slug, name, category, level, percent, starred, locked, descriptor
		FROM problems ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var problems []Problem
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			return nil, err
		}
		problems = append(problems, *p)
	}
	return problems, rows.Err()
}

// Problem returns one cached problem
func (s *Store) Problem(ctx context.Context, id int) (*Problem, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, slug, name, category, level, percent, starred, locked, descriptor
		FROM problems WHERE id = ?`, id)
	p, err := scanProblem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("problem %d: %w", id, errProblemNotFound)
	}
	return p, err
}

// SaveDescriptor stores the encoded question of a problem
func (s *Store) SaveDescriptor(ctx context.Context, id int, desc string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE problems SET descriptor = ? WHERE id = ?`, desc, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("problem %d: %w", id, errProblemNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProblem(row scanner) (*Problem, error) {
	var p Problem
	var level int
	if err := row.Scan(&p.ID, &p.Slug, &p.Name, &p.Category, &level, &p.Percent,
		&p.Starred, &p.Locked, &p.Desc); err != nil {
		return nil, err
	}
	p.Level = Difficulty(level)
	return &p, nil
}
