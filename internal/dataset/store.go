// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/recipe-recommender/pkg/types"
)

// Store is a SQLite-backed recipe dataset.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite dataset at path and ensures the schema
// exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating dataset directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
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
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS recipes (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		calories REAL NOT NULL,
		fat_content REAL NOT NULL,
		cholesterol_content REAL NOT NULL,
		sodium_content REAL NOT NULL,
		carbohydrate_content REAL NOT NULL,
		fiber_content REAL NOT NULL,
		sugar_content REAL NOT NULL,
		protein_content REAL NOT NULL,
		cluster INTEGER
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// ImportSummary holds counts from an import run.
type ImportSummary struct {
	Inserted  int
	Updated   int
	Clustered int
}

// Total returns the number of recipes written.
func (s ImportSummary) Total() int {
	return s.Inserted + s.Updated
}

// Import upserts recipes by id in a single transaction. Progress lines go
// to w.
func (s *Store) Import(ctx context.Context, recipes []types.Recipe, w io.Writer) (ImportSummary, error) {
	var summary ImportSummary

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	exists, err := tx.PrepareContext(ctx, `SELECT count(*) FROM recipes WHERE id = ?`)
	if err != nil {
		return summary, fmt.Errorf("preparing lookup: %w", err)
	}
	defer exists.Close()

	upsert, err := tx.PrepareContext(ctx,
		`INSERT INTO recipes (id, name, description, calories, fat_content,
			cholesterol_content, sodium_content, carbohydrate_content,
			fiber_content, sugar_content, protein_content, cluster)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, description=excluded.description,
			calories=excluded.calories, fat_content=excluded.fat_content,
			cholesterol_content=excluded.cholesterol_content,
			sodium_content=excluded.sodium_content,
			carbohydrate_content=excluded.carbohydrate_content,
			fiber_content=excluded.fiber_content, sugar_content=excluded.sugar_content,
			protein_content=excluded.protein_content, cluster=excluded.cluster`)
	if err != nil {
		return summary, fmt.Errorf("preparing insert: %w", err)
	}
	defer upsert.Close()

	for i := range recipes {
		r := &recipes[i]

		var n int
		if err := exists.QueryRowContext(ctx, r.ID).Scan(&n); err != nil {
			return summary, fmt.Errorf("looking up recipe %d: %w", r.ID, err)
		}

		var cluster sql.NullInt64
		if k, ok := r.ClusterID(); ok {
			cluster = sql.NullInt64{Int64: int64(k), Valid: true}
			summary.Clustered++
		}

		_, err := upsert.ExecContext(ctx,
			r.ID, r.Name, r.Description,
			r.Calories, r.FatContent, r.CholesterolContent, r.SodiumContent,
			r.CarbohydrateContent, r.FiberContent, r.SugarContent, r.ProteinContent,
			cluster,
		)
		if err != nil {
			return summary, fmt.Errorf("inserting recipe %d: %w", r.ID, err)
		}
		if n > 0 {
			summary.Updated++
		} else {
			summary.Inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing import: %w", err)
	}

	fmt.Fprintf(w, "inserted: %d, updated: %d, with cluster: %d\n",
		summary.Inserted, summary.Updated, summary.Clustered)
	return summary, nil
}

// Load returns every recipe ordered by id.
func (s *Store) Load(ctx context.Context) ([]types.Recipe, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, calories, fat_content, cholesterol_content,
			sodium_content, carbohydrate_content, fiber_content, sugar_content,
			protein_content, cluster
		FROM recipes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying recipes: %w", err)
	}
	defer rows.Close()

	var recipes []types.Recipe
	for rows.Next() {
		var (
			r           types.Recipe
			description sql.NullString
			cluster     sql.NullInt64
		)
		if err := rows.Scan(
			&r.ID, &r.Name, &description,
			&r.Calories, &r.FatContent, &r.CholesterolContent, &r.SodiumContent,
			&r.CarbohydrateContent, &r.FiberContent, &r.SugarContent, &r.ProteinContent,
			&cluster,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		r.Description = description.String
		for _, n := range types.FeatureOrder {
			if !finite(r.Nutrient(n)) {
				return nil, fmt.Errorf("recipe %d: %s is not a finite number", r.ID, n)
			}
		}
		if cluster.Valid {
			k := int(cluster.Int64)
			r.Cluster = &k
		}
		recipes = append(recipes, r)
	}
	return recipes, rows.Err()
}
