package benchmark

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/sqlite-vec/engine"
	"github.com/viant/sqlite-vec/vector"
)

// SQLiteVecStore implements VectorStore on SQLite with the vec_l2 scalar
// function ranking rows by distance. Embeddings are stored as little-endian
// float32 blobs in one table per collection.
type SQLiteVecStore struct {
	db    *sql.DB
	table string
}

// NewSQLiteVecStore opens the database file under cfg.Path and binds to the
// collection table. Vector functions are registered before the pool hands
// out its first connection.
func NewSQLiteVecStore(cfg StoreConfig) (*SQLiteVecStore, error) {
	file := filepath.Join(cfg.Path, "sqlite.db")
	if cfg.Create {
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
		}
	} else if _, err := os.Stat(file); err != nil {
		// the driver would create an empty database file on first use
		return nil, fmt.Errorf("%w: %q", ErrCollectionNotFound, cfg.Collection)
	}

	db, err := engine.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := engine.RegisterVectorFunctions(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to register vector functions: %w", err)
	}

	s := &SQLiteVecStore{db: db, table: cfg.Collection}

	if cfg.Create {
		if err := s.createTable(); err != nil {
			db.Close()
			return nil, err
		}
		return s, nil
	}

	ok, err := s.tableExists()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to check collection table: %w", err)
	}
	if !ok {
		db.Close()
		return nil, fmt.Errorf("%w: %q", ErrCollectionNotFound, cfg.Collection)
	}
	return s, nil
}

func (s *SQLiteVecStore) createTable() error {
	drop := fmt.Sprintf(`DROP TABLE IF EXISTS %q`, s.table)
	if _, err := s.db.Exec(drop); err != nil {
		return fmt.Errorf("failed to drop collection table: %w", err)
	}

	create := fmt.Sprintf(`CREATE TABLE %q (
		id TEXT PRIMARY KEY,
		content TEXT,
		type TEXT,
		amount INTEGER,
		embedding BLOB NOT NULL
	)`, s.table)
	if _, err := s.db.Exec(create); err != nil {
		return fmt.Errorf("failed to create collection table: %w", err)
	}
	return nil
}

func (s *SQLiteVecStore) tableExists() (bool, error) {
	var name string
	err := s.db.QueryRow(
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, s.table,
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQLiteVecStore) Name() string {
	return "SQLite-Vec"
}

func (s *SQLiteVecStore) Insert(ctx context.Context, records []Record) error {
	if s.db == nil {
		return ErrStoreClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	insert := fmt.Sprintf(
		`INSERT INTO %q (id, content, type, amount, embedding) VALUES (?, ?, ?, ?, ?)`, s.table)
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		blob, err := vector.EncodeEmbedding(r.Vector)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to encode embedding for %s: %w", r.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, r.ID, r.Content, r.Type, r.Amount, blob); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert record %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit insert: %w", err)
	}
	return nil
}

func (s *SQLiteVecStore) Query(ctx context.Context, vector []float32, k int) ([]Result, error) {
	return s.query(ctx, vector, k, nil)
}

func (s *SQLiteVecStore) FilteredQuery(ctx context.Context, vector []float32, k int, filters []Filter) ([]Result, error) {
	return s.query(ctx, vector, k, filters)
}

func (s *SQLiteVecStore) query(ctx context.Context, vec []float32, k int, filters []Filter) ([]Result, error) {
	if s.db == nil {
		return nil, ErrStoreClosed
	}

	blob, err := vector.EncodeEmbedding(vec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query vector: %w", err)
	}

	query := fmt.Sprintf(`SELECT id, vec_l2(embedding, ?) AS distance FROM %q`, s.table)
	args := []any{blob}

	if len(filters) > 0 {
		clauses := make([]string, 0, len(filters))
		for _, f := range filters {
			switch f.Operator {
			case FilterOpEqual:
				clauses = append(clauses, fmt.Sprintf(`%q = ?`, f.Field))
			case FilterOpGreaterThan:
				clauses = append(clauses, fmt.Sprintf(`%q > ?`, f.Field))
			default:
				return nil, fmt.Errorf("%w: %q", ErrFilterNotSupported, f.Operator)
			}
			args = append(args, f.Value)
		}
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY distance LIMIT ?"
	args = append(args, k)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var id string
		var distance float64
		if err := rows.Scan(&id, &distance); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		results = append(results, Result{ID: id, Score: float32(distance)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read result rows: %w", err)
	}
	return results, nil
}

func (s *SQLiteVecStore) SupportsOperator(op FilterOperator) bool {
	switch op {
	case FilterOpEqual, FilterOpGreaterThan:
		return true
	default:
		return false
	}
}

func (s *SQLiteVecStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
