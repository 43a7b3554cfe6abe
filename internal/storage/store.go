// Package storage implements the local store driver: a single embedded
// SQLite database holding three named collections (users, expenses,
// budgets). Records are schemaless JSON documents keyed by a string id,
// with one optional secondary index column per collection.
//
// Operations require a successfully opened Store; Open returning a
// handle is the readiness signal, so a caller can never race the
// database coming up the way the original asynchronous open allowed.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

// Collection table names. These are the only values ever interpolated
// into SQL text.
const (
	TableUsers    = "users"
	TableExpenses = "expenses"
	TableBudgets  = "budgets"
)

var (
	// ErrNotInitialized reports an operation against a closed or
	// never-opened store handle.
	ErrNotInitialized = errors.New("store not initialized")

	// ErrDuplicateKey reports an Add whose id already exists.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrNotFound reports a missing record. Domain operations also use
	// it for ownership mismatches, so callers cannot distinguish
	// "absent" from "belongs to someone else".
	ErrNotFound = errors.New("record not found")
)

// Store owns the database handle. One Store is created by the
// composition root and passed to whoever needs it; there is no
// package-level singleton.
type Store struct {
	db *sql.DB
}

// Open creates the parent directory if needed, opens the SQLite
// database at path and brings the schema up to date. Safe to call
// repeatedly against the same path; migrations are a no-op once
// current.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(path); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Collection is a typed view over one of the three tables. key extracts
// the record id; indexKey, when non-nil, extracts the value written to
// the secondary index column (user_id for expenses and budgets, email
// for users).
type Collection[T any] struct {
	store    *Store
	table    string
	key      func(T) string
	indexKey func(T) string
}

func NewCollection[T any](s *Store, table string, key, indexKey func(T) string) Collection[T] {
	return Collection[T]{store: s, table: table, key: key, indexKey: indexKey}
}

// Users returns the users collection, indexed by email.
func Users(s *Store) Collection[core.User] {
	return NewCollection(s, TableUsers,
		func(u core.User) string { return u.ID },
		func(u core.User) string { return u.Email })
}

// Expenses returns the expenses collection, indexed by owning user id.
func Expenses(s *Store) Collection[core.Expense] {
	return NewCollection(s, TableExpenses,
		func(e core.Expense) string { return e.ID },
		func(e core.Expense) string { return e.UserID })
}

// Budgets returns the budgets collection, indexed by owning user id.
func Budgets(s *Store) Collection[core.Budget] {
	return NewCollection(s, TableBudgets,
		func(b core.Budget) string { return b.ID },
		func(b core.Budget) string { return b.UserID })
}

func (c Collection[T]) ready() error {
	if c.store == nil || c.store.db == nil {
		return ErrNotInitialized
	}
	return nil
}

func (c Collection[T]) encode(rec T) (id, indexKey string, data []byte, err error) {
	data, err = json.Marshal(rec)
	if err != nil {
		return "", "", nil, fmt.Errorf("encode record: %w", err)
	}
	if c.indexKey != nil {
		indexKey = c.indexKey(rec)
	}
	return c.key(rec), indexKey, data, nil
}

// Add inserts a new record and fails with ErrDuplicateKey when the id
// is already present.
func (c Collection[T]) Add(ctx context.Context, rec T) error {
	if err := c.ready(); err != nil {
		return err
	}
	id, indexKey, data, err := c.encode(rec)
	if err != nil {
		return err
	}

	query := fmt.Sprintf("INSERT OR IGNORE INTO %s (id, index_key, data) VALUES (?, ?, ?)", c.table)
	res, err := c.store.db.ExecContext(ctx, query, id, indexKey, data)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", c.table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert into %s: %w", c.table, err)
	}
	if n == 0 {
		return fmt.Errorf("%s id %q: %w", c.table, id, ErrDuplicateKey)
	}
	return nil
}

// Get returns the record with the given id, or ErrNotFound. Absence is
// an error value, never a panic.
func (c Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if err := c.ready(); err != nil {
		return zero, err
	}

	query := fmt.Sprintf("SELECT data FROM %s WHERE id = ?", c.table)
	var data []byte
	err := c.store.db.QueryRowContext(ctx, query, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, fmt.Errorf("%s id %q: %w", c.table, id, ErrNotFound)
	}
	if err != nil {
		return zero, fmt.Errorf("select from %s: %w", c.table, err)
	}

	var rec T
	if err := json.Unmarshal(data, &rec); err != nil {
		return zero, fmt.Errorf("decode record: %w", err)
	}
	return rec, nil
}

// Put upserts by id: it overwrites an existing record or creates a
// missing one. The asymmetry with Add is deliberate and matches the
// original store's semantics.
func (c Collection[T]) Put(ctx context.Context, rec T) error {
	if err := c.ready(); err != nil {
		return err
	}
	id, indexKey, data, err := c.encode(rec)
	if err != nil {
		return err
	}

	query := fmt.Sprintf("INSERT OR REPLACE INTO %s (id, index_key, data) VALUES (?, ?, ?)", c.table)
	if _, err := c.store.db.ExecContext(ctx, query, id, indexKey, data); err != nil {
		return fmt.Errorf("upsert into %s: %w", c.table, err)
	}
	return nil
}

// Delete removes the record with the given id. Deleting an absent id is
// a no-op, so Delete is idempotent.
func (c Collection[T]) Delete(ctx context.Context, id string) error {
	if err := c.ready(); err != nil {
		return err
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", c.table)
	if _, err := c.store.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete from %s: %w", c.table, err)
	}
	return nil
}

// All returns every record in insertion order.
func (c Collection[T]) All(ctx context.Context) ([]T, error) {
	query := fmt.Sprintf("SELECT data FROM %s ORDER BY rowid", c.table)
	return c.queryRecords(ctx, query)
}

// AllByIndex returns the records whose secondary index column equals
// key, in insertion order. The lookup is served by a SQL index rather
// than a full scan.
func (c Collection[T]) AllByIndex(ctx context.Context, key string) ([]T, error) {
	query := fmt.Sprintf("SELECT data FROM %s WHERE index_key = ? ORDER BY rowid", c.table)
	return c.queryRecords(ctx, query, key)
}

// Count returns the number of records in the collection.
func (c Collection[T]) Count(ctx context.Context) (int64, error) {
	if err := c.ready(); err != nil {
		return 0, err
	}
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", c.table)
	var n int64
	if err := c.store.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", c.table, err)
	}
	return n, nil
}

func (c Collection[T]) queryRecords(ctx context.Context, query string, args ...any) ([]T, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	rows, err := c.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", c.table, err)
	}
	defer rows.Close()

	records := []T{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", c.table, err)
		}
		var rec T
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", c.table, err)
	}
	return records, nil
}
