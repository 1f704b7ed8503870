package data

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/pkg/errors"
)

const kvTable = "kv_store"

const duckDBSchema = `CREATE TABLE IF NOT EXISTS kv_store (
	store_key VARCHAR PRIMARY KEY,
	store_value VARCHAR NOT NULL
)`

// KV is the string key-value contract the stores persist through.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Store is a KV that owns resources.
type Store interface {
	KV
	Close() error
}

func InitDuckDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrap(err, "failed to create database directory")
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open duckdb")
	}

	if _, err := db.Exec(duckDBSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to initialize schema")
	}

	return db, nil
}

// Repository implements KV on top of any database/sql handle holding the
// kv_store table.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := sq.Select("store_value").
		From(kvTable).
		Where(sq.Eq{"store_key": key}).
		RunWith(r.db).
		QueryRowContext(ctx).
		Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "failed to read key %q", key)
	}
	return value, true, nil
}

func (r *Repository) Set(ctx context.Context, key, value string) error {
	_, err := sq.Insert(kvTable).
		Options("OR REPLACE").
		Columns("store_key", "store_value").
		Values(key, value).
		RunWith(r.db).
		ExecContext(ctx)
	return errors.Wrapf(err, "failed to write key %q", key)
}

func (r *Repository) Remove(ctx context.Context, key string) error {
	_, err := sq.Delete(kvTable).
		Where(sq.Eq{"store_key": key}).
		RunWith(r.db).
		ExecContext(ctx)
	return errors.Wrapf(err, "failed to remove key %q", key)
}

func (r *Repository) Close() error {
	return r.db.Close()
}
