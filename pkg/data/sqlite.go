package data

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE kv_store (
	store_key TEXT PRIMARY KEY,
	store_value TEXT NOT NULL
);
`

// sqliteMigrations[i] upgrades a database at user_version i. Version 0 uses
// the base schema, so the first entry is empty.
var sqliteMigrations = []string{
	"",
}

// OpenSQLite opens the SQLite database at path and brings its schema up to date.
func OpenSQLite(ctx context.Context, path string, log zerolog.Logger) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrap(err, "failed to create database directory")
		}
	}

	dsn := path + "?_pragma=busy_timeout%3d1000&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	if err := migrateSQLite(ctx, db, log); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to migrate schema")
	}

	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB, log zerolog.Logger) error {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return errors.Wrap(err, "failed to query schema version")
	}

	if version == len(sqliteMigrations) {
		log.Debug().Int("version", version).Msg("Database schema is up to date")
		return nil
	} else if version > len(sqliteMigrations) {
		return errors.Errorf("database schema version (%d) is newer than supported (%d)", version, len(sqliteMigrations))
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if version == 0 {
		if _, err := tx.ExecContext(ctx, sqliteSchema); err != nil {
			return errors.Wrap(err, "failed to initialize schema")
		}
		log.Info().Msg("Created database schema")
	} else {
		for i := version; i < len(sqliteMigrations); i++ {
			if sqliteMigrations[i] == "" {
				continue
			}
			log.Info().Msgf("Upgrading database schema to version: %v", i+1)
			if _, err := tx.ExecContext(ctx, sqliteMigrations[i]); err != nil {
				return errors.Wrapf(err, "failed to execute migration #%v", i)
			}
		}
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", len(sqliteMigrations))); err != nil {
		return errors.Wrap(err, "failed to bump schema version")
	}

	return tx.Commit()
}
