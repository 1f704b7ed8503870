package data

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	DriverDuckDB = "duckdb"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

// Open returns the key-value store for the given driver.
func Open(ctx context.Context, driver, path string, log zerolog.Logger) (Store, error) {
	switch driver {
	case DriverDuckDB:
		db, err := InitDuckDB(path)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("path", path).Msg("opened duckdb store")
		return NewRepository(db), nil
	case DriverSQLite:
		db, err := OpenSQLite(ctx, path, log)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("path", path).Msg("opened sqlite store")
		return NewRepository(db), nil
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, errors.Wrapf(ErrUnknownDriver, "%q", driver)
	}
}
