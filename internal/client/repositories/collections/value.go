package collections

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/archedata/internal/client/repositories/kv"
	"github.com/dmitrijs2005/archedata/internal/dbx"
	"github.com/dmitrijs2005/archedata/internal/logging"
)

// Value is a single T persisted as one JSON object.
type Value[T any] struct {
	db     *sql.DB
	key    string
	logger logging.Logger
}

func NewValue[T any](db *sql.DB, key string, logger logging.Logger) *Value[T] {
	return &Value[T]{db: db, key: key, logger: logger}
}

func (v *Value[T]) Load(ctx context.Context) (*T, int64, error) {
	return v.LoadWith(ctx, v.db)
}

// LoadWith returns nil when the key is absent. An undecodable value is
// logged, removed, and reported as absent.
func (v *Value[T]) LoadWith(ctx context.Context, tx dbx.DBTX) (*T, int64, error) {
	repo := kv.NewSQLiteRepository(tx)

	raw, version, err := repo.Get(ctx, v.key)
	if err != nil {
		return nil, 0, err
	}
	if raw == nil {
		return nil, 0, nil
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		v.logger.Error(ctx, "corrupt value, clearing", "key", v.key, "version", version, "error", err)
		if err := repo.Delete(ctx, v.key); err != nil {
			return nil, 0, err
		}
		return nil, 0, nil
	}
	return &out, version, nil
}

func (v *Value[T]) SaveWith(ctx context.Context, tx dbx.DBTX, value T, expectedVersion int64) (int64, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return 0, fmt.Errorf("encode %s: %w", v.key, err)
	}
	return kv.NewSQLiteRepository(tx).Set(ctx, v.key, raw, expectedVersion)
}

// Put overwrites the value with whatever version is current, in one transaction.
func (v *Value[T]) Put(ctx context.Context, value T) error {
	return dbx.WithTx(ctx, v.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return v.PutWith(ctx, tx, value)
	})
}

func (v *Value[T]) PutWith(ctx context.Context, tx dbx.DBTX, value T) error {
	_, version, err := kv.NewSQLiteRepository(tx).Get(ctx, v.key)
	if err != nil {
		return err
	}
	_, err = v.SaveWith(ctx, tx, value, version)
	return err
}

func (v *Value[T]) Clear(ctx context.Context) error {
	return kv.NewSQLiteRepository(v.db).Delete(ctx, v.key)
}
