// Package collections layers typed, JSON-encoded collections over the kv
// store. A Collection[T] is a whole list stored under one key; a Value[T] is
// a single object (the current session).
package collections

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/archedata/internal/client/repositories/kv"
	"github.com/dmitrijs2005/archedata/internal/dbx"
	"github.com/dmitrijs2005/archedata/internal/logging"
)

// Fixed store keys, one per logical collection.
const (
	UsersKey   = "archedata_users"
	EntriesKey = "archedata_entries"
	SessionKey = "archedata_current_user"
	ChatsKey   = "archedata_chats"
)

// ErrUnchanged may be returned from an Update callback to finish without
// writing anything.
var ErrUnchanged = errors.New("collection unchanged")

// Collection is a list of T persisted as one JSON array.
type Collection[T any] struct {
	db     *sql.DB
	key    string
	logger logging.Logger
}

func New[T any](db *sql.DB, key string, logger logging.Logger) *Collection[T] {
	return &Collection[T]{db: db, key: key, logger: logger}
}

func (c *Collection[T]) Key() string { return c.key }

// Load reads the collection outside of any transaction.
func (c *Collection[T]) Load(ctx context.Context) ([]T, int64, error) {
	return c.LoadWith(ctx, c.db)
}

// LoadWith reads the collection through tx. A missing key yields an empty
// slice at version 0. A value that no longer decodes is logged and reported
// as empty at its current version, so the next Save resets it.
func (c *Collection[T]) LoadWith(ctx context.Context, tx dbx.DBTX) ([]T, int64, error) {
	raw, version, err := kv.NewSQLiteRepository(tx).Get(ctx, c.key)
	if err != nil {
		return nil, 0, err
	}
	if raw == nil {
		return []T{}, version, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		c.logger.Error(ctx, "corrupt collection, resetting to empty", "key", c.key, "version", version, "error", err)
		return []T{}, version, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, version, nil
}

// Save replaces the whole collection if it is still at expectedVersion.
func (c *Collection[T]) Save(ctx context.Context, items []T, expectedVersion int64) (int64, error) {
	return c.SaveWith(ctx, c.db, items, expectedVersion)
}

func (c *Collection[T]) SaveWith(ctx context.Context, tx dbx.DBTX, items []T, expectedVersion int64) (int64, error) {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return 0, fmt.Errorf("encode %s: %w", c.key, err)
	}
	return kv.NewSQLiteRepository(tx).Set(ctx, c.key, raw, expectedVersion)
}

// Update runs a read-modify-write cycle in one transaction. fn receives the
// current items and returns the replacement; returning ErrUnchanged skips the
// write.
func (c *Collection[T]) Update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	return dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return c.UpdateWith(ctx, tx, fn)
	})
}

// UpdateWith is Update inside a transaction owned by the caller.
func (c *Collection[T]) UpdateWith(ctx context.Context, tx dbx.DBTX, fn func(items []T) ([]T, error)) error {
	items, version, err := c.LoadWith(ctx, tx)
	if err != nil {
		return err
	}

	next, err := fn(items)
	if errors.Is(err, ErrUnchanged) {
		return nil
	}
	if err != nil {
		return err
	}

	_, err = c.SaveWith(ctx, tx, next, version)
	return err
}
