package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/archedata/internal/common"
	"github.com/dmitrijs2005/archedata/internal/dbx"
)

// SQLiteRepository implements Repository on the kv table.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, int64, error) {
	var value []byte
	var version int64
	err := r.db.QueryRowContext(ctx, `SELECT value, version FROM kv WHERE key = ?`, key).Scan(&value, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return value, version, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte, expectedVersion int64) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if expectedVersion == 0 {
		res, err = r.db.ExecContext(ctx, `
			INSERT INTO kv (key, value, version) VALUES (?, ?, 1)
			ON CONFLICT(key) DO NOTHING
		`, key, value)
	} else {
		res, err = r.db.ExecContext(ctx, `
			UPDATE kv SET value = ?, version = version + 1
			WHERE key = ? AND version = ?
		`, value, key, expectedVersion)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}

	n, err := dbx.RowsAffected(res)
	if err != nil {
		return 0, err
	}
	if n != 1 {
		return 0, fmt.Errorf("kv[%s] at version %d: %w", key, expectedVersion, common.ErrVersionConflict)
	}
	return expectedVersion + 1, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM kv`)
	if err != nil {
		return fmt.Errorf("failed to clear kv: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM kv`)
	if err != nil {
		return nil, fmt.Errorf("failed to list kv: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan kv row: %w", err)
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate kv rows: %w", err)
	}

	return result, nil
}
