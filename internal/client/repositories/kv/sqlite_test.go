package kv

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/archedata/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv (
  key     TEXT PRIMARY KEY,
  value   BLOB NOT NULL,
  version INTEGER NOT NULL DEFAULT 1
);`)
	require.NoError(t, err)
	return db
}

func TestGet_Absent_ReturnsNilZero(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, ver, err := r.Get(context.Background(), "archedata_users")
	require.NoError(t, err)
	require.Nil(t, v)
	require.Zero(t, ver)
}

func TestSet_InsertThenUpdate_BumpsVersion(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	ver, err := r.Set(ctx, "k", []byte(`[]`), 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), ver)

	ver, err = r.Set(ctx, "k", []byte(`[1]`), ver)
	require.NoError(t, err)
	require.Equal(t, int64(2), ver)

	v, got, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte(`[1]`), v)
	require.Equal(t, int64(2), got)
}

func TestSet_StaleVersion_Conflicts(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	_, err := r.Set(ctx, "k", []byte("a"), 0)
	require.NoError(t, err)

	// second insert of an existing key
	_, err = r.Set(ctx, "k", []byte("b"), 0)
	require.ErrorIs(t, err, common.ErrVersionConflict)

	// writer A and writer B both read version 1
	_, err = r.Set(ctx, "k", []byte("from A"), 1)
	require.NoError(t, err)
	_, err = r.Set(ctx, "k", []byte("from B"), 1)
	require.ErrorIs(t, err, common.ErrVersionConflict)

	v, ver, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("from A"), v, "the losing write must not clobber")
	require.Equal(t, int64(2), ver)
}

func TestSet_UpdateOfAbsentKey_Conflicts(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	_, err := r.Set(context.Background(), "ghost", []byte("x"), 3)
	require.ErrorIs(t, err, common.ErrVersionConflict)
}

func TestDelete_IsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	_, err := r.Set(ctx, "x", []byte{0x01}, 0)
	require.NoError(t, err)
	require.NoError(t, r.Delete(ctx, "x"))

	v, ver, err := r.Get(ctx, "x")
	require.NoError(t, err)
	require.Nil(t, v)
	require.Zero(t, ver)

	require.NoError(t, r.Delete(ctx, "x"))
}

func TestListAndClear(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	_, err := r.Set(ctx, "a", []byte{0xAA}, 0)
	require.NoError(t, err)
	_, err = r.Set(ctx, "b", []byte{0xBB, 0xCC}, 0)
	require.NoError(t, err)

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Equal(t, []byte{0xAA}, m["a"])
	assert.Equal(t, []byte{0xBB, 0xCC}, m["b"])

	require.NoError(t, r.Clear(ctx))
	m, err = r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestDBErrorsAreWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, _, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get kv[k]")

	_, err = r.Set(ctx, "k", []byte("v"), 0)
	require.ErrorContains(t, err, "failed to set kv[k]")

	require.ErrorContains(t, r.Delete(ctx, "k"), "failed to delete kv[k]")
	require.ErrorContains(t, r.Clear(ctx), "failed to clear kv")

	_, err = r.List(ctx)
	require.ErrorContains(t, err, "failed to list kv")
}

func TestSet_RowsAffectedError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE kv SET value").
		WithArgs([]byte("v"), "k", int64(4)).
		WillReturnResult(sqlmock.NewErrorResult(errors.New("no count")))

	_, err = NewSQLiteRepository(db).Set(context.Background(), "k", []byte("v"), 4)
	require.ErrorContains(t, err, "failed to get rows affected")
	require.NoError(t, mock.ExpectationsWereMet())
}
