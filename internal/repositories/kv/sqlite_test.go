package kv

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE blobs (
  key TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func TestGet_AbsentKeyReturnsNil(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	got, err := r.Get(context.Background(), "users")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSet_InsertAndOverwrite(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "config", []byte(`{"a":1}`)))

	got, err := r.Get(ctx, "config")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), got)

	// overwrite by the same key
	require.NoError(t, r.Set(ctx, "config", []byte(`{"a":2}`)))

	got, err = r.Get(ctx, "config")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":2}`), got)
}

func TestDelete_RemovesOnlyTheKey(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "session", []byte("s")))
	require.NoError(t, r.Set(ctx, "users", []byte("u")))

	require.NoError(t, r.Delete(ctx, "session"))

	got, err := r.Get(ctx, "session")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = r.Get(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, []byte("u"), got)
}

func TestClear(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", []byte("1")))
	require.NoError(t, r.Set(ctx, "b", []byte("2")))
	require.NoError(t, r.Clear(ctx))

	for _, key := range []string{"a", "b"} {
		got, err := r.Get(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, got)
	}
}
