package transport

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteSaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	require.NoError(t, s.Save(ctx, "aa11", []byte(`{"id":"aa11","x":5}`)))

	got, err := s.Get(ctx, "aa11")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"aa11","x":5}`, string(got))
}

func TestSQLiteGetAbsent(t *testing.T) {
	got, err := openTestDB(t).Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got, "absent records return nil, not an error")
}

func TestSQLiteSaveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	require.NoError(t, s.Save(ctx, "aa11", []byte(`{"a":1}`)))
	require.NoError(t, s.Save(ctx, "aa11", []byte(`{"a":1}`)))

	got, err := s.Get(ctx, "aa11")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))
}

func TestSQLiteReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "records.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, "aa11", []byte(`{"a":1}`)))
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "aa11")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got), "records survive reopen")
}

func TestSQLiteName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, "sqlite:"+path, s.Name())
}
