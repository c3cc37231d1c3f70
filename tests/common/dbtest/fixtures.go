//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// ExpireKey backdates a kv_entries row so it reads as expired without waiting.
func ExpireKey(t *testing.T, db DBLike, key string) {
	t.Helper()

	tag, err := db.Exec(context.Background(),
		"UPDATE kv_entries SET expires_at = now() - interval '1 second' WHERE key = $1", key)
	require.NoError(t, err)
	require.Equal(t, int64(1), tag.RowsAffected(), "no row for key %s", key)
}

// CountRows counts kv_entries rows, expired ones included.
func CountRows(t *testing.T, db DBLike) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM kv_entries").Scan(&n)
	require.NoError(t, err)
	return n
}

// ResetKV empties kv_entries.
func ResetKV(t *testing.T, db DBLike) {
	t.Helper()

	_, err := db.Exec(context.Background(), "TRUNCATE kv_entries")
	require.NoError(t, err)
}
