package kvstore

import (
	"context"
	_ "embed"
	"errors"
	"strings"
	"time"

	"parkingbot/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed schema.sql
var schemaSQL string

// DBTX is the subset of *pgxpool.Pool the store needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const liveCondition = `(expires_at IS NULL OR expires_at > now())`

const (
	getSQL = `SELECT value FROM kv_entries WHERE key = $1 AND ` + liveCondition

	// $3 is a ttl in milliseconds; zero stores no expiry.
	setSQL = `INSERT INTO kv_entries (key, value, expires_at)
VALUES ($1, $2, CASE WHEN $3::bigint > 0 THEN now() + $3::bigint * interval '1 millisecond' END)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at`

	setIfAbsentSQL = `INSERT INTO kv_entries (key, value, expires_at)
VALUES ($1, $2, CASE WHEN $3::bigint > 0 THEN now() + $3::bigint * interval '1 millisecond' END)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at
WHERE kv_entries.expires_at IS NOT NULL AND kv_entries.expires_at <= now()`

	deleteSQL         = `DELETE FROM kv_entries WHERE key = $1`
	deleteIfEqualsSQL = `DELETE FROM kv_entries WHERE key = $1 AND value = $2 AND ` + liveCondition
	scanSQL           = `SELECT key FROM kv_entries WHERE key LIKE $1 ESCAPE '\' AND ` + liveCondition
)

type PostgresStore struct {
	db DBTX
}

func NewPostgresStore(db DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, schemaSQL); err != nil {
		return infra.WrapStoreErr(infra.KindStoreFailure, "failed to create kv_entries", err)
	}
	return nil
}

func (p *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := p.db.QueryRow(ctx, getSQL, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, infra.WrapStoreErr(infra.KindStoreFailure, "failed to get "+key, err)
	}
	return value, true, nil
}

func (p *PostgresStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if _, err := p.db.Exec(ctx, setSQL, key, value, ttl.Milliseconds()); err != nil {
		return infra.WrapStoreErr(infra.KindStoreFailure, "failed to set "+key, err)
	}
	return nil
}

func (p *PostgresStore) SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	tag, err := p.db.Exec(ctx, setIfAbsentSQL, key, value, ttl.Milliseconds())
	if err != nil {
		return false, infra.WrapStoreErr(infra.KindStoreFailure, "failed to insert "+key, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (p *PostgresStore) Delete(ctx context.Context, key string) error {
	if _, err := p.db.Exec(ctx, deleteSQL, key); err != nil {
		return infra.WrapStoreErr(infra.KindStoreFailure, "failed to delete "+key, err)
	}
	return nil
}

func (p *PostgresStore) DeleteIfEquals(ctx context.Context, key, value string) (bool, error) {
	tag, err := p.db.Exec(ctx, deleteIfEqualsSQL, key, value)
	if err != nil {
		return false, infra.WrapStoreErr(infra.KindStoreFailure, "failed to delete "+key, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (p *PostgresStore) Scan(ctx context.Context, prefix string) ([]string, error) {
	rows, err := p.db.Query(ctx, scanSQL, escapeLike(prefix)+"%")
	if err != nil {
		return nil, infra.WrapStoreErr(infra.KindStoreFailure, "failed to scan "+prefix, err)
	}
	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, infra.WrapStoreErr(infra.KindStoreFailure, "failed to read scan rows", err)
	}
	return keys, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
