package shared

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/shared/shared.go -package=sharedmock

import (
	"context"
	"time"

	"parkingbot/internal/domain/claim"
	"parkingbot/internal/domain/identity"
)

// KeyValueStore is the only persistence the bot has. Implementations must be
// safe for concurrent use. A ttl of zero means the entry never expires.
type KeyValueStore interface {
	// Get reports found=false for an absent or expired key.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// SetIfAbsent writes only when no live entry exists and reports whether it wrote.
	SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	// Delete succeeds on an absent key.
	Delete(ctx context.Context, key string) error
	// DeleteIfEquals removes key only while it still holds value.
	DeleteIfEquals(ctx context.Context, key, value string) (bool, error)
	// Scan lists live keys starting with prefix, in no particular order.
	Scan(ctx context.Context, prefix string) ([]string, error)
}

// Directory resolves user ids against the chat platform. Lookup returns
// errs.ErrUserNotFound or errs.ErrDirectoryUnavailable on failure.
type Directory interface {
	Lookup(ctx context.Context, userID string) (*identity.Record, error)
}

// DateParser turns free text such as "next wednesday" or "2016-05-08" into a
// calendar date relative to the current day.
type DateParser interface {
	Parse(text string) (claim.Date, bool)
}
