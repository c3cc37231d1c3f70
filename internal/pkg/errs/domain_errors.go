package errs

import "errors"

// Sentinel errors shared across the usecase and infra layers
var (
	// Directory errors
	ErrUserNotFound         = errors.New("user not found in directory")
	ErrDirectoryUnavailable = errors.New("directory unavailable")

	// Store errors
	ErrStoreUnavailable = errors.New("key-value store unavailable")
	ErrCorruptRecord    = errors.New("corrupt cached record")
)
