package infra

import (
	"errors"

	"parkingbot/internal/pkg/errs"
)

type StoreErrorKind string

type StoreError struct {
	Kind StoreErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e StoreError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e StoreError) Unwrap() error {
	return e.err
}

// WrapStoreErr keeps the backend error reachable through errors.Is and marks
// backend failures and timeouts with errs.ErrStoreUnavailable.
func WrapStoreErr(kind StoreErrorKind, msg string, err error) error {
	if err != nil {
		err = errs.Wrap(err, msg)
		if kind == KindStoreFailure || kind == KindTimeout {
			err = errs.Mark(err, errs.ErrStoreUnavailable)
		}
	}
	return StoreError{Kind: kind, msg: msg, err: err}
}

func IsKind(err error, kind StoreErrorKind) bool {
	var e StoreError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Infrastructure-specific error kinds
const (
	KindStoreFailure     StoreErrorKind = "STORE_FAILURE"
	KindDirectoryFailure StoreErrorKind = "DIRECTORY_FAILURE"
	KindTimeout          StoreErrorKind = "TIMEOUT"
)
