package records

import (
	"errors"
	"fmt"
)

// ErrStorageUnavailable marks any operational storage failure. Callers
// match it with errors.Is.
var ErrStorageUnavailable = errors.New("storage unavailable")

// maxDiagnosticRunes bounds how much backend detail leaks into error
// messages surfaced to clients.
const maxDiagnosticRunes = 120

// StorageError wraps a backend failure with the operation that hit it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage unavailable during %s: %s", e.Op, truncate(e.Err.Error(), maxDiagnosticRunes))
}

func (e *StorageError) Is(target error) bool { return target == ErrStorageUnavailable }

func (e *StorageError) Unwrap() error { return e.Err }

func newStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
