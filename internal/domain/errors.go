package domain

import "errors"

// Sentinel errors for desk-wide error classification.
// Components wrap these so the CLI and TUI can tell business rejections,
// warnings and failures apart without inspecting messages.
//
//	return fmt.Errorf("ledger: %w: %s", domain.ErrNoActiveDelivery, id)
var (
	// ErrFileRead indicates a schedule or ledger file could not be read or
	// parsed. Callers fall back to an empty table.
	ErrFileRead = errors.New("file read failure")

	// ErrFileWrite indicates the on-disk mirror of an in-memory table could
	// not be rewritten. The in-memory state is still authoritative.
	ErrFileWrite = errors.New("file write failure")

	// ErrDuplicateActiveDelivery indicates the teacher already holds a key
	// that has not been returned.
	ErrDuplicateActiveDelivery = errors.New("teacher already has an outstanding key")

	// ErrNoActiveDelivery indicates there is no outstanding key to return
	// for the teacher.
	ErrNoActiveDelivery = errors.New("no outstanding key for teacher")

	// ErrNoMatchingClass indicates no scheduled class matched the teacher,
	// day or room a delivery asked for.
	ErrNoMatchingClass = errors.New("no matching class scheduled")

	// ErrProcessing indicates schedule consolidation failed and an unmerged
	// table was returned instead.
	ErrProcessing = errors.New("schedule processing failure")
)

// IsWarning reports whether err only signals a degraded mirror or a
// startup fallback, leaving the returned value usable.
func IsWarning(err error) bool {
	return errors.Is(err, ErrFileWrite) || errors.Is(err, ErrFileRead)
}

// IsDeclined reports whether err is an expected business-rule rejection.
func IsDeclined(err error) bool {
	return errors.Is(err, ErrDuplicateActiveDelivery) ||
		errors.Is(err, ErrNoActiveDelivery) ||
		errors.Is(err, ErrNoMatchingClass)
}
