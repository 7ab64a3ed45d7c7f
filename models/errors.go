package models

import "errors"

// Failure categories surfaced to callers. Services wrap these with
// fmt.Errorf("%w: ...") so handlers can classify with errors.Is while
// logs keep the underlying detail.
var (
	// ErrValidationFailed covers client-side schema violations. These
	// never reach the document store.
	ErrValidationFailed = errors.New("validation failed")

	// ErrNotAuthenticated is returned when an operation requiring an
	// active identity is called without one.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrStorageUnavailable covers query/write/batch failures caused by
	// connectivity or a backend fault. Nothing is retried automatically.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrEmailInUse and ErrWeakCredential mirror identity-provider
	// rejections during account creation.
	ErrEmailInUse     = errors.New("email already in use")
	ErrWeakCredential = errors.New("credential too weak")

	// ErrProfileWriteFailed means the profile document write failed after
	// the identity was created; the identity was removed again.
	ErrProfileWriteFailed = errors.New("profile write failed")

	// ErrCompensationFailed is the worst case: the profile write failed
	// AND the cleanup deletion of the identity failed too. An orphaned
	// identity remains and needs operator reconciliation.
	ErrCompensationFailed = errors.New("compensation failed")

	// ErrAllocationExhausted means no free name was found within the
	// configured number of suffix attempts.
	ErrAllocationExhausted = errors.New("name allocation exhausted")

	// ErrDecodeFailed means a document read back from the store did not
	// have the expected shape.
	ErrDecodeFailed = errors.New("stored document has invalid shape")

	// ErrNotFound is returned for lookups of documents that do not exist.
	ErrNotFound = errors.New("not found")
)
