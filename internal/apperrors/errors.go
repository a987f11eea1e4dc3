package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the requested change conflicts with the current
// state of the resource (e.g. deleting a budget that still has entries).
var ErrConflict = errors.New("resource conflict")

// ErrInternal indicates an unexpected internal failure that the caller
// cannot correct directly; it remains recoverable by retry at a higher level.
var ErrInternal = errors.New("internal error")

// Accounting invariant violations. These are rejected synchronously at the
// point of mutation, before any storage write occurs.
var (
	// ErrUnbalancedTransaction indicates a transaction group whose display
	// amounts do not sum to zero within tolerance.
	ErrUnbalancedTransaction = errors.New("transaction entries do not balance to zero")

	// ErrInsufficientEntries indicates a transaction group with fewer than two entries.
	ErrInsufficientEntries = errors.New("transaction must have at least two entries")

	// ErrAccountNotFound indicates a ledger entry referencing an unknown account.
	ErrAccountNotFound = errors.New("account not found")

	// ErrBudgetNotFound indicates a ledger entry referencing an unknown budget.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrInvalidAccount indicates an account with a bad type, currency or name.
	ErrInvalidAccount = errors.New("invalid account")

	// ErrInvalidRate indicates a non-positive or non-finite exchange rate.
	ErrInvalidRate = errors.New("invalid exchange rate")

	// ErrRateNotFound indicates that no eligible historical rate exists for a
	// currency pair on or before the requested date.
	ErrRateNotFound = errors.New("no exchange rate found for currency pair")
)

// Sync errors. Transport failures are retried with backoff by the sync
// engine and surfaced as a non-fatal status, never propagated as a crash.
var (
	// ErrSyncTransport indicates a network or remote-store failure during a sync cycle.
	ErrSyncTransport = errors.New("sync transport failure")

	// ErrSyncInFlight indicates that a sync request was coalesced because a
	// cycle is already running.
	ErrSyncInFlight = errors.New("sync already in progress")
)
