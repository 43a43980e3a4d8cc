package contract

import "errors"

// Failure taxonomy for the pipeline. Every error surfaced at a request
// boundary wraps exactly one of these sentinels so callers can distinguish
// "fix your file" from "try again later" from "integration break".
var (
	// ErrMalformedInput means the upload could not be decoded as CSV at all.
	ErrMalformedInput = errors.New("malformed input")

	// ErrInsufficientData means the decoded series fell below the minimum
	// analyzable length after skipping unparseable rows.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrScorerUnavailable means the external scorer is not installed or not
	// reachable. This is a degraded-mode signal, not a user input error.
	ErrScorerUnavailable = errors.New("scorer unavailable")

	// ErrScorerContractViolation means the scorer returned a malformed or
	// miscounted result. Fatal for the request; never retried, since scoring
	// is deterministic for a given (seed, series, config).
	ErrScorerContractViolation = errors.New("scorer contract violation")

	// ErrNotFound means the record does not exist or belongs to someone else.
	// The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("record not found")
)
