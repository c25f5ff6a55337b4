package models

import "errors"

// Error taxonomy for scrape operations. Handlers wrap these sentinels
// with fmt.Errorf("...: %w", ...) so callers can classify failures with
// errors.Is while still getting a human-readable message.
var (
	// ErrValidation - malformed identifier, URL or date. Rejected before
	// any network call.
	ErrValidation = errors.New("validation error")

	// ErrAuth - missing or invalid credential for the GitHub API.
	// Distinct from not-found and network failures.
	ErrAuth = errors.New("authentication error")

	// ErrFetch - network failure, timeout or non-success status.
	ErrFetch = errors.New("fetch error")

	// ErrExtraction - page fetched but required structure (version
	// number, heading) was absent.
	ErrExtraction = errors.New("extraction error")

	// ErrPersistence - directory or file write failure.
	ErrPersistence = errors.New("persistence error")
)
