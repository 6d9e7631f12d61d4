package providers

import "errors"

// Classified provider outcomes. Every transport failure maps to exactly
// one of these; raw upstream payloads and credentials never travel past
// this package boundary.
var (
	// ErrAuthFailure: the provider rejected the credential. Fatal,
	// process-level misconfiguration.
	ErrAuthFailure = errors.New("provider rejected credentials")
	// ErrRateLimited: transient upstream rate limit. The caller may retry
	// later; clients never retry themselves.
	ErrRateLimited = errors.New("provider rate limited")
	// ErrUnavailable: any other transport or server failure, including
	// timeouts.
	ErrUnavailable = errors.New("provider unavailable")
)

// ClassifyStatus maps an upstream HTTP status to a classified error.
func ClassifyStatus(status int) error {
	switch {
	case status == 401 || status == 403:
		return ErrAuthFailure
	case status == 429:
		return ErrRateLimited
	default:
		return ErrUnavailable
	}
}
