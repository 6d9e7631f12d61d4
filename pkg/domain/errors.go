package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest indicates the caller sent a request missing required fields.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrQuotaExceeded indicates the rolling weekly prompt budget is spent.
	ErrQuotaExceeded = errors.New("weekly prompt quota exceeded")
	// ErrServerMisconfigured indicates the inference provider rejected our credentials.
	ErrServerMisconfigured = errors.New("inference provider rejected credentials")
	// ErrUpstreamBusy indicates the inference provider is rate limiting us.
	ErrUpstreamBusy = errors.New("inference provider is rate limited")
	// ErrUpstreamUnavailable indicates the inference provider could not be reached.
	ErrUpstreamUnavailable = errors.New("inference provider unavailable")
)

type notFoundError struct {
	EntityType string
	ID         string
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("%s with ID '%s' not found", e.EntityType, e.ID)
}

func NewNotFoundError(entityType, id string) error {
	return &notFoundError{EntityType: entityType, ID: id}
}

func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var notFoundErr *notFoundError
	return errors.As(err, &notFoundErr)
}
