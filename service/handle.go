package service

import (
	"errors"
	"fmt"
)

// ErrMissingCredentials is returned by every operation on a capability
// whose credentials were not configured.
var ErrMissingCredentials = errors.New("missing service credentials")

// Handle holds a backend client together with a capability-presence flag.
// A Handle is immutable once built.
type Handle[T any] struct {
	capability string
	client     T
	present    bool
}

// Present returns a handle that holds client.
func Present[T any](capability string, client T) Handle[T] {
	return Handle[T]{capability: capability, client: client, present: true}
}

// Absent returns a handle for a capability without credentials.
func Absent[T any](capability string) Handle[T] {
	return Handle[T]{capability: capability}
}

// Capability returns the capability name.
func (h Handle[T]) Capability() string { return h.capability }

// IsPresent reports whether the handle holds a client.
func (h Handle[T]) IsPresent() bool { return h.present }

// Client returns the client, or an error wrapping ErrMissingCredentials
// when the handle is absent.
func (h Handle[T]) Client() (T, error) {
	if !h.present {
		var zero T
		return zero, fmt.Errorf("%s: %w", h.capability, ErrMissingCredentials)
	}
	return h.client, nil
}
