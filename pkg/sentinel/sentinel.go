// Package sentinel defines the shared sentinel errors stores and clients
// return so callers can branch on errors.Is without importing each other.
package sentinel

import "errors"

var (
	// ErrNotFound marks a lookup that matched nothing.
	ErrNotFound = errors.New("not found")
	// ErrExpired marks a resource past its usable window.
	ErrExpired = errors.New("expired")
	// ErrInvalidState marks an operation applied in a wrong lifecycle state.
	ErrInvalidState = errors.New("invalid state")
	// ErrUnavailable marks a dependency that could not be reached.
	ErrUnavailable = errors.New("unavailable")
)
