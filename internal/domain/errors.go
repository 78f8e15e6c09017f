// Package domain holds the error taxonomy shared by every service. Store and
// infrastructure failures that are none of these sentinels propagate to the
// handler layer unchanged and surface as a 500.
package domain

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound means an entity id did not resolve in the store.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument means a caller-supplied value violates a precondition.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict means the operation would violate an invariant, such as
	// selling more tickets than are available.
	ErrConflict = errors.New("conflict")
)

// HTTPStatus translates a service error into the wire-level status the
// handler layer responds with.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrConflict):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
