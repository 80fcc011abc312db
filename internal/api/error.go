package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx response from the server. Detail carries the
// human-readable message from the response body's "detail" field when the
// server provided one.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

// IsNotFound reports whether err is a 404 from the server. Callers use this
// to distinguish "no draft exists" from real failures.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Detail extracts the server's message from err, falling back to the given
// default when the error carries none (network failures, empty bodies).
func Detail(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
