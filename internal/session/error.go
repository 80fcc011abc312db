package session

import (
	"errors"
	"net/http"

	"github.com/meltforce/liftlog/internal/api"
)

// ErrorKind classifies a draft operation failure.
type ErrorKind int

const (
	// KindNotFound is a 404 that was not absorbed as normal absence.
	KindNotFound ErrorKind = iota
	// KindValidation is a client-correctable rejection (bad input, no active
	// draft, duplicate exercise).
	KindValidation
	// KindServer is any other non-2xx response.
	KindServer
	// KindNetwork is a transport failure with no server response.
	KindNetwork
)

// DraftError is the single error channel for manager operations. Callers
// decide whether to keep Message around for display; the manager stores
// nothing.
type DraftError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *DraftError) Error() string { return e.Message }

func (e *DraftError) Unwrap() error { return e.Err }

// wrapErr classifies an API client error, using fallback as the message when
// the server supplied no detail.
func wrapErr(err error, fallback string) *DraftError {
	kind := KindNetwork
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Status == http.StatusNotFound:
			kind = KindNotFound
		case apiErr.Status == http.StatusBadRequest,
			apiErr.Status == http.StatusUnprocessableEntity:
			kind = KindValidation
		default:
			kind = KindServer
		}
	}
	return &DraftError{Kind: kind, Message: api.Detail(err, fallback), Err: err}
}

func validationErr(msg string) *DraftError {
	return &DraftError{Kind: KindValidation, Message: msg}
}
