package domain

import (
	"errors"
	"net/http"
)

var (
	ErrInvalidPhone       = errors.New("invalid phone format")
	ErrInvalidOrder       = errors.New("invalid order")
	ErrSessionUnavailable = errors.New("messaging session unavailable")
	ErrStorage            = errors.New("storage failure")
	ErrDuplicateRequest   = errors.New("duplicate request")
	ErrCustomerMissing    = errors.New("customer does not exist")
)

// HTTPStatus maps the error taxonomy onto response codes. Unknown errors are
// treated as internal.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	case errors.Is(err, ErrInvalidPhone),
		errors.Is(err, ErrInvalidOrder):
		return http.StatusBadRequest

	case errors.Is(err, ErrSessionUnavailable):
		return http.StatusServiceUnavailable

	case errors.Is(err, ErrDuplicateRequest):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}
