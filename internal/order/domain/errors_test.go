package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("create order: %w", ErrSessionUnavailable)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "invalid_phone", err: ErrInvalidPhone, want: http.StatusBadRequest},
		{name: "invalid_order", err: ErrInvalidOrder, want: http.StatusBadRequest},
		{name: "session_unavailable", err: ErrSessionUnavailable, want: http.StatusServiceUnavailable},
		{name: "session_unavailable_wrapped", err: wrapped, want: http.StatusServiceUnavailable},
		{name: "duplicate", err: ErrDuplicateRequest, want: http.StatusConflict},
		{name: "storage", err: ErrStorage, want: http.StatusInternalServerError},
		{name: "customer_missing", err: ErrCustomerMissing, want: http.StatusInternalServerError},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := HTTPStatus(tt.err); got != tt.want {
				t.Fatalf("HTTPStatus = %d, want %d", got, tt.want)
			}
		})
	}
}
