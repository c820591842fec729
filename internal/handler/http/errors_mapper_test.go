package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/savelyev-an/accountd/internal/service"
	"github.com/savelyev-an/accountd/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid data", service.ErrInvalidDataProvided, http.StatusBadRequest},
		{"authentication failed", service.ErrAuthenticationFailed, http.StatusUnauthorized},
		{"duplicate email", store.ErrEmailAlreadyExists, http.StatusConflict},
		{"not found", store.ErrAccountNotFound, http.StatusNotFound},
		{"transient storage fault", store.ErrStorageUnavailable, http.StatusServiceUnavailable},
		{"wrapped transient fault", fmt.Errorf("account lookup failed: %w", store.ErrStorageUnavailable), http.StatusServiceUnavailable},
		{"unknown error", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

// TestWriteError_MasksServerFaults verifies that 5xx responses carry only the
// generic status text, never the wrapped storage details.
func TestWriteError_MasksServerFaults(t *testing.T) {
	for _, err := range []error{
		fmt.Errorf("%w: dial tcp 10.0.0.5:5432", store.ErrStorageUnavailable),
		fmt.Errorf("unexpected DB error: dial tcp 10.0.0.5:5432"),
	} {
		rec := httptest.NewRecorder()
		writeError(rec, err)

		assert.GreaterOrEqual(t, rec.Code, http.StatusInternalServerError)
		assert.NotContains(t, rec.Body.String(), "10.0.0.5")
		assert.Equal(t, http.StatusText(rec.Code), strings.TrimSpace(rec.Body.String()))
	}
}
