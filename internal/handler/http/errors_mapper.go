package http

import (
	"errors"
	"net/http"

	"github.com/savelyev-an/accountd/internal/service"
	"github.com/savelyev-an/accountd/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWeakPassword:            http.StatusBadRequest,
	service.ErrAuthenticationFailed:    http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrNicknameExhausted:       http.StatusConflict,

	store.ErrEmailAlreadyExists:    http.StatusConflict,
	store.ErrNicknameAlreadyExists: http.StatusConflict,
	store.ErrAccountNotFound:       http.StatusNotFound,

	store.ErrStorageUnavailable: http.StatusServiceUnavailable,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError maps err to its HTTP status. Server-side faults are masked with
// the generic status text so storage details never reach the client.
func writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = http.StatusText(status)
	}
	http.Error(w, message, status)
}
