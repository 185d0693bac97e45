package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/user-directory/internal/logger"
	"github.com/MKhiriev/user-directory/internal/service"
	"github.com/MKhiriev/user-directory/internal/store"
)

type errorStatus struct {
	err    error
	status int
}

// errorStatuses is scanned in order: an error wrapping several sentinels gets
// the status of the first one listed, so more specific errors come first.
var errorStatuses = []errorStatus{
	{ErrMalformedBody, http.StatusBadRequest},
	{ErrTooManyRequests, http.StatusTooManyRequests},
	{ErrRouteNotFound, http.StatusNotFound},

	{store.ErrRegistryUnavailable, http.StatusServiceUnavailable},

	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{service.ErrTokenCreationFailed, http.StatusInternalServerError},
	{service.ErrHashingPassword, http.StatusInternalServerError},

	{store.ErrNotFound, http.StatusNotFound},
	{store.ErrDuplicateEmail, http.StatusConflict},
	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrBeginningTransaction, http.StatusInternalServerError},
	{store.ErrCommitingTransaction, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, es := range errorStatuses {
		if errors.Is(err, es.err) {
			return es.status
		}
	}
	return http.StatusInternalServerError
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError logs err and responds with the status mapped from it. Faults
// are answered with the generic status text so store details stay server-side.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = http.StatusText(status)
	}

	logger.FromRequest(r).Err(err).Int("status", status).Msg("request failed")

	writeJSON(w, r, errorResponse{Error: message}, status)
}
