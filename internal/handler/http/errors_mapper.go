package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/pass-guard/internal/service"
	"github.com/MKhiriev/pass-guard/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidPayload:            http.StatusBadRequest,
	service.ErrInvalidCredentials:        http.StatusUnauthorized,
	service.ErrInvalid2FACode:            http.StatusUnauthorized,
	service.ErrChallengeExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrSessionExpiredOrRevoked:   http.StatusUnauthorized,
	service.ErrAccountLocked:             http.StatusLocked,
	service.ErrNotAuthorized:             http.StatusForbidden,
	service.ErrDuplicateAccount:          http.StatusConflict,
	service.ErrTwoFactorStateConflict:    http.StatusConflict,
	// unknown, expired, and exhausted shares all answer 404: the split
	// exists only for the audit trail, a prober must not learn whether a
	// capability URL ever existed
	service.ErrShareNotFound:    http.StatusNotFound,
	service.ErrShareUnavailable: http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
