package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/internal/service"
	"github.com/MKhiriev/pass-guard/internal/utils"
)

// auth is an HTTP middleware that enforces session-token authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// and validates it via [service.AuthService.ValidateRequest], which verifies
// the signature, rejects pending two-factor challenge tokens, and confirms
// the server-side session is still live. On success the authenticated
// account ID, role, and session ID are stored in the request context before
// delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized in the
// following cases:
//   - The "Authorization" header is absent ([ErrEmptyAuthorizationHeader]).
//   - The header value cannot be parsed as a bearer token
//     ([ErrInvalidAuthorizationHeader]).
//   - The token is expired, forged, pending, or its session has been revoked
//     ([service.ErrSessionExpiredOrRevoked]).
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(ErrInvalidAuthorizationHeader).Send()
			http.Error(w, ErrInvalidAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, session, err := h.services.AuthService.ValidateRequest(ctx, tokenString)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrSessionExpiredOrRevoked):
				log.Err(err).Msg("session expired or revoked")
				http.Error(w, service.ErrSessionExpiredOrRevoked.Error(), http.StatusUnauthorized)
				return
			default:
				log.Err(err).Msg("error occurred during request validation")
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
		}

		// Store the authenticated identity in the context so that downstream
		// handlers can retrieve it without re-validating the token.
		ctx = context.WithValue(ctx, utils.AccountIDCtxKey, token.AccountID())
		ctx = context.WithValue(ctx, utils.RoleCtxKey, token.Role)
		ctx = context.WithValue(ctx, utils.SessionIDCtxKey, session.SessionID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
