package http

import (
	"net/http"

	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/internal/utils"
	"github.com/MKhiriev/pass-guard/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, found := utils.GetAccountIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.listSessions").Msg("no account ID was given")
		http.Error(w, "no account ID was given", http.StatusBadRequest)
		return
	}

	sessions, err := h.services.AuthService.ListSessions(ctx, accountID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listSessions").Msg("error listing sessions")
		http.Error(w, "error listing sessions", statusFromError(err))
		return
	}

	utils.WriteJSON(w, sessions, http.StatusOK)
}

func (h *Handler) revokeSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, found := utils.GetAccountIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.revokeSession").Msg("no account ID was given")
		http.Error(w, "no account ID was given", http.StatusBadRequest)
		return
	}

	role, _ := utils.GetRoleFromContext(ctx)

	targetSessionID := chi.URLParam(r, "sessionID")
	if targetSessionID == "" {
		log.Error().Str("func", "*Handler.revokeSession").Msg("no session ID was given")
		http.Error(w, "no session ID was given", http.StatusBadRequest)
		return
	}

	err := h.services.AuthService.RevokeSession(ctx, accountID, models.Role(role), targetSessionID, clientMeta(r))
	if err != nil {
		log.Err(err).Str("func", "*Handler.revokeSession").Msg("error revoking session")
		http.Error(w, "error revoking session", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
