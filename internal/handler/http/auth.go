package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/internal/service"
	"github.com/MKhiriev/pass-guard/internal/utils"
	"github.com/MKhiriev/pass-guard/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var registration models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&registration); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	account, err := h.services.AuthService.Register(ctx, registration, clientMeta(r))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPayload):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrDuplicateAccount):
			log.Err(err).Msg("email already registered")
			http.Error(w, "email already registered", http.StatusConflict)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during account registration")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, account, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	response, err := h.services.AuthService.Login(ctx, credentials, clientMeta(r))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPayload):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrInvalidCredentials):
			log.Err(err).Msg("invalid email/password")
			http.Error(w, "invalid email/password", http.StatusUnauthorized)
			return
		case errors.Is(err, service.ErrAccountLocked):
			log.Err(err).Msg("account is temporarily locked")
			http.Error(w, "account is temporarily locked", http.StatusLocked)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during login")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	if response.Token != "" {
		w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", response.Token))
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, found := utils.GetAccountIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.logout").Msg("no account ID was given")
		http.Error(w, "no account ID was given", http.StatusBadRequest)
		return
	}

	sessionID, found := utils.GetSessionIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.logout").Msg("no session ID was given")
		http.Error(w, "no session ID was given", http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.Logout(ctx, accountID, sessionID, clientMeta(r)); err != nil {
		log.Err(err).Str("func", "*Handler.logout").Msg("error revoking session")
		http.Error(w, "error revoking session", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
