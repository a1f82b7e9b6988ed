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

func (h *Handler) completeTwoFactor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var completion models.TwoFactorCompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&completion); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	response, err := h.services.AuthService.CompleteTwoFactorLogin(ctx, completion, clientMeta(r))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPayload):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrChallengeExpiredOrInvalid):
			log.Err(err).Msg("challenge expired or invalid")
			http.Error(w, "challenge expired or invalid", http.StatusUnauthorized)
			return
		case errors.Is(err, service.ErrInvalid2FACode):
			log.Err(err).Msg("invalid verification code")
			http.Error(w, "invalid verification code", http.StatusUnauthorized)
			return
		case errors.Is(err, service.ErrAccountLocked):
			log.Err(err).Msg("account is temporarily locked")
			http.Error(w, "account is temporarily locked", http.StatusLocked)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during two-factor completion")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", response.Token))

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) setupTwoFactor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, found := utils.GetAccountIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.setupTwoFactor").Msg("no account ID was given")
		http.Error(w, "no account ID was given", http.StatusBadRequest)
		return
	}

	setup, err := h.services.AuthService.SetupTwoFactor(ctx, accountID, clientMeta(r))
	if err != nil {
		log.Err(err).Str("func", "*Handler.setupTwoFactor").Msg("error starting two-factor enrollment")
		http.Error(w, "error starting two-factor enrollment", statusFromError(err))
		return
	}

	utils.WriteJSON(w, setup, http.StatusOK)
}

func (h *Handler) enableTwoFactor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, found := utils.GetAccountIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.enableTwoFactor").Msg("no account ID was given")
		http.Error(w, "no account ID was given", http.StatusBadRequest)
		return
	}

	var confirmation models.TwoFactorEnableRequest
	if err := json.NewDecoder(r.Body).Decode(&confirmation); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	recoveryCodes, err := h.services.AuthService.EnableTwoFactor(ctx, accountID, confirmation, clientMeta(r))
	if err != nil {
		log.Err(err).Str("func", "*Handler.enableTwoFactor").Msg("error enabling two-factor authentication")
		http.Error(w, "error enabling two-factor authentication", statusFromError(err))
		return
	}

	utils.WriteJSON(w, recoveryCodes, http.StatusOK)
}

func (h *Handler) disableTwoFactor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, found := utils.GetAccountIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.disableTwoFactor").Msg("no account ID was given")
		http.Error(w, "no account ID was given", http.StatusBadRequest)
		return
	}

	var request models.TwoFactorDisableRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.DisableTwoFactor(ctx, accountID, request, clientMeta(r)); err != nil {
		log.Err(err).Str("func", "*Handler.disableTwoFactor").Msg("error disabling two-factor authentication")
		http.Error(w, "error disabling two-factor authentication", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
