// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/internal/utils"
	"github.com/MKhiriev/pass-guard/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) createShare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, found := utils.GetAccountIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.createShare").Msg("no account ID was given")
		http.Error(w, "no account ID was given", http.StatusBadRequest)
		return
	}

	var request models.CreateShareRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.ShareService.CreateShare(ctx, request, accountID, clientMeta(r))
	if err != nil {
		log.Err(err).Str("func", "*Handler.createShare").Msg("error creating share")
		http.Error(w, "error creating share", statusFromError(err))
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) peekShare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	shareID := chi.URLParam(r, "shareID")

	metadata, err := h.services.ShareService.PeekShare(ctx, shareID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.peekShare").Msg("error reading share")
		http.Error(w, "error reading share", statusFromError(err))
		return
	}

	utils.WriteJSON(w, metadata, http.StatusOK)
}

func (h *Handler) redeemShare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	shareID := chi.URLParam(r, "shareID")

	redeemed, err := h.services.ShareService.RedeemShare(ctx, shareID, clientMeta(r))
	if err != nil {
		log.Err(err).Str("func", "*Handler.redeemShare").Msg("error redeeming share")
		http.Error(w, "error redeeming share", statusFromError(err))
		return
	}

	utils.WriteJSON(w, redeemed, http.StatusOK)
}
