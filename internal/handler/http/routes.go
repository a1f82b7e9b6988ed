package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/2fa/complete", h.completeTwoFactor)
		r.Get("/api/share/{shareID}", h.peekShare)
		r.Post("/api/share/{shareID}/redeem", h.redeemShare)
	})

	// routes behind an authenticated session
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/logout", h.logout)
		r.Get("/api/sessions", h.listSessions)
		r.Delete("/api/sessions/{sessionID}", h.revokeSession)
		r.Post("/api/2fa/setup", h.setupTwoFactor)
		r.Post("/api/2fa/enable", h.enableTwoFactor)
		r.Post("/api/2fa/disable", h.disableTwoFactor)
		r.Post("/api/share", h.createShare)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
