package http

import (
	"net/http"

	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/internal/service"
	"github.com/MKhiriev/pass-guard/models"
)

type Handler struct {
	services *service.Services

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// clientMeta captures the advisory client information recorded in audit
// events and session rows.
func clientMeta(r *http.Request) models.ClientMeta {
	return models.ClientMeta{
		IP:        r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
}
