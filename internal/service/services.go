package service

import (
	"github.com/MKhiriev/pass-guard/internal/config"
	"github.com/MKhiriev/pass-guard/internal/crypto"
	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/internal/store"
)

// Services aggregates every service the transport layer consumes.
type Services struct {
	AuthService  AuthService
	ShareService ShareService
}

// NewServices wires the service layer onto the given storages, crypto
// primitives, and audit pipeline.
func NewServices(storages *store.Storages, auditor auditEmitter, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	hasher := crypto.NewPasswordHasher(cfg.Auth.BcryptCost)
	totp := crypto.NewTotpEngine(cfg.Auth.TOTPIssuer)

	return &Services{
		AuthService:  NewAuthService(storages.Accounts, storages.Sessions, hasher, totp, auditor, cfg, logger),
		ShareService: NewShareService(storages.Shares, auditor, logger),
	}
}
