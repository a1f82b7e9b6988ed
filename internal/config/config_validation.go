// SPDX-License-Identifier: Apache-2.0

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Auth.TokenSignKey == "" {
		return ErrInvalidAuthConfigs
	}

	if cfg.Auth.BcryptCost < 10 || cfg.Auth.BcryptCost > 16 {
		return ErrInvalidAuthConfigs
	}

	if cfg.Lockout.Threshold < 1 || cfg.Lockout.BackoffBase <= 0 || cfg.Lockout.BackoffCap < cfg.Lockout.BackoffBase {
		return ErrInvalidLockoutConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}
