package config

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	config.applyDefaults()

	return config, config.validate()
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	flags := ParseFlags()

	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	isJSONSpecified := false

	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			isJSONSpecified = true
			jsonPath = cfg.JSONFilePath
		}
	}

	if isJSONSpecified {
		jsonCfg, err := parseJSON(jsonPath)
		if err != nil {
			b.err = errors.Join(b.err, err)
			return b
		}
		b.configs = append(b.configs, jsonCfg)
	}

	return b
}

// applyDefaults fills zero-valued tunables with their documented defaults.
// Secrets (sign key, DSN) have no defaults and stay subject to validation.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Auth.SessionDuration == 0 {
		cfg.Auth.SessionDuration = 24 * time.Hour
	}
	if cfg.Auth.ChallengeDuration == 0 {
		cfg.Auth.ChallengeDuration = 5 * time.Minute
	}
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = 12
	}
	if cfg.Auth.TokenIssuer == "" {
		cfg.Auth.TokenIssuer = "pass-guard"
	}
	if cfg.Auth.TOTPIssuer == "" {
		cfg.Auth.TOTPIssuer = "PassGuard"
	}
	if cfg.Lockout.Threshold == 0 {
		cfg.Lockout.Threshold = 5
	}
	if cfg.Lockout.BackoffBase == 0 {
		cfg.Lockout.BackoffBase = time.Minute
	}
	if cfg.Lockout.BackoffCap == 0 {
		cfg.Lockout.BackoffCap = 15 * time.Minute
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = "localhost:8080"
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}
	if cfg.Audit.BufferSize == 0 {
		cfg.Audit.BufferSize = 256
	}
}
