// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Anton Savelyev

package config

import "time"

const (
	defaultMaxLoginAttempts   = 5
	defaultMinPasswordEntropy = 50
	defaultTokenDuration      = time.Hour
	defaultRequestTimeout     = 30 * time.Second
	defaultNotifyQueueSize    = 128
	defaultNotifyTimeout      = 15 * time.Second
)

// applyDefaults fills policy fields that were left at their zero value by
// every configuration source. Connection settings (DSN, addresses, keys)
// intentionally have no defaults; their absence is a validation error.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.MaxLoginAttempts <= 0 {
		cfg.App.MaxLoginAttempts = defaultMaxLoginAttempts
	}
	if cfg.App.MinPasswordEntropy <= 0 {
		cfg.App.MinPasswordEntropy = defaultMinPasswordEntropy
	}
	if cfg.App.TokenDuration <= 0 {
		cfg.App.TokenDuration = defaultTokenDuration
	}
	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Notify.QueueSize <= 0 {
		cfg.Notify.QueueSize = defaultNotifyQueueSize
	}
	if cfg.Notify.Timeout <= 0 {
		cfg.Notify.Timeout = defaultNotifyTimeout
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
