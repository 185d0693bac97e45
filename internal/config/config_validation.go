// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants required at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Auth.TokenSignKey == "" || cfg.Auth.TokenIssuer == "" || cfg.Auth.TokenDuration <= 0 {
		return ErrInvalidAuthConfigs
	}
	if cfg.Auth.PasswordCost < bcrypt.MinCost || cfg.Auth.PasswordCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: password cost must be in [%d, %d]", ErrInvalidAuthConfigs, bcrypt.MinCost, bcrypt.MaxCost)
	}

	switch cfg.Storage.DB.Driver {
	case DriverMemory:
	case DriverPostgres, DriverSQLite:
		if cfg.Storage.DB.DSN == "" {
			return fmt.Errorf("%w: DSN is required for driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
		}
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}
	if cfg.Server.AuthRateLimit < 0 || cfg.Server.AuthRateBurst < 0 {
		return fmt.Errorf("%w: negative auth rate limit", ErrInvalidServerConfigs)
	}

	if cfg.App.PageSize < 1 {
		return ErrInvalidAppConfigs
	}

	if cfg.Workers.SessionSweepInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
