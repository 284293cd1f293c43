// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup. Every failing group
// contributes its sentinel error; the result is their join.
func (cfg *StructuredConfig) validate() error {
	return errors.Join(
		cfg.App.validate(),
		cfg.Storage.validate(),
		cfg.QuotaStore.validate(),
		cfg.Server.validate(),
		cfg.Adapter.validate(),
		cfg.Workers.validate(),
	)
}

func (a App) validate() error {
	switch {
	case a.TokenSignKey == "":
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	case a.TokenIssuer == "":
		return fmt.Errorf("%w: token issuer is required", ErrInvalidAppConfigs)
	case a.TokenDuration <= 0:
		return fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs)
	case a.PasswordHashCost < bcrypt.MinCost || a.PasswordHashCost > bcrypt.MaxCost:
		return fmt.Errorf("%w: password hash cost must be within [%d, %d]", ErrInvalidAppConfigs, bcrypt.MinCost, bcrypt.MaxCost)
	case a.LookupTimeout <= 0:
		return fmt.Errorf("%w: lookup timeout must be positive", ErrInvalidAppConfigs)
	case !slices.Contains([]string{StaleTokenPolicyFallback, StaleTokenPolicyStrict}, a.StaleTokenPolicy):
		return fmt.Errorf("%w: unknown stale token policy %q", ErrInvalidAppConfigs, a.StaleTokenPolicy)
	}
	return nil
}

func (s Storage) validate() error {
	if !slices.Contains([]string{DriverPostgres, DriverSQLite}, s.DB.Driver) {
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, s.DB.Driver)
	}
	if s.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}
	return nil
}

func (q QuotaStore) validate() error {
	switch {
	case !slices.Contains([]string{QuotaBackendRedis, QuotaBackendMemory}, q.Backend):
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidQuotaStoreConfigs, q.Backend)
	case q.Backend == QuotaBackendRedis && q.Address == "":
		return fmt.Errorf("%w: redis backend needs an address", ErrInvalidQuotaStoreConfigs)
	case q.Capacity <= 0 || q.RefillRate <= 0 || q.RefillInterval <= 0:
		return fmt.Errorf("%w: capacity, refill rate and interval must be positive", ErrInvalidQuotaStoreConfigs)
	case q.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidQuotaStoreConfigs)
	case !slices.Contains([]string{KeyScopeShared, KeyScopePrincipal, KeyScopeIP}, q.KeyScope):
		return fmt.Errorf("%w: unknown key scope %q", ErrInvalidQuotaStoreConfigs, q.KeyScope)
	}
	return nil
}

func (s Server) validate() error {
	if s.HTTPAddress == "" {
		return fmt.Errorf("%w: http address is required", ErrInvalidServerConfigs)
	}
	return nil
}

func (a Adapter) validate() error {
	if !strings.Contains(a.RatesURL, "{base}") {
		return fmt.Errorf("%w: rates url must contain {base}", ErrInvalidAdapterConfigs)
	}
	if a.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidAdapterConfigs)
	}
	return nil
}

func (w Workers) validate() error {
	if w.HealthInterval <= 0 {
		return fmt.Errorf("%w: health interval must be positive", ErrInvalidWorkerConfigs)
	}
	return nil
}
