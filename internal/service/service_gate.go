// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/kirana-ledger/internal/config"
	"github.com/MKhiriev/kirana-ledger/internal/logger"
	"github.com/MKhiriev/kirana-ledger/internal/ratelimit"
	"github.com/MKhiriev/kirana-ledger/internal/utils"
	"github.com/MKhiriev/kirana-ledger/models"
)

// gateService admits bearer tokens.
//
// A token that names a known principal but fails verification (expired,
// bad signature, subject mismatch) is either rejected (strict policy) or
// re-admitted as long as the re-verification bucket has budget (fallback
// policy).
type gateService struct {
	identityService IdentityService
	authService     AuthService
	limiter         *ratelimit.Limiter

	policy string
	scope  ratelimit.Scope

	logger *logger.Logger
}

// NewGateService constructs a GateService. limiter must be non-nil under the
// fallback policy.
func NewGateService(identityService IdentityService, authService AuthService, limiter *ratelimit.Limiter, cfg config.StructuredConfig, logger *logger.Logger) GateService {
	return &gateService{
		identityService: identityService,
		authService:     authService,
		limiter:         limiter,
		policy:          cfg.App.StaleTokenPolicy,
		scope:           ratelimit.Scope(cfg.QuotaStore.KeyScope),
		logger:          logger,
	}
}

// Admit returns the principal the token speaks for.
//
// Errors:
//   - ErrUnauthenticated (wrapped): the token is not a JWT at all; the
//     request should continue without a principal.
//   - ErrIdentityNotFound: the subject names nobody. No budget is spent.
//   - ErrIdentityStoreUnavailable (wrapped).
//   - ErrTokenRejected (wrapped): verification failed under the strict policy.
//   - RateLimitedError: verification failed and the bucket is empty.
//   - ratelimit.ErrQuotaStoreUnavailable (wrapped) under fail-closed.
func (g *gateService) Admit(ctx context.Context, tokenString string) (models.Principal, error) {
	log := logger.FromContext(ctx)

	// already authenticated further up the chain
	if p, ok := utils.PrincipalFromContext(ctx); ok {
		return p, nil
	}

	subject, err := utils.ParseSubjectFromJWT(tokenString)
	if err != nil {
		return models.Principal{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	principal, err := g.identityService.FindByName(ctx, subject)
	if err != nil {
		return models.Principal{}, err
	}

	token, verifyErr := g.authService.ParseToken(ctx, tokenString)
	if verifyErr == nil && token.Subject == principal.Name {
		return principal, nil
	}
	if verifyErr == nil {
		verifyErr = fmt.Errorf("subject %q does not match principal %q", token.Subject, principal.Name)
	}

	if g.policy == config.StaleTokenPolicyStrict {
		log.Info().Err(verifyErr).Str("func", "*gateService.Admit").Str("principal", principal.Name).Msg("stale token rejected")
		return models.Principal{}, fmt.Errorf("%w: %w", ErrTokenRejected, verifyErr)
	}

	key := ratelimit.ReverifyKey(g.scope, principal.Name, utils.ClientIPFromContext(ctx))
	d, err := g.limiter.Consume(ctx, key, 1)
	if err != nil {
		return models.Principal{}, err
	}
	if !d.Allowed {
		log.Warn().Str("func", "*gateService.Admit").Str("key", key).Dur("retry_after", d.RetryAfter).Msg("re-verification budget exhausted")
		return models.Principal{}, &RateLimitedError{RetryAfter: d.RetryAfter}
	}

	log.Debug().Err(verifyErr).Str("func", "*gateService.Admit").Str("principal", principal.Name).
		Float64("remaining", d.Remaining).Msg("stale token admitted")
	return principal, nil
}
