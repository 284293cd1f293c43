package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/kirana-ledger/internal/config"
	"github.com/MKhiriev/kirana-ledger/internal/logger"
	"github.com/MKhiriev/kirana-ledger/internal/ratelimit"
	"github.com/MKhiriev/kirana-ledger/internal/utils"
	"github.com/MKhiriev/kirana-ledger/models"
)

// dummyPassword is hashed once at startup; unknown usernames are compared
// against it so both failure paths cost one bcrypt comparison.
const dummyPassword = "kirana-ledger-unknown-user"

// authService is the concrete implementation of AuthService.
// It verifies credentials against the identity store and issues JWT tokens.
type authService struct {
	identityService IdentityService

	// loginLimiter, when set, charges every login attempt against a
	// per-username bucket.
	loginLimiter *ratelimit.Limiter

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	dummyHash string
	now       func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs an AuthService. loginLimiter may be nil, in which
// case logins are never rate limited.
//
// An invalid cfg.PasswordHashCost is an error.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(identityService IdentityService, loginLimiter *ratelimit.Limiter, cfg config.App, logger *logger.Logger) (AuthService, error) {
	dummyHash, err := utils.HashPassword(dummyPassword, cfg.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("error preparing dummy hash: %w", err)
	}

	return &authService{
		identityService: identityService,
		loginLimiter:    loginLimiter,
		tokenSignKey:    cfg.TokenSignKey,
		tokenIssuer:     cfg.TokenIssuer,
		tokenDuration:   cfg.TokenDuration,
		dummyHash:       dummyHash,
		now:             time.Now,
		logger:          logger,
	}, nil
}

// Authenticate checks a username/password pair and issues a token.
//
// Returns:
//   - ErrInvalidDataProvided if either field is empty.
//   - ErrInvalidCredentials for an unknown user or a wrong password; the two
//     cases are indistinguishable to the caller.
//   - A RateLimitedError when login attempts for the username are exhausted.
//   - ErrIdentityStoreUnavailable (wrapped) when the user store fails.
func (a *authService) Authenticate(ctx context.Context, req models.AuthRequest) (models.Token, error) {
	log := logger.FromContext(ctx)

	if req.Username == "" || req.Password == "" {
		log.Debug().Str("func", "*authService.Authenticate").Msg("invalid credentials format")
		return models.Token{}, ErrInvalidDataProvided
	}

	if a.loginLimiter != nil {
		d, err := a.loginLimiter.Consume(ctx, ratelimit.LoginKey(req.Username), 1)
		if err != nil {
			return models.Token{}, err
		}
		if !d.Allowed {
			log.Warn().Str("func", "*authService.Authenticate").Str("username", req.Username).Msg("login attempts exhausted")
			return models.Token{}, &RateLimitedError{RetryAfter: d.RetryAfter}
		}
	}

	user, err := a.identityService.FindUser(ctx, req.Username)
	switch {
	case errors.Is(err, ErrIdentityNotFound):
		utils.ComparePassword(a.dummyHash, req.Password)
		log.Info().Str("func", "*authService.Authenticate").Msg("login rejected")
		return models.Token{}, ErrInvalidCredentials
	case err != nil:
		return models.Token{}, err
	}

	if !utils.ComparePassword(user.PasswordHash, req.Password) {
		log.Info().Str("func", "*authService.Authenticate").Msg("login rejected")
		return models.Token{}, ErrInvalidCredentials
	}

	return a.CreateToken(ctx, user.Username)
}

// CreateToken issues a signed JWT for subject.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, subject string) (models.Token, error) {
	token, err := utils.GenerateJWTTokenAt(a.tokenIssuer, subject, a.tokenDuration, a.tokenSignKey, a.now())
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// The returned error matches ErrTokenIsExpiredOrInvalid and also the
// underlying codec error (utils.ErrTokenExpired, utils.ErrTokenInvalidSignature
// or utils.ErrTokenMalformed).
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTTokenAt(tokenString, a.tokenSignKey, a.tokenIssuer, a.now())
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenIsExpiredOrInvalid, err)
	}

	return token, nil
}
