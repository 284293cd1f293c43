package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/kirana-ledger/models"
	"github.com/golang-jwt/jwt/v5"
)

// bearerScheme is the only accepted Authorization scheme.
const bearerScheme = "Bearer"

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token with the given parameters.
//
// The token includes the following standard claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the principal name
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus ttl
//
// All parameters are required. Returns [ErrInvalidTokenParams] if any of
// them are empty or ttl is not positive.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("kirana", "alice", time.Hour, "secret")
func GenerateJWTToken(issuer, subject string, ttl time.Duration, signKey string) (models.Token, error) {
	return GenerateJWTTokenAt(issuer, subject, ttl, signKey, time.Now())
}

// GenerateJWTTokenAt is GenerateJWTToken with an explicit issue time.
func GenerateJWTTokenAt(issuer, subject string, ttl time.Duration, signKey string, now time.Time) (models.Token, error) {
	if issuer == "" || subject == "" || ttl <= 0 || signKey == "" {
		return models.Token{}, ErrInvalidTokenParams
	}

	// NumericDate has second precision; truncate so the returned token
	// matches what a parser reads back.
	now = now.Truncate(time.Second)
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{
		SignedString: tokenString,
		Subject:      subject,
		IssuedAt:     claims.IssuedAt.Time,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts its claims.
//
// Validation includes:
//   - Expiration (exp) claim check, evaluated before the signature
//   - Signature verification (HS256 only) using the provided sign key
//   - Issuer (iss) claim check against the provided issuer
//   - Subject (sub) claim presence
//
// The returned error wraps exactly one of [ErrTokenExpired],
// [ErrTokenInvalidSignature] or [ErrTokenMalformed].
//
// Example usage:
//
//	token, err := utils.ValidateAndParseJWTToken(rawToken, "secret", "kirana")
//	if errors.Is(err, utils.ErrTokenExpired) {
//	    // stale credential
//	}
func ValidateAndParseJWTToken(tokenString, signKey, issuer string) (models.Token, error) {
	return ValidateAndParseJWTTokenAt(tokenString, signKey, issuer, time.Now())
}

// ValidateAndParseJWTTokenAt is ValidateAndParseJWTToken evaluated at now.
func ValidateAndParseJWTTokenAt(tokenString, signKey, issuer string, now time.Time) (models.Token, error) {
	// jwt/v5 verifies the signature before the claims, so an expired token
	// with a bad signature would surface as a signature error. Read exp from
	// the unverified claims first.
	unverified := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, unverified); err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}
	if unverified.Subject == "" || unverified.ExpiresAt == nil {
		return models.Token{}, fmt.Errorf("%w: missing sub or exp claim", ErrTokenMalformed)
	}
	if !now.Before(unverified.ExpiresAt.Time) {
		return models.Token{}, ErrTokenExpired
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return models.Token{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return models.Token{}, fmt.Errorf("%w: %w", ErrTokenMalformed, err)
		default:
			return models.Token{}, fmt.Errorf("%w: %w", ErrTokenInvalidSignature, err)
		}
	}

	token := models.Token{
		SignedString: tokenString,
		Subject:      claims.Subject,
		ExpiresAt:    claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		token.IssuedAt = claims.IssuedAt.Time
	}

	return token, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerScheme) {
		return "", ErrInvalidAuthorizationHeader
	}
	return parts[1], nil
}

// ParseSubjectFromJWT returns the sub claim without verifying the token.
// The result identifies whom the token claims to be; it must never be
// trusted on its own.
func ParseSubjectFromJWT(tokenString string) (string, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}
	if sub == "" {
		return "", fmt.Errorf("%w: empty subject", ErrTokenMalformed)
	}

	return sub, nil
}
