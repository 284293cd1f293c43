package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/kirana-ledger/internal/config"
	"github.com/MKhiriev/kirana-ledger/internal/ratelimit"
	"github.com/MKhiriev/kirana-ledger/internal/utils"
	"github.com/MKhiriev/kirana-ledger/models"
)

const (
	testSignKey = "test-sign-key"
	testIssuer  = "kirana-test"
)

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: testNow}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:     testSignKey,
		TokenIssuer:      testIssuer,
		TokenDuration:    time.Hour,
		PasswordHashCost: bcrypt.MinCost,
		LookupTimeout:    time.Second,
		StaleTokenPolicy: config.StaleTokenPolicyFallback,
	}
}

func testBucket() ratelimit.BucketConfig {
	return ratelimit.BucketConfig{Capacity: 4, RefillRate: 4, RefillInterval: time.Minute}
}

func newTestLimiter(t *testing.T, clock *fakeClock, opts ...ratelimit.LimiterOption) (*ratelimit.Limiter, *ratelimit.MemoryStore) {
	t.Helper()
	store := ratelimit.NewMemoryStore(clock.Now)
	l, err := ratelimit.NewLimiter(store, testBucket(), opts...)
	require.NoError(t, err)
	return l, store
}

func hashedUser(t *testing.T, username, password string, role models.Authority) models.User {
	t.Helper()
	hash, err := utils.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return models.User{UserID: 1, Name: username, Username: username, PasswordHash: hash, Role: role}
}

func tokenAt(t *testing.T, subject string, issuedAt time.Time) string {
	t.Helper()
	token, err := utils.GenerateJWTTokenAt(testIssuer, subject, time.Hour, testSignKey, issuedAt)
	require.NoError(t, err)
	return token.SignedString
}

// unavailableStore is a QuotaStore whose backend is down.
type unavailableStore struct{}

func (unavailableStore) TryConsume(context.Context, string, ratelimit.BucketConfig, int64) (ratelimit.Decision, error) {
	return ratelimit.Decision{}, errors.New("dial tcp: connection refused")
}

func (unavailableStore) Ping(context.Context) error {
	return errors.New("dial tcp: connection refused")
}
