package config

import "time"

const (
	defaultTokenIssuer      = "kirana"
	defaultTokenDuration    = time.Hour
	defaultPasswordHashCost = 10
	defaultLookupTimeout    = 2 * time.Second

	defaultQuotaTimeout        = 250 * time.Millisecond
	defaultQuotaCapacity       = 10
	defaultQuotaRefillRate     = 10
	defaultQuotaRefillInterval = time.Minute

	defaultHTTPAddress     = ":8080"
	defaultRequestTimeout  = 30 * time.Second
	defaultShutdownTimeout = 10 * time.Second

	defaultRatesURL       = "https://api.exchangerate-api.com/v4/latest/{base}"
	defaultRatesTimeout   = 5 * time.Second
	defaultRatesCacheTTL  = time.Hour
	defaultHealthInterval = 15 * time.Second
)

// applyDefaults fills every unset field that has a sensible default.
// Secrets and the DSN have none.
func (cfg *StructuredConfig) applyDefaults() {
	setDefault(&cfg.App.TokenIssuer, defaultTokenIssuer)
	setDefault(&cfg.App.TokenDuration, defaultTokenDuration)
	setDefault(&cfg.App.PasswordHashCost, defaultPasswordHashCost)
	setDefault(&cfg.App.LookupTimeout, defaultLookupTimeout)
	setDefault(&cfg.App.StaleTokenPolicy, StaleTokenPolicyFallback)

	setDefault(&cfg.Storage.DB.Driver, DriverPostgres)

	if cfg.QuotaStore.Backend == "" {
		cfg.QuotaStore.Backend = QuotaBackendMemory
		if cfg.QuotaStore.Address != "" {
			cfg.QuotaStore.Backend = QuotaBackendRedis
		}
	}
	setDefault(&cfg.QuotaStore.Timeout, defaultQuotaTimeout)
	setDefault(&cfg.QuotaStore.Capacity, defaultQuotaCapacity)
	setDefault(&cfg.QuotaStore.RefillRate, defaultQuotaRefillRate)
	setDefault(&cfg.QuotaStore.RefillInterval, defaultQuotaRefillInterval)
	setDefault(&cfg.QuotaStore.KeyScope, KeyScopeShared)

	setDefault(&cfg.Server.HTTPAddress, defaultHTTPAddress)
	setDefault(&cfg.Server.RequestTimeout, defaultRequestTimeout)
	setDefault(&cfg.Server.ShutdownTimeout, defaultShutdownTimeout)

	setDefault(&cfg.Adapter.RatesURL, defaultRatesURL)
	setDefault(&cfg.Adapter.RequestTimeout, defaultRatesTimeout)
	setDefault(&cfg.Adapter.RatesCacheTTL, defaultRatesCacheTTL)

	setDefault(&cfg.Workers.HealthInterval, defaultHealthInterval)
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}
