package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *StructuredConfig {
	cfg := minimalConfig()
	cfg.applyDefaults()
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(cfg *StructuredConfig) {}},
		{name: "missing sign key", mutate: func(cfg *StructuredConfig) { cfg.App.TokenSignKey = "" }, wantErr: ErrInvalidAppConfigs},
		{name: "negative token duration", mutate: func(cfg *StructuredConfig) { cfg.App.TokenDuration = -1 }, wantErr: ErrInvalidAppConfigs},
		{name: "unknown policy", mutate: func(cfg *StructuredConfig) { cfg.App.StaleTokenPolicy = "lenient" }, wantErr: ErrInvalidAppConfigs},
		{name: "hash cost too low", mutate: func(cfg *StructuredConfig) { cfg.App.PasswordHashCost = 3 }, wantErr: ErrInvalidAppConfigs},
		{name: "hash cost too high", mutate: func(cfg *StructuredConfig) { cfg.App.PasswordHashCost = 32 }, wantErr: ErrInvalidAppConfigs},
		{name: "hash cost at max", mutate: func(cfg *StructuredConfig) { cfg.App.PasswordHashCost = 31 }},
		{name: "unknown driver", mutate: func(cfg *StructuredConfig) { cfg.Storage.DB.Driver = "mysql" }, wantErr: ErrInvalidStorageConfigs},
		{name: "missing dsn", mutate: func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "unknown backend", mutate: func(cfg *StructuredConfig) { cfg.QuotaStore.Backend = "etcd" }, wantErr: ErrInvalidQuotaStoreConfigs},
		{name: "redis without address", mutate: func(cfg *StructuredConfig) { cfg.QuotaStore.Backend = QuotaBackendRedis }, wantErr: ErrInvalidQuotaStoreConfigs},
		{name: "zero capacity", mutate: func(cfg *StructuredConfig) { cfg.QuotaStore.Capacity = 0 }, wantErr: ErrInvalidQuotaStoreConfigs},
		{name: "negative refill", mutate: func(cfg *StructuredConfig) { cfg.QuotaStore.RefillRate = -1 }, wantErr: ErrInvalidQuotaStoreConfigs},
		{name: "unknown scope", mutate: func(cfg *StructuredConfig) { cfg.QuotaStore.KeyScope = "tenant" }, wantErr: ErrInvalidQuotaStoreConfigs},
		{name: "missing http address", mutate: func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" }, wantErr: ErrInvalidServerConfigs},
		{name: "rates url without base", mutate: func(cfg *StructuredConfig) { cfg.Adapter.RatesURL = "http://rates/latest" }, wantErr: ErrInvalidAdapterConfigs},
		{name: "zero health interval", mutate: func(cfg *StructuredConfig) { cfg.Workers.HealthInterval = 0 }, wantErr: ErrInvalidWorkerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_JoinsGroupErrors(t *testing.T) {
	cfg := validConfig()
	cfg.App.TokenSignKey = ""
	cfg.Workers.HealthInterval = 0

	err := cfg.validate()
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
	assert.ErrorIs(t, err, ErrInvalidWorkerConfigs)
	assert.NotErrorIs(t, err, ErrInvalidServerConfigs)
}
