package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape of the config file. The same tags serve
// JSON and YAML.
type fileConfig struct {
	App struct {
		TokenSignKey     string   `json:"token_sign_key" yaml:"token_sign_key"`
		TokenIssuer      string   `json:"token_issuer" yaml:"token_issuer"`
		TokenDuration    Duration `json:"token_duration" yaml:"token_duration"`
		PasswordHashCost int      `json:"password_hash_cost" yaml:"password_hash_cost"`
		LookupTimeout    Duration `json:"lookup_timeout" yaml:"lookup_timeout"`
		StaleTokenPolicy string   `json:"stale_token_policy" yaml:"stale_token_policy"`
		LogLevel         string   `json:"log_level" yaml:"log_level"`
	} `json:"app" yaml:"app"`

	Storage struct {
		DB struct {
			Driver string `json:"driver" yaml:"driver"`
			DSN    string `json:"dsn" yaml:"dsn"`
		} `json:"db" yaml:"db"`
	} `json:"storage" yaml:"storage"`

	QuotaStore struct {
		Backend        string   `json:"backend" yaml:"backend"`
		Address        string   `json:"address" yaml:"address"`
		Password       string   `json:"password" yaml:"password"`
		DB             int      `json:"db" yaml:"db"`
		Timeout        Duration `json:"timeout" yaml:"timeout"`
		Capacity       int64    `json:"capacity" yaml:"capacity"`
		RefillRate     float64  `json:"refill_rate" yaml:"refill_rate"`
		RefillInterval Duration `json:"refill_interval" yaml:"refill_interval"`
		KeyScope       string   `json:"key_scope" yaml:"key_scope"`
		FailOpen       bool     `json:"fail_open" yaml:"fail_open"`
	} `json:"quota_store" yaml:"quota_store"`

	Server struct {
		HTTPAddress     string   `json:"http_address" yaml:"http_address"`
		GRPCAddress     string   `json:"grpc_address" yaml:"grpc_address"`
		RequestTimeout  Duration `json:"request_timeout" yaml:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	} `json:"server" yaml:"server"`

	Adapter struct {
		RatesURL       string   `json:"rates_url" yaml:"rates_url"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
		RatesCacheTTL  Duration `json:"rates_cache_ttl" yaml:"rates_cache_ttl"`
	} `json:"adapter" yaml:"adapter"`

	Workers struct {
		HealthInterval Duration `json:"health_interval" yaml:"health_interval"`
	} `json:"workers" yaml:"workers"`
}

// parseFile reads a config file. Files ending in .yaml or .yml are decoded
// as YAML, everything else as JSON.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return fc.toStructured(), nil
}

func (fc *fileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey:     fc.App.TokenSignKey,
			TokenIssuer:      fc.App.TokenIssuer,
			TokenDuration:    time.Duration(fc.App.TokenDuration),
			PasswordHashCost: fc.App.PasswordHashCost,
			LookupTimeout:    time.Duration(fc.App.LookupTimeout),
			StaleTokenPolicy: fc.App.StaleTokenPolicy,
			LogLevel:         fc.App.LogLevel,
		},
		Storage: Storage{
			DB: DB{
				Driver: fc.Storage.DB.Driver,
				DSN:    fc.Storage.DB.DSN,
			},
		},
		QuotaStore: QuotaStore{
			Backend:        fc.QuotaStore.Backend,
			Address:        fc.QuotaStore.Address,
			Password:       fc.QuotaStore.Password,
			DB:             fc.QuotaStore.DB,
			Timeout:        time.Duration(fc.QuotaStore.Timeout),
			Capacity:       fc.QuotaStore.Capacity,
			RefillRate:     fc.QuotaStore.RefillRate,
			RefillInterval: time.Duration(fc.QuotaStore.RefillInterval),
			KeyScope:       fc.QuotaStore.KeyScope,
			FailOpen:       fc.QuotaStore.FailOpen,
		},
		Server: Server{
			HTTPAddress:     fc.Server.HTTPAddress,
			GRPCAddress:     fc.Server.GRPCAddress,
			RequestTimeout:  time.Duration(fc.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(fc.Server.ShutdownTimeout),
		},
		Adapter: Adapter{
			RatesURL:       fc.Adapter.RatesURL,
			RequestTimeout: time.Duration(fc.Adapter.RequestTimeout),
			RatesCacheTTL:  time.Duration(fc.Adapter.RatesCacheTTL),
		},
		Workers: Workers{
			HealthInterval: time.Duration(fc.Workers.HealthInterval),
		},
	}
}

// Duration is a wrapper around time.Duration that decodes from strings
// like "1h" or "30s" in both JSON and YAML. Bare numbers are nanoseconds.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		return d.set(value)
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var n int64
	if err := node.Decode(&n); err == nil {
		*d = Duration(time.Duration(n))
		return nil
	}

	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return d.set(s)
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) set(s string) error {
	tmp, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}
