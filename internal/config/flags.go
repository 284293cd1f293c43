package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/pflag"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses command-line flags from args into a fresh config.
//
// Flags:
//
//	-a, --address              HTTP server address [host]:port
//	    --grpc-address         gRPC health server address [host]:port
//	-d, --database-dsn         database DSN
//	    --db-driver            pgx | sqlite3
//	-c, --config               JSON or YAML config file path
//	    --token-sign-key       token signing key
//	    --token-issuer         token issuer name
//	    --token-duration       token lifetime (e.g. 1h)
//	    --lookup-timeout       identity lookup timeout
//	    --stale-token-policy   fallback | strict
//	    --log-level            zerolog level
//	    --request-timeout      inbound request timeout
//	    --quota-backend        redis | memory
//	    --quota-address        Redis address
//	    --quota-timeout        quota store call timeout
//	    --quota-capacity       bucket capacity
//	    --quota-refill-rate    tokens per refill interval
//	    --quota-refill-interval refill interval
//	    --quota-key-scope      shared | principal | ip
//	    --rates-url            exchange rates URL with {base}
//	    --health-interval      dependency health-check period
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := pflag.NewFlagSet("kirana", pflag.ContinueOnError)

	var cfg StructuredConfig
	var httpAddress, grpcAddress NetAddress

	fs.VarP(&httpAddress, "address", "a", "HTTP server address host:port")
	fs.Var(&grpcAddress, "grpc-address", "gRPC health server address host:port")
	fs.StringVarP(&cfg.Storage.DB.DSN, "database-dsn", "d", "", "Database DSN")
	fs.StringVar(&cfg.Storage.DB.Driver, "db-driver", "", "Database driver (pgx, sqlite3)")
	fs.StringVarP(&cfg.ConfigFilePath, "config", "c", "", "JSON or YAML config file path")

	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "Token duration (e.g. 1h, 30m)")
	fs.DurationVar(&cfg.App.LookupTimeout, "lookup-timeout", 0, "Identity lookup timeout")
	fs.StringVar(&cfg.App.StaleTokenPolicy, "stale-token-policy", "", "Stale token policy (fallback, strict)")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "Log level")

	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g. 30s)")

	fs.StringVar(&cfg.QuotaStore.Backend, "quota-backend", "", "Quota store backend (redis, memory)")
	fs.StringVar(&cfg.QuotaStore.Address, "quota-address", "", "Redis address host:port")
	fs.DurationVar(&cfg.QuotaStore.Timeout, "quota-timeout", 0, "Quota store call timeout")
	fs.Int64Var(&cfg.QuotaStore.Capacity, "quota-capacity", 0, "Bucket capacity")
	fs.Float64Var(&cfg.QuotaStore.RefillRate, "quota-refill-rate", 0, "Tokens per refill interval")
	fs.DurationVar(&cfg.QuotaStore.RefillInterval, "quota-refill-interval", 0, "Refill interval")
	fs.StringVar(&cfg.QuotaStore.KeyScope, "quota-key-scope", "", "Rate-limit key scope (shared, principal, ip)")

	fs.StringVar(&cfg.Adapter.RatesURL, "rates-url", "", "Exchange rates URL containing {base}")
	fs.DurationVar(&cfg.Workers.HealthInterval, "health-interval", 0, "Dependency health-check interval")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Server.HTTPAddress = httpAddress.String()
	cfg.Server.GRPCAddress = grpcAddress.String()

	return &cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses the input string of form [host]:port and populates the
// NetAddress. An empty host binds all interfaces; otherwise it must be an
// IP address or "localhost".
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in 1..65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "address"
}

var _ pflag.Value = (*NetAddress)(nil)
