package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates a missing token sign key, a
	// non-positive token duration or lookup timeout, or an unknown stale
	// token policy.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidStorageConfigs indicates an unknown driver or empty DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidQuotaStoreConfigs indicates invalid bucket parameters, an
	// unknown backend or key scope, or redis without an address.
	ErrInvalidQuotaStoreConfigs = errors.New("invalid quota store configuration")
	// ErrInvalidServerConfigs indicates a missing HTTP address.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidAdapterConfigs indicates a rates URL without a {base}
	// placeholder.
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidWorkerConfigs indicates a non-positive health interval.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
