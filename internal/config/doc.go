// Package config provides configuration loading, merging, and validation
// facilities for the ledger service.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. Config file (JSON, or YAML when the path ends in .yaml/.yml)
//
// Defaults are applied to whatever is still unset and the result is
// validated. The entry point is [GetStructuredConfig].
package config
