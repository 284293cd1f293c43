// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/kirana-ledger/internal/logger"
)

const (
	defaultReadRetries    = 2
	defaultReadRetryDelay = 20 * time.Millisecond
)

// withRetry runs a read statement and runs it again, with exponential
// backoff, while the driver reports a [Transient] failure. The last error is
// returned once the retries are spent; ctx cancellation stops at once.
// Only idempotent statements may go through it.
func (db *DB) withRetry(ctx context.Context, op func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(db.readRetries, retry.NewExponential(db.readRetryDelay))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := op(ctx)
		if err != nil && db.isTransient(err) {
			logger.FromContext(ctx).Warn().Err(err).Str("func", "*DB.withRetry").Msg("transient database error, retrying")
			return retry.RetryableError(err)
		}
		return err
	})
}

func (db *DB) isTransient(err error) bool {
	return db.errorClassificator != nil && db.errorClassificator.Classify(err) == Transient
}
