// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/kirana-ledger/internal/logger"
)

const (
	defaultHealthInterval = 15 * time.Second
	checkTimeout          = 2 * time.Second
)

// Check is a named dependency health check.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// HealthWorker checks every dependency once per interval and reports
// SERVING only when all of them answer.
type HealthWorker struct {
	checks   []Check
	reporter StatusReporter
	interval time.Duration

	logger *logger.Logger
}

func NewHealthWorker(reporter StatusReporter, interval time.Duration, logger *logger.Logger, checks ...Check) *HealthWorker {
	if interval <= 0 {
		interval = defaultHealthInterval
	}
	return &HealthWorker{
		checks:   checks,
		reporter: reporter,
		interval: interval,
		logger:   logger,
	}
}

func (w *HealthWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	serving := w.checkAll(ctx)
	w.reporter.SetServing(serving)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			next := w.checkAll(ctx)
			if next != serving {
				w.logger.Info().Str("func", "*HealthWorker.Run").Bool("serving", next).Msg("health status changed")
			}
			serving = next
			w.reporter.SetServing(serving)
		}
	}
}

// checkAll runs every check; one failure is enough to report NOT_SERVING, but
// all checks still run so each failure is logged.
func (w *HealthWorker) checkAll(ctx context.Context) bool {
	healthy := true
	for _, c := range w.checks {
		checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
		err := c.Ping(checkCtx)
		cancel()

		if err != nil {
			healthy = false
			w.logger.Warn().Err(err).Str("func", "*HealthWorker.checkAll").Str("check", c.Name).Msg("dependency unhealthy")
		}
	}
	return healthy
}
