package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MKhiriev/kirana-ledger/internal/logger"
	"github.com/MKhiriev/kirana-ledger/internal/store"
	"github.com/MKhiriev/kirana-ledger/models"
)

type reportService struct {
	transactionRepository store.TransactionRepository
	now                   func() time.Time

	logger *logger.Logger
}

func NewReportService(transactionRepository store.TransactionRepository, logger *logger.Logger) ReportService {
	return &reportService{
		transactionRepository: transactionRepository,
		now:                   time.Now,
		logger:                logger,
	}
}

// Generate sums converted amounts over the window ending today, both ends
// inclusive. The result always holds exactly one report.
func (s *reportService) Generate(ctx context.Context, period models.ReportPeriod) ([]models.Report, error) {
	period = models.ReportPeriod(strings.ToLower(string(period)))

	to := models.NewDate(s.now())
	var from models.Date
	switch period {
	case models.PeriodWeekly:
		from = models.NewDate(to.AddDate(0, 0, -7))
	case models.PeriodMonthly:
		from = models.NewDate(to.AddDate(0, -1, 0))
	case models.PeriodYearly:
		from = models.NewDate(to.AddDate(-1, 0, 0))
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}

	transactions, err := s.transactionRepository.ListTransactionsBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("error loading transactions for report: %w", err)
	}

	credit, debit := decimal.Zero, decimal.Zero
	for _, t := range transactions {
		switch t.Type.Normalize() {
		case models.TransactionCredit:
			credit = credit.Add(t.ConvertedAmount)
		case models.TransactionDebit:
			debit = debit.Add(t.ConvertedAmount)
		}
	}

	logger.FromContext(ctx).Debug().Str("func", "*reportService.Generate").Str("period", string(period)).
		Str("from", from.String()).Str("to", to.String()).Int("transactions", len(transactions)).Msg("report generated")

	return []models.Report{{
		Period:      period.Title(),
		TotalCredit: credit,
		TotalDebit:  debit,
		NetFlow:     credit.Sub(debit),
	}}, nil
}
