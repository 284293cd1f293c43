package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/kirana-ledger/internal/service"
	"github.com/MKhiriev/kirana-ledger/models"
)

func TestReports(t *testing.T) {
	var requested models.ReportPeriod
	reports := &fakeReportService{generateFn: func(_ context.Context, period models.ReportPeriod) ([]models.Report, error) {
		requested = period
		return []models.Report{{
			Period:      period.Title(),
			TotalCredit: decimal.NewFromInt(100),
			TotalDebit:  decimal.NewFromInt(40),
			NetFlow:     decimal.NewFromInt(60),
		}}, nil
	}}
	router := newTestRouter(t, &service.Services{ReportService: reports})

	for path, period := range map[string]models.ReportPeriod{
		"/reports/weekly":  models.PeriodWeekly,
		"/reports/monthly": models.PeriodMonthly,
		"/reports/yearly":  models.PeriodYearly,
	} {
		t.Run(path, func(t *testing.T) {
			rec := serve(router, http.MethodGet, path, "user-token", "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, period, requested)

			var got []models.Report
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			require.Len(t, got, 1)
			assert.Equal(t, period.Title(), got[0].Period)
			assert.True(t, got[0].NetFlow.Equal(decimal.NewFromInt(60)))
		})
	}
}

func TestReports_RequireUser(t *testing.T) {
	router := newTestRouter(t, &service.Services{ReportService: &fakeReportService{}})

	assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodGet, "/reports/weekly", "", "").Code)
	assert.Equal(t, http.StatusForbidden, serve(router, http.MethodGet, "/reports/weekly", "employee-token", "").Code)
}
