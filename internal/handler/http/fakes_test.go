package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/kirana-ledger/internal/logger"
	"github.com/MKhiriev/kirana-ledger/internal/service"
	"github.com/MKhiriev/kirana-ledger/models"
)

// ─────────────────────────────────────────────
// Service fakes: each method field can be overridden per test case.
// ─────────────────────────────────────────────

type fakeGateService struct {
	admitFn func(ctx context.Context, tokenString string) (models.Principal, error)
}

func (f *fakeGateService) Admit(ctx context.Context, tokenString string) (models.Principal, error) {
	return f.admitFn(ctx, tokenString)
}

type fakeAuthService struct {
	authenticateFn func(ctx context.Context, req models.AuthRequest) (models.Token, error)
}

func (f *fakeAuthService) Authenticate(ctx context.Context, req models.AuthRequest) (models.Token, error) {
	return f.authenticateFn(ctx, req)
}

func (f *fakeAuthService) CreateToken(context.Context, string) (models.Token, error) {
	return models.Token{}, nil
}

func (f *fakeAuthService) ParseToken(context.Context, string) (models.Token, error) {
	return models.Token{}, nil
}

type fakeUserService struct {
	listFn   func(ctx context.Context) ([]models.User, error)
	createFn func(ctx context.Context, user models.User) (models.User, error)
	updateFn func(ctx context.Context, user models.User) (models.User, error)
	deleteFn func(ctx context.Context, userID int64) error
}

func (f *fakeUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return f.listFn(ctx)
}

func (f *fakeUserService) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	return f.createFn(ctx, user)
}

func (f *fakeUserService) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	return f.updateFn(ctx, user)
}

func (f *fakeUserService) DeleteUser(ctx context.Context, userID int64) error {
	return f.deleteFn(ctx, userID)
}

type fakeTransactionService struct {
	listFn           func(ctx context.Context) ([]models.Transaction, error)
	createFn         func(ctx context.Context, t models.Transaction) (models.Transaction, error)
	createEmployeeFn func(ctx context.Context, t models.Transaction) (models.Transaction, error)
	updateFn         func(ctx context.Context, t models.Transaction) (models.Transaction, error)
	deleteFn         func(ctx context.Context, transactionID int64) error
}

func (f *fakeTransactionService) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	return f.listFn(ctx)
}

func (f *fakeTransactionService) CreateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	return f.createFn(ctx, t)
}

func (f *fakeTransactionService) CreateEmployeeTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	return f.createEmployeeFn(ctx, t)
}

func (f *fakeTransactionService) UpdateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	return f.updateFn(ctx, t)
}

func (f *fakeTransactionService) DeleteTransaction(ctx context.Context, transactionID int64) error {
	return f.deleteFn(ctx, transactionID)
}

type fakeReportService struct {
	generateFn func(ctx context.Context, period models.ReportPeriod) ([]models.Report, error)
}

func (f *fakeReportService) Generate(ctx context.Context, period models.ReportPeriod) ([]models.Report, error) {
	return f.generateFn(ctx, period)
}

type fakeAppInfoService struct {
	version string
}

func (f *fakeAppInfoService) GetAppVersion(context.Context) string {
	return f.version
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

var (
	userPrincipal     = models.Principal{Name: "alice", Authority: models.AuthorityUser}
	employeePrincipal = models.Principal{Name: "eve", Authority: models.AuthorityEmployee}
)

// gateFor admits "user-token" as alice and "employee-token" as eve; any
// other token is treated as malformed.
func gateFor() *fakeGateService {
	return &fakeGateService{admitFn: func(_ context.Context, token string) (models.Principal, error) {
		switch token {
		case "user-token":
			return userPrincipal, nil
		case "employee-token":
			return employeePrincipal, nil
		}
		return models.Principal{}, service.ErrUnauthenticated
	}}
}

// newTestRouter builds the full router over services; a nil GateService is
// replaced with gateFor().
func newTestRouter(t *testing.T, services *service.Services) http.Handler {
	t.Helper()
	if services.GateService == nil {
		services.GateService = gateFor()
	}
	if services.AppInfoService == nil {
		services.AppInfoService = &fakeAppInfoService{version: "test-version"}
	}

	router, err := NewHandler(services, 0, logger.Nop()).Init()
	require.NoError(t, err)
	return router
}

func serve(router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
