package service

import (
	"github.com/MKhiriev/kirana-ledger/internal/adapter"
	"github.com/MKhiriev/kirana-ledger/internal/config"
	"github.com/MKhiriev/kirana-ledger/internal/logger"
	"github.com/MKhiriev/kirana-ledger/internal/ratelimit"
	"github.com/MKhiriev/kirana-ledger/internal/store"
	"github.com/MKhiriev/kirana-ledger/models"
)

type Services struct {
	IdentityService    IdentityService
	AuthService        AuthService
	GateService        GateService
	UserService        UserService
	TransactionService TransactionService
	CurrencyService    CurrencyService
	ReportService      ReportService
	AppInfoService     AppInfoService
}

// NewServices wires every service over repositories. The limiter backs the
// stale-token fallback budget and, under the strict policy, login attempts.
func NewServices(
	repositories *store.Repositories,
	ratesProvider adapter.RatesProvider,
	limiter *ratelimit.Limiter,
	buildInfo models.AppBuildInfo,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) (*Services, error) {
	appInfoService, err := NewAppInfoService(buildInfo, logger)
	if err != nil {
		return nil, err
	}

	var loginLimiter *ratelimit.Limiter
	if cfg.App.StaleTokenPolicy == config.StaleTokenPolicyStrict {
		loginLimiter = limiter
	}

	identityService := NewIdentityService(repositories.UserRepository, cfg.App.LookupTimeout, logger)
	authService, err := NewAuthService(identityService, loginLimiter, cfg.App, logger)
	if err != nil {
		return nil, err
	}
	currencyService := NewCurrencyService(ratesProvider, repositories.RateCache, cfg.Adapter.RatesCacheTTL, logger)

	return &Services{
		IdentityService:    identityService,
		AuthService:        authService,
		GateService:        NewGateService(identityService, authService, limiter, cfg, logger),
		UserService:        NewUserService(repositories.UserRepository, cfg.App.PasswordHashCost, logger),
		TransactionService: NewTransactionService(repositories.TransactionRepository, currencyService, logger),
		CurrencyService:    currencyService,
		ReportService:      NewReportService(repositories.TransactionRepository, logger),
		AppInfoService:     appInfoService,
	}, nil
}
