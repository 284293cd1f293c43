package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/kirana-ledger/internal/logger"
	"github.com/MKhiriev/kirana-ledger/internal/store"
	"github.com/MKhiriev/kirana-ledger/models"
)

// identityService is a stateless view over the user repository. Every
// lookup is a single read bounded by lookupTimeout.
type identityService struct {
	userRepository store.UserRepository
	lookupTimeout  time.Duration

	logger *logger.Logger
}

func NewIdentityService(userRepository store.UserRepository, lookupTimeout time.Duration, logger *logger.Logger) IdentityService {
	return &identityService{
		userRepository: userRepository,
		lookupTimeout:  lookupTimeout,
		logger:         logger,
	}
}

func (s *identityService) FindByName(ctx context.Context, name string) (models.Principal, error) {
	user, err := s.FindUser(ctx, name)
	if err != nil {
		return models.Principal{}, err
	}
	return user.Principal(), nil
}

func (s *identityService) FindUser(ctx context.Context, name string) (models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.User{}, ErrIdentityNotFound
	}

	if s.lookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.lookupTimeout)
		defer cancel()
	}

	user, err := s.userRepository.FindUserByUsername(ctx, name)
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return models.User{}, ErrIdentityNotFound
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("func", "*identityService.FindUser").Msg("identity lookup failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrIdentityStoreUnavailable, err)
	}

	return user, nil
}
