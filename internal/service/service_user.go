package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/kirana-ledger/internal/logger"
	"github.com/MKhiriev/kirana-ledger/internal/store"
	"github.com/MKhiriev/kirana-ledger/internal/utils"
	"github.com/MKhiriev/kirana-ledger/internal/validators"
	"github.com/MKhiriev/kirana-ledger/models"
)

type userService struct {
	userRepository store.UserRepository
	hashCost       int
	validator      validators.Validator

	logger *logger.Logger
}

func NewUserService(userRepository store.UserRepository, hashCost int, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		hashCost:       hashCost,
		validator:      validators.NewLedgerValidator(),
		logger:         logger,
	}
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepository.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	for i := range users {
		users[i] = users[i].Public()
	}
	return users, nil
}

// CreateUser hashes the plain-text password and stores the user. Username,
// password and a known role are required.
func (s *userService) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.prepare(ctx, user, validators.FieldUsername, validators.FieldPassword, validators.FieldRole)
	if err != nil {
		log.Debug().Err(err).Str("func", "*userService.CreateUser").Msg("invalid user")
		return models.User{}, err
	}

	created, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Str("func", "*userService.CreateUser").Int64("user_id", created.UserID).Msg("user created")
	return created.Public(), nil
}

// UpdateUser rewrites the user identified by user.UserID. The password is
// re-hashed only when a new one is given.
func (s *userService) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	user, err := s.prepare(ctx, user, validators.FieldID, validators.FieldUsername, validators.FieldRole)
	if err != nil {
		return models.User{}, err
	}

	updated, err := s.userRepository.UpdateUser(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("user update ended with error: %w", err)
	}

	return updated.Public(), nil
}

func (s *userService) DeleteUser(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return fmt.Errorf("%w: missing id", ErrInvalidUser)
	}

	if err := s.userRepository.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("user deletion ended with error: %w", err)
	}
	return nil
}

// prepare normalizes user, validates the given fields and hashes a new
// password.
func (s *userService) prepare(ctx context.Context, user models.User, fields ...string) (models.User, error) {
	user.Username = strings.TrimSpace(user.Username)
	user.Name = strings.TrimSpace(user.Name)
	if role, err := models.ParseAuthority(string(user.Role)); err == nil {
		user.Role = role
	}

	if err := s.validator.Validate(ctx, user, fields...); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidUser, err)
	}

	user.PasswordHash = ""
	if user.Password != "" {
		hash, err := utils.HashPassword(user.Password, s.hashCost)
		if err != nil {
			return models.User{}, fmt.Errorf("error hashing password: %w", err)
		}
		user.PasswordHash = hash
		user.Password = ""
	}

	return user, nil
}
