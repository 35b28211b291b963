package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/workdesk/request-system/internal/auth"
	"github.com/workdesk/request-system/internal/core/domain"
	"github.com/workdesk/request-system/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	users  ports.UserRepository
	tokens *auth.TokenService
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens *auth.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// Register creates the account, hashes the password, and returns a minted
// token plus the stored user. The password hash never leaves the domain
// struct's json:"-" field.
func (s *AuthService) Register(ctx context.Context, reg domain.Registration) (string, *domain.User, error) {
	if reg.Email == "" || reg.Password == "" || reg.Name == "" {
		return "", nil, fmt.Errorf("%w: email, password and name are required", domain.ErrValidation)
	}
	if !reg.Role().Valid() {
		return "", nil, fmt.Errorf("%w: unknown role", domain.ErrValidation)
	}

	// An employee's manager reference must point at an existing MANAGER.
	if managerID := reg.ManagerID(); managerID != "" {
		manager, err := s.users.FindByID(ctx, managerID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return "", nil, fmt.Errorf("%w: manager does not exist", domain.ErrValidation)
			}
			return "", nil, err
		}
		if manager.Role != domain.RoleManager {
			return "", nil, fmt.Errorf("%w: referenced manager is not a MANAGER", domain.ErrValidation)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        reg.Email,
		Name:         reg.Name,
		PasswordHash: string(hash),
		Role:         reg.Role(),
		ManagerID:    reg.ManagerID(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Mint(created)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")

	return token, created, nil
}

// Login authenticates by email and password. An unknown email and a wrong
// password both return domain.ErrInvalidCredentials so callers cannot probe
// which emails are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Mint(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}
