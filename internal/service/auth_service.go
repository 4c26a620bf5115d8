package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/inventory/internal/auth"
	"github.com/mmynk/inventory/internal/metrics"
	"github.com/mmynk/inventory/internal/models"
	"github.com/mmynk/inventory/internal/storage"
)

// AdminUsername is the account ensured by Bootstrap.
const AdminUsername = "admin"

// AuthService handles login, registration and first-run setup.
type AuthService struct {
	authenticator auth.Authenticator
	users         storage.UserStore
	metrics       *metrics.Metrics
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(users storage.UserStore, m *metrics.Metrics, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: auth.NewPasswordAuthenticator(users),
		users:         users,
		metrics:       m,
		logger:        logger,
	}
}

// With returns a copy of the service whose log lines carry args.
func (s *AuthService) With(args ...any) *AuthService {
	cp := *s
	cp.logger = s.logger.With(args...)
	return &cp
}

// Bootstrap makes sure the admin account exists. If it has to create it
// and password is empty, a random password is generated and returned so
// the caller can show it once. An existing admin is left untouched and
// the returned password is empty.
func (s *AuthService) Bootstrap(ctx context.Context, password string) (string, error) {
	_, err := s.users.GetUserByUsername(ctx, AdminUsername)
	if err == nil {
		s.logger.Debug("Admin account already present")
		return "", nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		s.logger.Error("Failed to initialize database", "error", err)
		return "", err
	}

	generated := ""
	if password == "" {
		password = rand.Text()
		generated = password
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Error("Failed to hash admin password", "error", err)
		return "", err
	}

	if err := s.users.CreateUser(ctx, models.NewUser(AdminUsername, hash)); err != nil {
		s.logger.Error("Failed to create default admin", "error", err)
		return "", fmt.Errorf("failed to create admin: %w", err)
	}

	s.logger.Info("Default user 'admin' created", "generated_password", generated != "")
	return generated, nil
}

// Login checks credentials. Wrong username and wrong password are not
// distinguished; storage failures are.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.authenticator.Authenticate(ctx, username, password)
	s.metrics.Observe("login", err)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.logger.Warn("Authentication failed", "username", username)
		} else {
			s.logger.Error("Authentication error", "username", username, "error", err)
		}
		return nil, err
	}

	s.logger.Info("User authenticated", "username", username)
	return user, nil
}

// Verify is Login reduced to a yes/no answer.
func (s *AuthService) Verify(ctx context.Context, username, password string) bool {
	_, err := s.Login(ctx, username, password)
	return err == nil
}

// Register creates a user on behalf of actingUser.
func (s *AuthService) Register(ctx context.Context, actingUser, username, password string) (*models.User, error) {
	user, err := s.authenticator.Register(ctx, actingUser, username, password)
	s.metrics.Observe("register", err)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrNotAuthenticated):
			s.logger.Warn("Registration attempted without login", "username", username)
		case errors.Is(err, storage.ErrAlreadyExists):
			s.logger.Warn("Attempt to register existing user", "username", username, "by", actingUser)
		case errors.Is(err, storage.ErrInvalidInput):
			s.logger.Warn("Registration rejected", "username", username, "error", err)
		default:
			s.logger.Error("Registration failed", "username", username, "error", err)
		}
		return nil, err
	}

	s.logger.Info("User registered", "username", username, "by", actingUser)
	return user, nil
}
