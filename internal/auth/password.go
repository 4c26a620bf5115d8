package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/inventory/internal/models"
	"github.com/mmynk/inventory/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotAuthenticated   = errors.New("must be logged in to register users")
	ErrEmptyPassword      = errors.New("password must not be empty")
	ErrEmptyUsername      = errors.New("username must not be empty")
)

// HashCost is the bcrypt work factor for new hashes. Existing hashes keep
// verifying after it changes because bcrypt stores the cost in the hash.
var HashCost = bcrypt.DefaultCost

// HashPassword returns a salted bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash. The comparison is
// constant-time.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage storage.UserStore
}

// Ensure PasswordAuthenticator implements Authenticator
var _ Authenticator = (*PasswordAuthenticator)(nil)

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage storage.UserStore) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
	}
}

// ValidateCredential rejects empty passwords. bcrypt itself refuses
// anything longer than 72 bytes.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if credential == "" {
		return ErrEmptyPassword
	}
	return nil
}

// Register creates a new user account with a hashed password.
// It fails with ErrNotAuthenticated before touching storage when
// actingUser is empty, and with storage.ErrAlreadyExists when the
// username is taken.
func (a *PasswordAuthenticator) Register(ctx context.Context, actingUser, username, credential string) (*models.User, error) {
	if actingUser == "" {
		return nil, ErrNotAuthenticated
	}
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: %w", storage.ErrInvalidInput, ErrEmptyUsername)
	}
	if err := a.ValidateCredential(credential); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrInvalidInput, err)
	}

	hashedPassword, err := HashPassword(credential)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrInvalidInput, err)
	}

	user := models.NewUser(username, hashedPassword)
	if err := a.storage.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies the username and password, returning the user if valid.
// Unknown users and wrong passwords both yield ErrInvalidCredentials; storage
// failures are returned wrapped so callers can tell them apart.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, username, credential string) (*models.User, error) {
	user, err := a.storage.GetUserByUsername(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !CheckPassword(user.PasswordHash, credential) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
