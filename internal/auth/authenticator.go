package auth

import (
	"context"

	"github.com/mmynk/inventory/internal/models"
)

// Authenticator defines the interface for authentication implementations.
type Authenticator interface {
	// Register creates a new account on behalf of actingUser, who must be
	// logged in. Returns the created user.
	Register(ctx context.Context, actingUser, username, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if successful.
	Authenticate(ctx context.Context, username, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
