package cli

import (
	"errors"
	"strings"

	"github.com/mmynk/inventory/internal/auth"
	"github.com/mmynk/inventory/internal/storage"
)

// userMessage turns an error into the text shown at the prompt. Details
// stay in the log.
func userMessage(err error) string {
	switch {
	case errors.Is(err, errBadNumber):
		return "Invalid number. Please try again."
	case errors.Is(err, auth.ErrNotAuthenticated):
		return "You must be logged in to register new users."
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid username or password."
	case errors.Is(err, storage.ErrInsufficientStock):
		return "Cannot reduce stock below 0."
	case errors.Is(err, storage.ErrNotFound):
		return "Product not found."
	case errors.Is(err, storage.ErrAlreadyExists):
		return "Username already exists."
	case errors.Is(err, storage.ErrInvalidInput):
		return "Invalid data: " + validationDetail(err)
	case errors.Is(err, storage.ErrUnavailable):
		return "The inventory database is unavailable. Please try again."
	default:
		return "An error occurred. Please try again."
	}
}

// validationDetail strips everything up to the invalid-input marker,
// leaving the rules that failed.
func validationDetail(err error) string {
	msg := err.Error()
	marker := storage.ErrInvalidInput.Error() + ": "
	if i := strings.Index(msg, marker); i >= 0 {
		msg = msg[i+len(marker):]
	}
	return strings.ReplaceAll(msg, "\n", "; ")
}
