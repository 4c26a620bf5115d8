// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/inventory/internal/models"
)

var (
	// ErrNotFound is returned when no row matches the requested ID or name.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when a uniqueness constraint is violated.
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnavailable wraps any failure of the underlying database.
	ErrUnavailable = errors.New("storage unavailable")

	// ErrInsufficientStock is returned when a stock adjustment would take
	// the quantity below zero.
	ErrInsufficientStock = errors.New("cannot reduce stock below zero")

	// ErrInvalidInput is returned when a value fails validation.
	ErrInvalidInput = errors.New("invalid input")
)

// UserStore defines persistence operations for user accounts.
type UserStore interface {
	// CreateUser inserts user and populates user.ID.
	// Returns ErrAlreadyExists if the username is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername returns ErrNotFound if no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// ProductStore defines persistence operations for products.
// Implementations acquire a connection per call and release it before
// returning.
type ProductStore interface {
	// CreateProduct inserts product and populates product.ID.
	CreateProduct(ctx context.Context, product *models.Product) error

	// GetProduct returns ErrNotFound if the ID does not exist.
	GetProduct(ctx context.Context, id int64) (*models.Product, error)

	// ListProducts returns every product ordered by ID.
	ListProducts(ctx context.Context) ([]models.Product, error)

	// SearchProducts returns products whose name or category contains
	// keyword, ignoring case. An empty keyword matches everything.
	SearchProducts(ctx context.Context, keyword string) ([]models.Product, error)

	// UpdateProduct replaces all mutable fields of the product with
	// product.ID. Returns ErrNotFound if the ID does not exist.
	UpdateProduct(ctx context.Context, product *models.Product) error

	// DeleteProduct returns ErrNotFound if the ID does not exist.
	DeleteProduct(ctx context.Context, id int64) error

	// AdjustStock adds delta to the product's quantity atomically and
	// returns the new quantity. Returns ErrNotFound for an unknown ID and
	// ErrInsufficientStock, without writing, if the result would be
	// negative.
	AdjustStock(ctx context.Context, id int64, delta int) (int, error)
}

// Store combines every storage capability of the application.
type Store interface {
	UserStore
	ProductStore

	// Close releases any resources held by the store.
	Close() error
}
