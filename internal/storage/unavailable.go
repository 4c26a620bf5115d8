package storage

import (
	"context"
	"fmt"

	"github.com/mmynk/inventory/internal/models"
)

// Ensure Unavailable implements Store
var _ Store = Unavailable{}

// Unavailable stands in for a store that could not be opened. Every call
// fails with ErrUnavailable wrapping Cause, so the menus keep running and
// each operation reports the database as unavailable.
type Unavailable struct {
	Cause error
}

func (u Unavailable) err() error {
	if u.Cause == nil {
		return ErrUnavailable
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, u.Cause)
}

func (u Unavailable) CreateUser(context.Context, *models.User) error { return u.err() }

func (u Unavailable) GetUserByUsername(context.Context, string) (*models.User, error) {
	return nil, u.err()
}

func (u Unavailable) CreateProduct(context.Context, *models.Product) error { return u.err() }

func (u Unavailable) GetProduct(context.Context, int64) (*models.Product, error) {
	return nil, u.err()
}

func (u Unavailable) ListProducts(context.Context) ([]models.Product, error) { return nil, u.err() }

func (u Unavailable) SearchProducts(context.Context, string) ([]models.Product, error) {
	return nil, u.err()
}

func (u Unavailable) UpdateProduct(context.Context, *models.Product) error { return u.err() }

func (u Unavailable) DeleteProduct(context.Context, int64) error { return u.err() }

func (u Unavailable) AdjustStock(context.Context, int64, int) (int, error) { return 0, u.err() }

// Close is a no-op.
func (u Unavailable) Close() error { return nil }
