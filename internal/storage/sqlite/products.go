package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/mmynk/inventory/internal/models"
	"github.com/mmynk/inventory/internal/storage"
)

const productColumns = `id, name, COALESCE(description, '') AS description, quantity, price, category`

// CreateProduct inserts a new product and sets product.ID.
func (s *SQLiteStore) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (name, description, quantity, price, category)
		VALUES (?, ?, ?, ?, ?)
	`

	return s.withConn(ctx, func(conn *sqlx.Conn) error {
		res, err := conn.ExecContext(ctx, query,
			product.Name,
			product.Description,
			product.Quantity,
			product.Price,
			product.Category,
		)
		if err != nil {
			return unavailable("failed to insert product", err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return unavailable("failed to read product id", err)
		}
		product.ID = id
		return nil
	})
}

// GetProduct retrieves a product by ID.
func (s *SQLiteStore) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`

	product := &models.Product{}
	err := s.withConn(ctx, func(conn *sqlx.Conn) error {
		if err := conn.GetContext(ctx, product, query, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("product %d: %w", id, storage.ErrNotFound)
			}
			return unavailable("failed to get product", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// ListProducts returns all products ordered by ID.
func (s *SQLiteStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`

	products := []models.Product{}
	err := s.withConn(ctx, func(conn *sqlx.Conn) error {
		if err := conn.SelectContext(ctx, &products, query); err != nil {
			return unavailable("failed to list products", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return products, nil
}

// SearchProducts returns products whose name or category contains keyword.
// SQLite's LIKE folds ASCII case only.
func (s *SQLiteStore) SearchProducts(ctx context.Context, keyword string) ([]models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE name LIKE ? ESCAPE '\' OR category LIKE ? ESCAPE '\'
		ORDER BY id
	`
	pattern := "%" + escapeLike(keyword) + "%"

	products := []models.Product{}
	err := s.withConn(ctx, func(conn *sqlx.Conn) error {
		if err := conn.SelectContext(ctx, &products, query, pattern, pattern); err != nil {
			return unavailable("failed to search products", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return products, nil
}

// UpdateProduct replaces name, description, quantity, price and category.
func (s *SQLiteStore) UpdateProduct(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = ?, description = ?, quantity = ?, price = ?, category = ?
		WHERE id = ?
	`

	return s.withConn(ctx, func(conn *sqlx.Conn) error {
		res, err := conn.ExecContext(ctx, query,
			product.Name,
			product.Description,
			product.Quantity,
			product.Price,
			product.Category,
			product.ID,
		)
		if err != nil {
			return unavailable("failed to update product", err)
		}
		return expectOneRow(res, product.ID)
	})
}

// DeleteProduct removes a product by ID.
func (s *SQLiteStore) DeleteProduct(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = ?`

	return s.withConn(ctx, func(conn *sqlx.Conn) error {
		res, err := conn.ExecContext(ctx, query, id)
		if err != nil {
			return unavailable("failed to delete product", err)
		}
		return expectOneRow(res, id)
	})
}

// AdjustStock reads the current quantity and writes quantity+delta in one
// transaction. Nothing is written when the product is missing or the
// result would be negative.
func (s *SQLiteStore) AdjustStock(ctx context.Context, id int64, delta int) (int, error) {
	var newQuantity int

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var current int
		err := tx.GetContext(ctx, &current, `SELECT quantity FROM products WHERE id = ?`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("product %d: %w", id, storage.ErrNotFound)
		}
		if err != nil {
			return unavailable("failed to read stock", err)
		}

		newQuantity = current + delta
		if newQuantity < 0 {
			return fmt.Errorf("product %d has %d, change %d: %w", id, current, delta, storage.ErrInsufficientStock)
		}

		if _, err := tx.ExecContext(ctx, `UPDATE products SET quantity = ? WHERE id = ?`, newQuantity, id); err != nil {
			return unavailable("failed to write stock", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return newQuantity, nil
}

// expectOneRow maps zero affected rows to storage.ErrNotFound.
func expectOneRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return unavailable("failed to get rows affected", err)
	}
	if n == 0 {
		return fmt.Errorf("product %d: %w", id, storage.ErrNotFound)
	}
	return nil
}

// escapeLike makes %, _ and \ in s match literally under ESCAPE '\'.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
