package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Product represents a stocked item.
type Product struct {
	// ID is assigned by the store on insert.
	ID int64 `db:"id"`

	// Name is required.
	Name string `db:"name"`

	// Description is optional; a NULL column reads back as "".
	Description string `db:"description"`

	// Quantity is the units on hand. It is never negative.
	Quantity int `db:"quantity"`

	// Price is the unit price. It is finite and never negative.
	Price float64 `db:"price"`

	// Category is required and participates in keyword search.
	Category string `db:"category"`
}

// Validate checks the field rules enforced on add and update.
func (p *Product) Validate() error {
	var errs []error
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if strings.TrimSpace(p.Category) == "" {
		errs = append(errs, errors.New("category is required"))
	}
	if p.Quantity < 0 {
		errs = append(errs, fmt.Errorf("quantity must not be negative, got %d", p.Quantity))
	}
	switch {
	case math.IsNaN(p.Price) || math.IsInf(p.Price, 0):
		errs = append(errs, fmt.Errorf("price must be a finite number, got %v", p.Price))
	case p.Price < 0:
		errs = append(errs, fmt.Errorf("price must not be negative, got %.2f", p.Price))
	}
	return errors.Join(errs...)
}

// String renders the product as a single listing line.
func (p Product) String() string {
	return fmt.Sprintf("#%d %s [%s] qty=%d price=%.2f %s",
		p.ID, p.Name, p.Category, p.Quantity, p.Price, p.Description)
}
