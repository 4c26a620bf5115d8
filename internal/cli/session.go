package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mmynk/inventory/internal/models"
	"github.com/mmynk/inventory/internal/service"
)

const productMenu = `
--- Inventory Menu ---
1. List products
2. Add product
3. Update product
4. Delete product
5. Adjust stock
6. Search products
7. Register new user
8. Log out
`

// session is the product menu for one logged-in user.
type session struct {
	username  string
	auth      *service.AuthService
	inventory *service.InventoryService
	logger    *slog.Logger
	prompt    *prompter
	out       io.Writer
}

// run loops over the product menu until the user logs out (nil) or input
// fails (the read error, typically io.EOF).
func (s *session) run(ctx context.Context) error {
	actions := map[string]func(context.Context) error{
		"1": s.list,
		"2": s.add,
		"3": s.update,
		"4": s.delete,
		"5": s.adjustStock,
		"6": s.search,
		"7": s.register,
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, productMenu)
		choice, err := s.prompt.text("Select an option: ")
		if err != nil {
			return err
		}

		if choice == "8" {
			s.logger.Info("User logged out")
			fmt.Fprintln(s.out, "Logging out...")
			return nil
		}

		action, ok := actions[choice]
		if !ok {
			fmt.Fprintln(s.out, "Invalid option.")
			continue
		}

		if err := action(ctx); err != nil {
			if errors.Is(err, io.EOF) {
				return err
			}
			if errors.Is(err, errBadNumber) {
				s.logger.Error("Invalid input in inventory menu", "option", choice, "error", err)
			}
			fmt.Fprintln(s.out, userMessage(err))
		}
	}
}

func (s *session) list(ctx context.Context) error {
	products, err := s.inventory.List(ctx)
	if err != nil {
		return err
	}
	s.printProducts(products, "No products in inventory.")
	return nil
}

func (s *session) add(ctx context.Context) error {
	p, err := s.readProduct(false)
	if err != nil {
		return err
	}
	if err := s.inventory.Add(ctx, p); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Product added with ID %d.\n", p.ID)
	return nil
}

func (s *session) update(ctx context.Context) error {
	id, err := s.prompt.id("ID of the product to update: ")
	if err != nil {
		return err
	}
	p, err := s.readProduct(true)
	if err != nil {
		return err
	}
	p.ID = id
	if err := s.inventory.Update(ctx, p); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Product updated.")
	return nil
}

func (s *session) delete(ctx context.Context) error {
	id, err := s.prompt.id("ID of the product to delete: ")
	if err != nil {
		return err
	}
	if err := s.inventory.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Product deleted.")
	return nil
}

func (s *session) adjustStock(ctx context.Context) error {
	id, err := s.prompt.id("Product ID: ")
	if err != nil {
		return err
	}
	delta, err := s.prompt.integer("Quantity change (+/-): ")
	if err != nil {
		return err
	}
	quantity, err := s.inventory.AdjustStock(ctx, id, delta)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Stock updated. New quantity: %d.\n", quantity)
	return nil
}

func (s *session) search(ctx context.Context) error {
	keyword, err := s.prompt.text("Keyword: ")
	if err != nil {
		return err
	}
	products, err := s.inventory.Search(ctx, keyword)
	if err != nil {
		return err
	}
	s.printProducts(products, "No products match.")
	return nil
}

func (s *session) register(ctx context.Context) error {
	username, err := s.prompt.text("New username: ")
	if err != nil {
		return err
	}
	password, err := s.prompt.password("New password: ")
	if err != nil {
		return err
	}
	if _, err := s.auth.Register(ctx, s.username, username, password); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "User registered successfully.")
	return nil
}

// readProduct prompts for every editable field.
func (s *session) readProduct(updating bool) (*models.Product, error) {
	label := func(field string) string {
		if updating {
			return "New " + strings.ToLower(field) + ": "
		}
		return field + ": "
	}

	p := &models.Product{}
	var err error

	if p.Name, err = s.prompt.text(label("Name")); err != nil {
		return nil, err
	}
	if p.Description, err = s.prompt.text(label("Description")); err != nil {
		return nil, err
	}
	if p.Quantity, err = s.prompt.integer(label("Quantity")); err != nil {
		return nil, err
	}
	if p.Price, err = s.prompt.decimal(label("Price")); err != nil {
		return nil, err
	}
	if p.Category, err = s.prompt.text(label("Category")); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *session) printProducts(products []models.Product, empty string) {
	if len(products) == 0 {
		fmt.Fprintln(s.out, empty)
		return
	}
	for _, p := range products {
		fmt.Fprintln(s.out, p.String())
	}
}
