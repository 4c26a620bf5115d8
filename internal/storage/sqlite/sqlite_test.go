package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mmynk/inventory/internal/models"
	"github.com/mmynk/inventory/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")
	store, err := New(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func addProduct(t *testing.T, store *SQLiteStore, p models.Product) models.Product {
	t.Helper()
	if err := store.CreateProduct(context.Background(), &p); err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	return p
}

func TestSQLiteStore_Products(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateProduct assigns ID and ListProducts returns it", func(t *testing.T) {
		p := addProduct(t, store, models.Product{
			Name: "Widget", Description: "A widget", Quantity: 10, Price: 2.50, Category: "Hardware",
		})
		if p.ID == 0 {
			t.Fatal("Expected product ID to be assigned")
		}

		products, err := store.ListProducts(ctx)
		if err != nil {
			t.Fatalf("ListProducts failed: %v", err)
		}

		var found *models.Product
		for i := range products {
			if products[i].ID == p.ID {
				found = &products[i]
			}
		}
		if found == nil {
			t.Fatalf("Product %d missing from list", p.ID)
		}
		if *found != p {
			t.Errorf("Listed product mismatch: got %+v, want %+v", *found, p)
		}
	})

	t.Run("GetProduct returns ErrNotFound for unknown ID", func(t *testing.T) {
		_, err := store.GetProduct(ctx, 9999)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("NULL description reads back as empty", func(t *testing.T) {
		res, err := store.db.ExecContext(ctx,
			"INSERT INTO products (name, description, quantity, price, category) VALUES ('Bare', NULL, 1, 1.0, 'Misc')")
		if err != nil {
			t.Fatalf("raw insert failed: %v", err)
		}
		id, _ := res.LastInsertId()

		p, err := store.GetProduct(ctx, id)
		if err != nil {
			t.Fatalf("GetProduct failed: %v", err)
		}
		if p.Description != "" {
			t.Errorf("Expected empty description, got %q", p.Description)
		}
	})

	t.Run("UpdateProduct replaces every field", func(t *testing.T) {
		p := addProduct(t, store, models.Product{Name: "Bolt", Quantity: 100, Price: 0.10, Category: "Hardware"})

		updated := models.Product{
			ID: p.ID, Name: "Hex Bolt", Description: "M6", Quantity: 80, Price: 0.15, Category: "Fasteners",
		}
		if err := store.UpdateProduct(ctx, &updated); err != nil {
			t.Fatalf("UpdateProduct failed: %v", err)
		}

		got, err := store.GetProduct(ctx, p.ID)
		if err != nil {
			t.Fatalf("GetProduct failed: %v", err)
		}
		if *got != updated {
			t.Errorf("Updated product mismatch: got %+v, want %+v", *got, updated)
		}
	})

	t.Run("UpdateProduct with unknown ID returns ErrNotFound", func(t *testing.T) {
		err := store.UpdateProduct(ctx, &models.Product{ID: 9999, Name: "X", Category: "Y"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteProduct removes the row", func(t *testing.T) {
		p := addProduct(t, store, models.Product{Name: "Temp", Quantity: 1, Price: 1, Category: "Misc"})

		if err := store.DeleteProduct(ctx, p.ID); err != nil {
			t.Fatalf("DeleteProduct failed: %v", err)
		}
		if _, err := store.GetProduct(ctx, p.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected deleted product to be gone, got %v", err)
		}
		if err := store.DeleteProduct(ctx, p.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestSQLiteStore_AdjustStock(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	widget := addProduct(t, store, models.Product{
		Name: "Widget", Description: "A widget", Quantity: 10, Price: 2.50, Category: "Hardware",
	})

	quantity := func() int {
		t.Helper()
		p, err := store.GetProduct(ctx, widget.ID)
		if err != nil {
			t.Fatalf("GetProduct failed: %v", err)
		}
		return p.Quantity
	}

	t.Run("rejects going below zero without writing", func(t *testing.T) {
		_, err := store.AdjustStock(ctx, widget.ID, -15)
		if !errors.Is(err, storage.ErrInsufficientStock) {
			t.Fatalf("Expected ErrInsufficientStock, got %v", err)
		}
		if q := quantity(); q != 10 {
			t.Errorf("Quantity changed after rejection: got %d, want 10", q)
		}
	})

	t.Run("accepts reaching exactly zero", func(t *testing.T) {
		got, err := store.AdjustStock(ctx, widget.ID, -10)
		if err != nil {
			t.Fatalf("AdjustStock failed: %v", err)
		}
		if got != 0 || quantity() != 0 {
			t.Errorf("Expected quantity 0, got returned=%d stored=%d", got, quantity())
		}
	})

	t.Run("positive delta adds stock", func(t *testing.T) {
		got, err := store.AdjustStock(ctx, widget.ID, 7)
		if err != nil {
			t.Fatalf("AdjustStock failed: %v", err)
		}
		if got != 7 {
			t.Errorf("Expected 7, got %d", got)
		}
	})

	t.Run("unknown product reports not found", func(t *testing.T) {
		_, err := store.AdjustStock(ctx, 9999, 5)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
		var count int
		if err := store.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM products WHERE id = 9999"); err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if count != 0 {
			t.Errorf("AdjustStock created a row for unknown product")
		}
	})
}

func TestAdjustStock_NeverNegative(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		start int
		delta int
	}{
		{0, 0}, {0, -1}, {0, 5}, {3, -3}, {3, -4}, {100, -99}, {100, -101}, {1, 1000},
	}

	for _, tt := range tests {
		p := addProduct(t, store, models.Product{Name: "P", Quantity: tt.start, Category: "C"})

		got, err := store.AdjustStock(ctx, p.ID, tt.delta)
		stored, gerr := store.GetProduct(ctx, p.ID)
		if gerr != nil {
			t.Fatalf("GetProduct failed: %v", gerr)
		}

		want := tt.start + tt.delta
		if want < 0 {
			if !errors.Is(err, storage.ErrInsufficientStock) {
				t.Errorf("start=%d delta=%d: expected rejection, got %v", tt.start, tt.delta, err)
			}
			if stored.Quantity != tt.start {
				t.Errorf("start=%d delta=%d: stored quantity changed to %d", tt.start, tt.delta, stored.Quantity)
			}
			continue
		}
		if err != nil {
			t.Errorf("start=%d delta=%d: unexpected error %v", tt.start, tt.delta, err)
		}
		if got != want || stored.Quantity != want {
			t.Errorf("start=%d delta=%d: got returned=%d stored=%d, want %d", tt.start, tt.delta, got, stored.Quantity, want)
		}
	}
}

func TestSQLiteStore_Search(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	hammer := addProduct(t, store, models.Product{Name: "Claw Hammer", Quantity: 1, Category: "Tools"})
	paint := addProduct(t, store, models.Product{Name: "Paint", Quantity: 1, Category: "Hardware"})
	pct := addProduct(t, store, models.Product{Name: "100% Cotton", Quantity: 1, Category: "Textiles"})
	under := addProduct(t, store, models.Product{Name: "snake_case", Quantity: 1, Category: "Text"})

	tests := []struct {
		keyword string
		want    []int64
	}{
		{"hammer", []int64{hammer.ID}},
		{"HARD", []int64{paint.ID}},
		{"t", []int64{hammer.ID, paint.ID, pct.ID, under.ID}},
		{"", []int64{hammer.ID, paint.ID, pct.ID, under.ID}},
		{"%", []int64{pct.ID}},
		{"_", []int64{under.ID}},
		{"nothing-matches", nil},
	}

	for _, tt := range tests {
		t.Run("keyword="+tt.keyword, func(t *testing.T) {
			got, err := store.SearchProducts(ctx, tt.keyword)
			if err != nil {
				t.Fatalf("SearchProducts failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Got %d results, want %d: %+v", len(got), len(tt.want), got)
			}
			for i, p := range got {
				if p.ID != tt.want[i] {
					t.Errorf("Result %d: got ID %d, want %d", i, p.ID, tt.want[i])
				}
			}
		})
	}
}

func TestSQLiteStore_Users(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser assigns ID", func(t *testing.T) {
		u := models.NewUser("alice", "$2a$10$hash")
		if err := store.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if u.ID == 0 {
			t.Error("Expected user ID to be assigned")
		}

		got, err := store.GetUserByUsername(ctx, "alice")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if got.ID != u.ID || got.PasswordHash != u.PasswordHash {
			t.Errorf("User mismatch: got %+v, want %+v", got, u)
		}
	})

	t.Run("duplicate username returns ErrAlreadyExists", func(t *testing.T) {
		err := store.CreateUser(ctx, models.NewUser("alice", "$2a$10$other"))
		if !errors.Is(err, storage.ErrAlreadyExists) {
			t.Fatalf("Expected ErrAlreadyExists, got %v", err)
		}

		var count int
		if err := store.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM users WHERE username = 'alice'"); err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if count != 1 {
			t.Errorf("Expected exactly one alice, got %d", count)
		}
	})

	t.Run("unknown username returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetUserByUsername(ctx, "nobody")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "inventory.db")
	ctx := context.Background()

	first, err := New(ctx, dbPath)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	p := models.Product{Name: "Kept", Quantity: 2, Category: "Misc"}
	if err := first.CreateProduct(ctx, &p); err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	first.Close()

	second, err := New(ctx, dbPath)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer second.Close()

	got, err := second.GetProduct(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProduct after reopen failed: %v", err)
	}
	if got.Name != "Kept" {
		t.Errorf("Expected Kept, got %s", got.Name)
	}
}

func TestSQLiteStore_ClosedReportsUnavailable(t *testing.T) {
	store := newTestStore(t)
	store.Close()

	_, err := store.ListProducts(context.Background())
	if !errors.Is(err, storage.ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable, got %v", err)
	}
}

func TestEscapeLike(t *testing.T) {
	tests := map[string]string{
		"plain":   "plain",
		"50%":     `50\%`,
		"a_b":     `a\_b`,
		`back\sl`: `back\\sl`,
	}
	for in, want := range tests {
		if got := escapeLike(in); got != want {
			t.Errorf("escapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}
