package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/inventory/internal/metrics"
	"github.com/mmynk/inventory/internal/models"
	"github.com/mmynk/inventory/internal/storage"
)

// InventoryService applies the product rules on top of a ProductStore and
// records a log line and a metric for every operation.
type InventoryService struct {
	store   storage.ProductStore
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewInventoryService creates a new InventoryService with the given storage backend.
func NewInventoryService(store storage.ProductStore, m *metrics.Metrics, logger *slog.Logger) *InventoryService {
	return &InventoryService{
		store:   store,
		metrics: m,
		logger:  logger,
	}
}

// With returns a copy of the service whose log lines carry args.
func (s *InventoryService) With(args ...any) *InventoryService {
	cp := *s
	cp.logger = s.logger.With(args...)
	return &cp
}

// Add validates and stores a new product, setting its ID.
func (s *InventoryService) Add(ctx context.Context, p *models.Product) error {
	err := s.add(ctx, p)
	s.metrics.Observe("add", err)
	return err
}

func (s *InventoryService) add(ctx context.Context, p *models.Product) error {
	if err := p.Validate(); err != nil {
		s.logger.Warn("Product rejected", "name", p.Name, "error", err)
		return fmt.Errorf("%w: %w", storage.ErrInvalidInput, err)
	}

	if err := s.store.CreateProduct(ctx, p); err != nil {
		s.logger.Error("Failed to add product", "name", p.Name, "error", err)
		return err
	}

	s.logger.Info("Product added", "product_id", p.ID, "name", p.Name)
	return nil
}

// Get returns a single product.
func (s *InventoryService) Get(ctx context.Context, id int64) (*models.Product, error) {
	p, err := s.store.GetProduct(ctx, id)
	s.metrics.Observe("get", err)
	if err != nil {
		s.logFailure("Failed to get product", err, "product_id", id)
		return nil, err
	}
	return p, nil
}

// List returns all products. Unlike an empty result, a storage failure
// comes back as an error.
func (s *InventoryService) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.store.ListProducts(ctx)
	s.metrics.Observe("list", err)
	if err != nil {
		s.logger.Error("Failed to list products", "error", err)
		return nil, err
	}
	return products, nil
}

// Search returns products whose name or category contains keyword.
func (s *InventoryService) Search(ctx context.Context, keyword string) ([]models.Product, error) {
	products, err := s.store.SearchProducts(ctx, keyword)
	s.metrics.Observe("search", err)
	if err != nil {
		s.logger.Error("Failed to search products", "keyword", keyword, "error", err)
		return nil, err
	}
	s.logger.Debug("Search completed", "keyword", keyword, "matches", len(products))
	return products, nil
}

// Update replaces every mutable field of the product with p.ID.
func (s *InventoryService) Update(ctx context.Context, p *models.Product) error {
	err := s.update(ctx, p)
	s.metrics.Observe("update", err)
	return err
}

func (s *InventoryService) update(ctx context.Context, p *models.Product) error {
	if err := p.Validate(); err != nil {
		s.logger.Warn("Product update rejected", "product_id", p.ID, "error", err)
		return fmt.Errorf("%w: %w", storage.ErrInvalidInput, err)
	}

	if err := s.store.UpdateProduct(ctx, p); err != nil {
		s.logFailure("Failed to update product", err, "product_id", p.ID)
		return err
	}

	s.logger.Info("Product updated", "product_id", p.ID)
	return nil
}

// Delete removes a product.
func (s *InventoryService) Delete(ctx context.Context, id int64) error {
	err := s.store.DeleteProduct(ctx, id)
	s.metrics.Observe("delete", err)
	if err != nil {
		s.logFailure("Failed to delete product", err, "product_id", id)
		return err
	}

	s.logger.Info("Product deleted", "product_id", id)
	return nil
}

// AdjustStock adds delta to a product's quantity and returns the new
// quantity. The stock never goes below zero.
func (s *InventoryService) AdjustStock(ctx context.Context, id int64, delta int) (int, error) {
	quantity, err := s.store.AdjustStock(ctx, id, delta)
	s.metrics.Observe("adjust_stock", err)
	if err != nil {
		s.logFailure("Stock adjustment failed", err, "product_id", id, "delta", delta)
		return 0, err
	}

	s.metrics.ObserveAdjustment(delta)
	s.logger.Info("Stock updated", "product_id", id, "delta", delta, "quantity", quantity)
	return quantity, nil
}

// logFailure logs domain-rule violations as warnings and everything else
// as errors.
func (s *InventoryService) logFailure(msg string, err error, args ...any) {
	args = append(args, "error", err)
	if metrics.Classify(err) == metrics.OutcomeError {
		s.logger.Error(msg, args...)
		return
	}
	s.logger.Warn(msg, args...)
}
