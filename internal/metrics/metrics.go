// Package metrics counts inventory operations with Prometheus collectors.
//
// There is no HTTP endpoint. When a metrics file is configured the
// registry is written in the text exposition format on exit, for pickup by
// node_exporter's textfile collector.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/inventory/internal/auth"
	"github.com/mmynk/inventory/internal/storage"
)

// Outcome labels.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Metrics holds the collectors and the registry they are registered on.
type Metrics struct {
	registry *prometheus.Registry

	Operations       *prometheus.CounterVec
	StockAdjustments *prometheus.CounterVec
	StockUnits       *prometheus.CounterVec
}

// New creates the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inventory",
			Name:      "operations_total",
			Help:      "Inventory operations by name and outcome.",
		}, []string{"operation", "outcome"}),
		StockAdjustments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inventory",
			Name:      "stock_adjustments_total",
			Help:      "Committed stock adjustments by direction.",
		}, []string{"direction"}),
		StockUnits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inventory",
			Name:      "stock_units_total",
			Help:      "Units moved by committed stock adjustments, by direction.",
		}, []string{"direction"}),
	}
	m.registry.MustRegister(m.Operations, m.StockAdjustments, m.StockUnits)
	return m
}

// Observe records one operation, classifying err into an outcome.
func (m *Metrics) Observe(operation string, err error) {
	m.Operations.WithLabelValues(operation, Classify(err)).Inc()
}

// ObserveAdjustment records a committed stock change.
func (m *Metrics) ObserveAdjustment(delta int) {
	direction := "in"
	units := delta
	if delta < 0 {
		direction = "out"
		units = -delta
	}
	m.StockAdjustments.WithLabelValues(direction).Inc()
	m.StockUnits.WithLabelValues(direction).Add(float64(units))
}

// Registry returns the private registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteFile writes the current metric values to path atomically.
func (m *Metrics) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

// Classify maps an operation error to an outcome label. Domain-rule
// violations count as rejected, anything else as error.
func Classify(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, storage.ErrAlreadyExists),
		errors.Is(err, storage.ErrInsufficientStock),
		errors.Is(err, storage.ErrInvalidInput),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrNotAuthenticated):
		return OutcomeRejected
	default:
		return OutcomeError
	}
}
