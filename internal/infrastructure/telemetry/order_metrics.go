package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics constructor receives a nil meter.
var ErrMeterNil = errors.New("telemetry: meter is nil")

// Instrument names.
const (
	MetricOrdersPlaced      = "marketplace.orders.placed"
	MetricOrderValue        = "marketplace.orders.value"
	MetricOrderItems        = "marketplace.orders.items"
	MetricPlaceDuration     = "marketplace.orders.place.duration"
	MetricPlaceFailures     = "marketplace.orders.place.failures"
	MetricStatusTransitions = "marketplace.orders.status.transitions"
)

// OrderMetrics records order placement and lifecycle measurements.
type OrderMetrics struct {
	placed      metric.Int64Counter
	value       metric.Float64Counter
	items       metric.Int64Histogram
	duration    metric.Float64Histogram
	failures    metric.Int64Counter
	transitions metric.Int64Counter
}

// NewOrderMetrics creates the order instruments on meter.
func NewOrderMetrics(meter metric.Meter) (*OrderMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	m := &OrderMetrics{}
	var err error
	if m.placed, err = meter.Int64Counter(MetricOrdersPlaced,
		metric.WithDescription("Orders committed"),
		metric.WithUnit("{order}"),
	); err != nil {
		return nil, err
	}
	if m.value, err = meter.Float64Counter(MetricOrderValue,
		metric.WithDescription("Sum of committed order totals"),
		metric.WithUnit("{INR}"),
	); err != nil {
		return nil, err
	}
	if m.items, err = meter.Int64Histogram(MetricOrderItems,
		metric.WithDescription("Line items per committed order"),
		metric.WithUnit("{item}"),
		metric.WithExplicitBucketBoundaries(1, 2, 5, 10, 20, 50),
	); err != nil {
		return nil, err
	}
	if m.duration, err = meter.Float64Histogram(MetricPlaceDuration,
		metric.WithDescription("PlaceOrder latency"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, err
	}
	if m.failures, err = meter.Int64Counter(MetricPlaceFailures,
		metric.WithDescription("Rejected or failed order placements"),
		metric.WithUnit("{order}"),
	); err != nil {
		return nil, err
	}
	if m.transitions, err = meter.Int64Counter(MetricStatusTransitions,
		metric.WithDescription("Order status changes"),
		metric.WithUnit("{transition}"),
	); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordOrderPlaced records a committed order.
func (m *OrderMetrics) RecordOrderPlaced(ctx context.Context, supplierID string, total decimal.Decimal, items int, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("supplier_id", supplierID))
	m.placed.Add(ctx, 1, attrs)
	m.value.Add(ctx, total.InexactFloat64(), attrs)
	m.items.Record(ctx, int64(items), attrs)
	m.duration.Record(ctx, float64(elapsed.Microseconds())/1000, metric.WithAttributes(attribute.String("outcome", "success")))
}

// RecordPlaceFailure records a rejected placement, keyed by error code.
func (m *OrderMetrics) RecordPlaceFailure(ctx context.Context, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("code", code)))
	m.duration.Record(ctx, float64(elapsed.Microseconds())/1000, metric.WithAttributes(attribute.String("outcome", "failure")))
}

// RecordStatusChange records a lifecycle transition.
func (m *OrderMetrics) RecordStatusChange(ctx context.Context, from, to string) {
	if m == nil {
		return
	}
	m.transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from", from),
		attribute.String("to", to),
	))
}
