package telemetry

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ShopMetrics tracks purchase and restock activity. All record methods
// are safe to call on a provider backed by the no-op global meter.
type ShopMetrics struct {
	logger *zap.Logger

	purchasesTotal      metric.Int64Counter
	purchasedUnitsTotal metric.Int64Counter
	purchaseFailedTotal metric.Int64Counter
	restockedUnitsTotal metric.Int64Counter
	purchaseAmountTotal metric.Float64Counter
}

// NewShopMetrics creates the shop metric instruments on the given meter.
func NewShopMetrics(meter metric.Meter, logger *zap.Logger) (*ShopMetrics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &ShopMetrics{logger: logger}

	var err error
	if m.purchasesTotal, err = meter.Int64Counter(
		"sweetshop_purchases_total",
		metric.WithDescription("Total number of completed purchases"),
		metric.WithUnit("{purchases}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.purchasedUnitsTotal, err = meter.Int64Counter(
		"sweetshop_purchased_units_total",
		metric.WithDescription("Total units sold"),
		metric.WithUnit("{units}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.purchaseFailedTotal, err = meter.Int64Counter(
		"sweetshop_purchase_failures_total",
		metric.WithDescription("Total number of rejected purchases"),
		metric.WithUnit("{purchases}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.restockedUnitsTotal, err = meter.Int64Counter(
		"sweetshop_restocked_units_total",
		metric.WithDescription("Total units restocked"),
		metric.WithUnit("{units}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.purchaseAmountTotal, err = meter.Float64Counter(
		"sweetshop_purchase_amount_total",
		metric.WithDescription("Total purchase amount"),
		metric.WithUnit("{currency}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}

	return m, nil
}

// RecordPurchase records a completed purchase
func (m *ShopMetrics) RecordPurchase(ctx context.Context, quantity int64, total decimal.Decimal) {
	m.purchasesTotal.Add(ctx, 1)
	m.purchasedUnitsTotal.Add(ctx, quantity)

	amount, _ := total.Float64()
	m.purchaseAmountTotal.Add(ctx, amount)
}

// RecordPurchaseFailure records a rejected purchase with a reason label
func (m *ShopMetrics) RecordPurchaseFailure(ctx context.Context, reason string) {
	m.purchaseFailedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}

// RecordRestock records a completed restock
func (m *ShopMetrics) RecordRestock(ctx context.Context, quantity int64) {
	m.restockedUnitsTotal.Add(ctx, quantity)
}
