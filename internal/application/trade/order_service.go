// Package trade hosts the order engine and the read-side services built on it.
package trade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/streetmart/backend/internal/domain/catalog"
	"github.com/streetmart/backend/internal/domain/identity"
	"github.com/streetmart/backend/internal/domain/shared"
	"github.com/streetmart/backend/internal/domain/trade"
	"github.com/streetmart/backend/internal/infrastructure/config"
	"github.com/streetmart/backend/internal/infrastructure/logger"
	"github.com/streetmart/backend/internal/infrastructure/telemetry"
)

// OrderMetrics receives order measurements. *telemetry.OrderMetrics satisfies it.
type OrderMetrics interface {
	RecordOrderPlaced(ctx context.Context, supplierID string, total decimal.Decimal, items int, elapsed time.Duration)
	RecordPlaceFailure(ctx context.Context, code string, elapsed time.Duration)
	RecordStatusChange(ctx context.Context, from, to string)
}

var _ OrderMetrics = (*telemetry.OrderMetrics)(nil)

// OrderServiceConfig contains configuration for the order service
type OrderServiceConfig struct {
	// PricePolicy is config.PricePolicyCatalog or config.PricePolicyClient
	PricePolicy string
}

// OrderService places orders and moves them through their lifecycle
type OrderService struct {
	orderRepo      trade.OrderRepository
	listingRepo    catalog.ListingRepository
	eventPublisher shared.EventPublisher
	metrics        OrderMetrics
	config         OrderServiceConfig
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo trade.OrderRepository,
	listingRepo catalog.ListingRepository,
	cfg OrderServiceConfig,
	logger *zap.Logger,
) *OrderService {
	if cfg.PricePolicy == "" {
		cfg.PricePolicy = config.PricePolicyCatalog
	}
	return &OrderService{
		orderRepo:   orderRepo,
		listingRepo: listingRepo,
		config:      cfg,
		logger:      logger,
	}
}

// SetEventPublisher sets the publisher that receives events after commit
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetMetrics sets the order metrics recorder
func (s *OrderService) SetMetrics(metrics OrderMetrics) {
	s.metrics = metrics
}

// PlaceOrder turns a vendor's cart into one order with a line per cart entry.
// Every check runs before any write; the header, items and total are written in
// one transaction. Identical carts submitted twice produce two orders.
func (s *OrderService) PlaceOrder(ctx context.Context, actor *identity.Actor, cart trade.Cart) (result *PlaceOrderResult, err error) {
	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, "order", "place", attribute.Int("order.lines", len(cart)))
	defer func() {
		if err != nil {
			telemetry.RecordError(span, err)
			s.recordFailure(ctx, err, time.Since(start))
		}
		span.End()
	}()

	log := s.log(ctx)

	if !actor.IsVendor() {
		return nil, trade.ErrNotVendor
	}
	if err := cart.Validate(); err != nil {
		return nil, err
	}
	supplierID, err := cart.Supplier()
	if err != nil {
		return nil, err
	}

	prices, err := s.resolvePrices(ctx, supplierID, cart)
	if err != nil {
		return nil, err
	}

	order, err := trade.NewOrder(actor.UserID, supplierID)
	if err != nil {
		return nil, err
	}
	for i, line := range cart {
		if _, err := order.AddItem(line.ProductID, line.Quantity, prices[i]); err != nil {
			return nil, err
		}
	}
	if err := order.Place(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Place(ctx, order); err != nil {
		log.Error("Failed to place order",
			zap.String("vendor_id", actor.UserID.String()),
			zap.String("supplier_id", supplierID.String()),
			zap.Int("lines", len(cart)),
			zap.Error(err),
		)
		telemetry.RecordError(span, err)
		return nil, trade.ErrStorageFailure
	}

	s.publish(ctx, order)
	if s.metrics != nil {
		s.metrics.RecordOrderPlaced(ctx, supplierID.String(), order.TotalAmount, len(order.Items), time.Since(start))
	}
	span.SetAttributes(
		attribute.String("order.id", order.ID.String()),
		attribute.String("order.total", order.TotalAmount.String()),
	)

	log.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("vendor_id", actor.UserID.String()),
		zap.String("supplier_id", supplierID.String()),
		zap.Int("lines", len(order.Items)),
		zap.String("total_amount", order.TotalAmount.StringFixed(2)),
	)

	return toPlaceOrderResult(order), nil
}

// resolvePrices returns the snapshot price for every cart line, in cart order
func (s *OrderService) resolvePrices(ctx context.Context, supplierID uuid.UUID, cart trade.Cart) ([]decimal.Decimal, error) {
	prices := make([]decimal.Decimal, len(cart))
	if s.config.PricePolicy == config.PricePolicyClient {
		for i, line := range cart {
			prices[i] = line.PricePerUnit
		}
		return prices, nil
	}

	listings, err := s.listingRepo.FindBySupplierAndProducts(ctx, supplierID, cart.ProductIDs())
	if err != nil {
		s.logger.Error("Failed to load supplier listings",
			zap.String("supplier_id", supplierID.String()),
			zap.Error(err),
		)
		return nil, trade.ErrStorageFailure
	}

	for i, line := range cart {
		listing, ok := listings[line.ProductID]
		if !ok {
			return nil, shared.NewDomainError(trade.ErrListingNotFound.Code,
				fmt.Sprintf("Item %d: product is not listed by this supplier", i+1))
		}
		if !listing.PricePerUnit.Equal(line.PricePerUnit) {
			return nil, shared.NewDomainError(trade.ErrPriceChanged.Code,
				fmt.Sprintf("Item %d: price is now Rs.%s per unit", i+1, listing.PricePerUnit.StringFixed(2)))
		}
		prices[i] = listing.PricePerUnit
	}
	return prices, nil
}

// UpdateStatus moves an order to a new status on behalf of one of its parties
func (s *OrderService) UpdateStatus(ctx context.Context, actor *identity.Actor, orderID uuid.UUID, status string) (*OrderStatusResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "order", "update_status", attribute.String("order.id", orderID.String()))
	defer span.End()

	if actor == nil || !actor.Role.IsValid() {
		return nil, shared.ErrUnauthorized
	}
	target, err := trade.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Order not found")
		}
		s.logger.Error("Failed to load order", zap.String("order_id", orderID.String()), zap.Error(err))
		telemetry.RecordError(span, err)
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load order")
	}

	from := order.Status
	if err := order.Transition(actor, target); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(ctx, order); err != nil {
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			return nil, err
		}
		s.logger.Error("Failed to update order status", zap.String("order_id", orderID.String()), zap.Error(err))
		telemetry.RecordError(span, err)
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update order status")
	}

	s.publish(ctx, order)
	if s.metrics != nil {
		s.metrics.RecordStatusChange(ctx, from.String(), order.Status.String())
	}

	s.logger.Info("Order status changed",
		zap.String("order_id", order.ID.String()),
		zap.String("from", from.String()),
		zap.String("to", order.Status.String()),
		zap.String("by_role", actor.Role.String()),
	)

	return &OrderStatusResponse{
		OrderID: order.ID,
		Status:  order.Status.String(),
		Version: order.Version,
	}, nil
}

// publish hands the aggregate's events to the bus. Handler failures never undo the commit.
func (s *OrderService) publish(ctx context.Context, order *trade.Order) {
	events := order.GetDomainEvents()
	order.ClearDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish order events",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	}
}

// log prefers the request-scoped logger carried by ctx
func (s *OrderService) log(ctx context.Context) *zap.Logger {
	if _, ok := ctx.Value(logger.LoggerKey).(*zap.Logger); ok {
		return logger.L(ctx)
	}
	return s.logger
}

func (s *OrderService) recordFailure(ctx context.Context, err error, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	code := "INTERNAL_ERROR"
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code = domainErr.Code
	}
	s.metrics.RecordPlaceFailure(ctx, code, elapsed)
}
