package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/streetmart/backend/internal/domain/catalog"
	"github.com/streetmart/backend/internal/domain/shared"
	"github.com/streetmart/backend/internal/domain/trade"
	"github.com/streetmart/backend/internal/infrastructure/printing"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Place(ctx context.Context, order *trade.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, order *trade.Order) error {
	return m.Called(ctx, order).Error(0)
}

type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(ctx context.Context, listing *catalog.SupplierProduct) error {
	return m.Called(ctx, listing).Error(0)
}

func (m *MockListingRepository) FindBySupplierAndProduct(ctx context.Context, supplierID, productID uuid.UUID) (*catalog.SupplierProduct, error) {
	args := m.Called(ctx, supplierID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.SupplierProduct), args.Error(1)
}

func (m *MockListingRepository) FindBySupplierAndProducts(ctx context.Context, supplierID uuid.UUID, productIDs []uuid.UUID) (map[uuid.UUID]*catalog.SupplierProduct, error) {
	args := m.Called(ctx, supplierID, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]*catalog.SupplierProduct), args.Error(1)
}

func (m *MockListingRepository) Browse(ctx context.Context, filter catalog.ListingFilter) ([]catalog.Listing, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Listing), args.Error(1)
}

type MockOrderViewReader struct {
	mock.Mock
}

func (m *MockOrderViewReader) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]trade.OrderView, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.OrderView), args.Error(1)
}

func (m *MockOrderViewReader) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]trade.OrderView, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.OrderView), args.Error(1)
}

func (m *MockOrderViewReader) FindByID(ctx context.Context, orderID uuid.UUID) (*trade.OrderView, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.OrderView), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}

type MockOrderMetrics struct {
	mock.Mock
}

func (m *MockOrderMetrics) RecordOrderPlaced(ctx context.Context, supplierID string, total decimal.Decimal, items int, elapsed time.Duration) {
	m.Called(ctx, supplierID, total.String(), items)
}

func (m *MockOrderMetrics) RecordPlaceFailure(ctx context.Context, code string, elapsed time.Duration) {
	m.Called(ctx, code)
}

func (m *MockOrderMetrics) RecordStatusChange(ctx context.Context, from, to string) {
	m.Called(ctx, from, to)
}

type MockPDFRenderer struct {
	mock.Mock
}

func (m *MockPDFRenderer) Render(ctx context.Context, req *printing.RenderRequest) (*printing.RenderResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*printing.RenderResult), args.Error(1)
}

func (m *MockPDFRenderer) Close() error {
	return m.Called().Error(0)
}
