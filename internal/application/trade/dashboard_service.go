package trade

import (
	"context"

	"go.uber.org/zap"

	"github.com/streetmart/backend/internal/domain/identity"
	"github.com/streetmart/backend/internal/domain/shared"
	"github.com/streetmart/backend/internal/domain/trade"
)

// DashboardService builds the supplier and vendor order lists
type DashboardService struct {
	views  trade.OrderViewReader
	logger *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(views trade.OrderViewReader, logger *zap.Logger) *DashboardService {
	return &DashboardService{views: views, logger: logger}
}

// ListSupplierOrders returns every order received by the supplier, newest first
func (s *DashboardService) ListSupplierOrders(ctx context.Context, actor *identity.Actor) ([]SupplierOrderResponse, error) {
	if !actor.IsSupplier() {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Please log in as a supplier to access this page.")
	}

	views, err := s.views.ListBySupplier(ctx, actor.UserID)
	if err != nil {
		s.logger.Error("Failed to load supplier orders", zap.String("supplier_id", actor.UserID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load orders")
	}

	out := make([]SupplierOrderResponse, len(views))
	for i := range views {
		out[i] = toSupplierOrderResponse(&views[i])
	}
	return out, nil
}

// ListVendorOrders returns every order placed by the vendor, newest first
func (s *DashboardService) ListVendorOrders(ctx context.Context, actor *identity.Actor) ([]VendorOrderResponse, error) {
	if !actor.IsVendor() {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Please log in as a vendor to access this page.")
	}

	views, err := s.views.ListByVendor(ctx, actor.UserID)
	if err != nil {
		s.logger.Error("Failed to load vendor orders", zap.String("vendor_id", actor.UserID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load orders")
	}

	out := make([]VendorOrderResponse, len(views))
	for i := range views {
		out[i] = toVendorOrderResponse(&views[i])
	}
	return out, nil
}
