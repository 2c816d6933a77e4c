package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	apptrade "github.com/streetmart/backend/internal/application/trade"
	"github.com/streetmart/backend/internal/domain/identity"
)

// DashboardService loads the order dashboards. *apptrade.DashboardService satisfies it.
type DashboardService interface {
	ListSupplierOrders(ctx context.Context, actor *identity.Actor) ([]apptrade.SupplierOrderResponse, error)
	ListVendorOrders(ctx context.Context, actor *identity.Actor) ([]apptrade.VendorOrderResponse, error)
}

var _ DashboardService = (*apptrade.DashboardService)(nil)

// DashboardHandler serves the supplier and vendor order dashboards
type DashboardHandler struct {
	BaseHandler
	dashboardService DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// SupplierOrders godoc
// @Summary      Supplier dashboard orders
// @Description  Orders received by the authenticated supplier, newest first, with vendor contact details
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} APIResponse[[]apptrade.SupplierOrderResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /dashboard/supplier/orders [get]
func (h *DashboardHandler) SupplierOrders(c *gin.Context) {
	orders, err := h.dashboardService.ListSupplierOrders(c.Request.Context(), getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// VendorOrders godoc
// @Summary      Vendor order history
// @Description  Orders placed by the authenticated vendor, newest first, with supplier contact details
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} APIResponse[[]apptrade.VendorOrderResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /dashboard/vendor/orders [get]
func (h *DashboardHandler) VendorOrders(c *gin.Context) {
	orders, err := h.dashboardService.ListVendorOrders(c.Request.Context(), getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}
