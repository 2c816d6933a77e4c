package router

import (
	"github.com/gin-gonic/gin"

	"github.com/streetmart/backend/internal/domain/identity"
	"github.com/streetmart/backend/internal/interfaces/http/handler"
	"github.com/streetmart/backend/internal/interfaces/http/middleware"
)

// Handlers are the HTTP handlers served under the API group
type Handlers struct {
	Auth      *handler.AuthHandler
	Catalog   *handler.CatalogHandler
	Order     *handler.OrderHandler
	Dashboard *handler.DashboardHandler
	System    *handler.SystemHandler
}

// MarketplaceRoutes builds the route groups. authLimiter, when non-nil, guards
// the credential endpoints on top of the global rate limit.
//
// Role checks for placing orders and for the dashboards stay in the
// application services so their messages reach the client unchanged.
func MarketplaceRoutes(h Handlers, authLimiter gin.HandlerFunc) []*DomainGroup {
	credential := func(fn gin.HandlerFunc) []gin.HandlerFunc {
		if authLimiter == nil {
			return []gin.HandlerFunc{fn}
		}
		return []gin.HandlerFunc{authLimiter, fn}
	}

	authRoutes := NewDomainGroup("auth", "/auth").
		POST("/register", credential(h.Auth.Register)...).
		POST("/login", credential(h.Auth.Login)...).
		POST("/refresh", credential(h.Auth.RefreshToken)...).
		POST("/logout", h.Auth.Logout).
		GET("/me", h.Auth.GetCurrentUser)

	catalogRoutes := NewDomainGroup("catalog", "/catalog").
		Use(middleware.RequireRole(identity.RoleVendor)).
		GET("/categories", h.Catalog.ListCategories).
		GET("/suppliers", h.Catalog.ListSuppliers).
		GET("/listings", h.Catalog.ListListings)

	orderRoutes := NewDomainGroup("orders", "/orders").
		POST("", h.Order.PlaceOrder).
		PATCH("/:id/status", h.Order.UpdateStatus).
		GET("/:id/slip", h.Order.GetSlip)

	// the storefront posts its cart here
	legacyRoutes := NewDomainGroup("legacy", "").
		POST("/place_order", h.Order.PlaceOrder)

	dashboardRoutes := NewDomainGroup("dashboard", "/dashboard").
		GET("/supplier/orders", h.Dashboard.SupplierOrders).
		GET("/vendor/orders", h.Dashboard.VendorOrders)

	systemRoutes := NewDomainGroup("system", "/system").
		GET("/info", h.System.GetSystemInfo).
		GET("/ping", h.System.Ping)

	return []*DomainGroup{
		authRoutes,
		catalogRoutes,
		orderRoutes,
		legacyRoutes,
		dashboardRoutes,
		systemRoutes,
	}
}
