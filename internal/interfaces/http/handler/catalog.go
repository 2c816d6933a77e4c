package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appcatalog "github.com/streetmart/backend/internal/application/catalog"
)

// CatalogService is the browse surface of the vendor dashboard.
// *appcatalog.CatalogService satisfies it.
type CatalogService interface {
	ListCategories(ctx context.Context) ([]string, error)
	ListSuppliers(ctx context.Context) ([]appcatalog.SupplierResponse, error)
	BrowseListings(ctx context.Context, filter appcatalog.BrowseFilter) ([]appcatalog.ListingResponse, error)
}

var _ CatalogService = (*appcatalog.CatalogService)(nil)

// CatalogHandler serves the vendor catalog
type CatalogHandler struct {
	BaseHandler
	catalogService CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListCategories godoc
// @Summary      List product categories
// @Description  Distinct product categories, sorted
// @Tags         catalog
// @Produce      json
// @Success      200 {object} APIResponse[[]string]
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// ListSuppliers godoc
// @Summary      List suppliers
// @Description  Registered suppliers ordered by business name
// @Tags         catalog
// @Produce      json
// @Success      200 {object} APIResponse[[]appcatalog.SupplierResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/suppliers [get]
func (h *CatalogHandler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.catalogService.ListSuppliers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, suppliers)
}

// ListListings godoc
// @Summary      Browse supplier listings
// @Description  Listings joined with supplier and product, optionally narrowed by category and supplier
// @Tags         catalog
// @Produce      json
// @Param        category    query string false "Category"
// @Param        supplier_id query string false "Supplier ID" format(uuid)
// @Success      200 {object} APIResponse[[]appcatalog.ListingResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/listings [get]
func (h *CatalogHandler) ListListings(c *gin.Context) {
	filter := appcatalog.BrowseFilter{
		Category: strings.TrimSpace(c.Query("category")),
	}
	if raw := strings.TrimSpace(c.Query("supplier_id")); raw != "" {
		supplierID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid supplier ID format")
			return
		}
		filter.SupplierID = &supplierID
	}

	listings, err := h.catalogService.BrowseListings(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, listings)
}
