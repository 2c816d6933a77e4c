package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apptrade "github.com/streetmart/backend/internal/application/trade"
	"github.com/streetmart/backend/internal/domain/identity"
	"github.com/streetmart/backend/internal/domain/trade"
	"github.com/streetmart/backend/internal/infrastructure/logger"
	"github.com/streetmart/backend/internal/interfaces/http/dto"
)

// OrderService is the order engine surface. *apptrade.OrderService satisfies it.
type OrderService interface {
	PlaceOrder(ctx context.Context, actor *identity.Actor, cart trade.Cart) (*apptrade.PlaceOrderResult, error)
	UpdateStatus(ctx context.Context, actor *identity.Actor, orderID uuid.UUID, status string) (*apptrade.OrderStatusResponse, error)
}

// SlipService renders order slips. *apptrade.SlipService satisfies it.
type SlipService interface {
	Render(ctx context.Context, actor *identity.Actor, orderID uuid.UUID, format apptrade.SlipFormat) (*apptrade.SlipResult, error)
}

var (
	_ OrderService = (*apptrade.OrderService)(nil)
	_ SlipService  = (*apptrade.SlipService)(nil)
)

// OrderHandler handles order placement, status changes and slips
type OrderHandler struct {
	BaseHandler
	orderService OrderService
	slipService  SlipService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService OrderService, slipService SlipService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		slipService:  slipService,
	}
}

// PlaceOrder godoc
// @Summary      Place an order
// @Description  Turn a vendor's cart into one order. All lines must come from the same supplier.
// @Description  The body is either a JSON array of lines or an object {"items": [...]}.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body []CartLineRequest true "Cart lines"
// @Success      200 {object} PlaceOrderResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.BadRequest(c, "Failed to read request body")
		return
	}

	var req PlaceOrderRequest
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("null")
	}
	if err := json.Unmarshal(body, &req); err != nil {
		logger.GetGinLogger(c).Debug("Malformed order body", zap.Error(err))
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidPayload, "Malformed order data")
		return
	}

	result, err := h.orderService.PlaceOrder(c.Request.Context(), getActor(c), apptrade.ToCart(req.toLines()))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	orderID := result.OrderID
	c.JSON(http.StatusOK, PlaceOrderResponse{
		Success: true,
		Message: result.Message,
		OrderID: &orderID,
		Data:    result,
	})
}

// UpdateStatus godoc
// @Summary      Change an order's status
// @Description  Suppliers accept, dispatch, deliver or cancel their orders. Vendors may cancel a pending order.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id      path string                   true "Order ID" format(uuid)
// @Param        request body UpdateOrderStatusRequest true "New status"
// @Success      200 {object} APIResponse[apptrade.OrderStatusResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.orderService.UpdateStatus(c.Request.Context(), getActor(c), orderID, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMessage(c, "Order status updated to "+result.Status, result)
}

// GetSlip godoc
// @Summary      Order slip
// @Description  Printable slip for an order, as HTML or PDF. Only the order's vendor or supplier may fetch it.
// @Tags         orders
// @Produce      text/html
// @Produce      application/pdf
// @Param        id     path  string true  "Order ID" format(uuid)
// @Param        format query string false "Output format" Enums(html, pdf) default(html)
// @Success      200 {file} binary "Order slip"
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Failure      504 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id}/slip [get]
func (h *OrderHandler) GetSlip(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	format := apptrade.SlipFormat(c.DefaultQuery("format", string(apptrade.SlipFormatHTML)))
	slip, err := h.slipService.Render(c.Request.Context(), getActor(c), orderID, format)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", "inline; filename=\""+slip.Filename+"\"")
	c.Data(http.StatusOK, slip.ContentType, slip.Body)
}
