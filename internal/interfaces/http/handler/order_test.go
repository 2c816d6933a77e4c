package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apptrade "github.com/streetmart/backend/internal/application/trade"
	"github.com/streetmart/backend/internal/domain/identity"
	"github.com/streetmart/backend/internal/domain/shared"
	"github.com/streetmart/backend/internal/domain/trade"
	"github.com/streetmart/backend/internal/interfaces/http/dto"
)

func TestPlaceOrderRequest_UnmarshalJSON(t *testing.T) {
	productID := uuid.New()
	supplierID := uuid.New()

	tests := []struct {
		name      string
		body      string
		wantLines int
		wantErr   bool
	}{
		{"bare array", `[{"product_id":"` + productID.String() + `","supplier_id":"` + supplierID.String() + `","quantity":2,"price_per_unit":"25.00"}]`, 1, false},
		{"items object", `{"items":[{"product_id":"` + productID.String() + `","supplier_id":"` + supplierID.String() + `","quantity":"1.5","price_per_unit":30}]}`, 1, false},
		{"empty array", `[]`, 0, false},
		{"null", `null`, 0, false},
		{"object without items", `{}`, 0, false},
		{"scalar", `42`, 0, true},
		{"bad uuid", `[{"product_id":"abc"}]`, 0, true},
		{"bad quantity", `[{"quantity":"two"}]`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req PlaceOrderRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, req.Items, tt.wantLines)
		})
	}

	t.Run("decimal values survive", func(t *testing.T) {
		var req PlaceOrderRequest
		body := `{"items":[{"product_id":"` + productID.String() + `","supplier_id":"` + supplierID.String() + `","quantity":"1.5","price_per_unit":30}]}`
		require.NoError(t, json.Unmarshal([]byte(body), &req))
		assert.Equal(t, productID, req.Items[0].ProductID)
		assert.True(t, req.Items[0].Quantity.Equal(decimal.RequireFromString("1.5")))
		assert.True(t, req.Items[0].PricePerUnit.Equal(decimal.NewFromInt(30)))
	})
}

func placedResult(supplierID uuid.UUID) *apptrade.PlaceOrderResult {
	return &apptrade.PlaceOrderResult{
		OrderID:     uuid.New(),
		SupplierID:  supplierID,
		Status:      trade.OrderStatusPending.String(),
		OrderDate:   time.Now(),
		TotalAmount: decimal.NewFromInt(140),
		Message:     apptrade.MessageOrderPlaced,
	}
}

func TestOrderHandler_PlaceOrder(t *testing.T) {
	productA, productB, supplierID := uuid.New(), uuid.New(), uuid.New()
	cartBody := []map[string]any{
		{"product_id": productA, "supplier_id": supplierID, "quantity": 2, "price_per_unit": "25"},
		{"product_id": productB, "supplier_id": supplierID, "quantity": 3, "price_per_unit": "30"},
	}

	t.Run("success", func(t *testing.T) {
		svc := new(MockOrderService)
		h := NewOrderHandler(svc, new(MockSlipService))
		actor := vendor()
		result := placedResult(supplierID)

		svc.On("PlaceOrder", mock.Anything, actor, mock.MatchedBy(func(cart trade.Cart) bool {
			return len(cart) == 2 &&
				cart[0].ProductID == productA && cart[1].ProductID == productB &&
				cart[0].Quantity.Equal(decimal.NewFromInt(2)) &&
				cart[1].PricePerUnit.Equal(decimal.NewFromInt(30))
		})).Return(result, nil)

		c, w := newTestContext(t, http.MethodPost, "/api/v1/orders", cartBody)
		withActor(c, actor)
		h.PlaceOrder(c)

		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["success"])
		assert.Equal(t, "Order placed successfully!", resp["message"])
		assert.Equal(t, result.OrderID.String(), resp["order_id"])
		data := resp["data"].(map[string]any)
		assert.Equal(t, "140", data["total_amount"])
		svc.AssertExpectations(t)
	})

	t.Run("items wrapper", func(t *testing.T) {
		svc := new(MockOrderService)
		h := NewOrderHandler(svc, new(MockSlipService))
		actor := vendor()
		svc.On("PlaceOrder", mock.Anything, actor, mock.MatchedBy(func(cart trade.Cart) bool {
			return len(cart) == 2
		})).Return(placedResult(supplierID), nil)

		c, w := newTestContext(t, http.MethodPost, "/api/v1/place_order", map[string]any{"items": cartBody})
		withActor(c, actor)
		h.PlaceOrder(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("empty body reaches the engine as an empty cart", func(t *testing.T) {
		svc := new(MockOrderService)
		h := NewOrderHandler(svc, new(MockSlipService))
		actor := vendor()
		svc.On("PlaceOrder", mock.Anything, actor, trade.Cart{}).Return(nil, trade.ErrEmptyCart)

		c, w := newTestContext(t, http.MethodPost, "/api/v1/orders", nil)
		withActor(c, actor)
		h.PlaceOrder(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeEmptyCart, resp.Error.Code)
		assert.Equal(t, "No order data provided", resp.Message)
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := new(MockOrderService)
		h := NewOrderHandler(svc, new(MockSlipService))

		c, w := newTestContext(t, http.MethodPost, "/api/v1/orders", `[{"product_id": 12}]`)
		withActor(c, vendor())
		h.PlaceOrder(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidPayload, decodeResponse(t, w).Error.Code)
		svc.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	errorCases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not a vendor", trade.ErrNotVendor, http.StatusUnauthorized, dto.ErrCodeUnauthorized},
		{"mixed supplier", trade.ErrMixedSupplierCart, http.StatusBadRequest, dto.ErrCodeMixedSupplierCart},
		{"line error", shared.NewDomainError("INVALID_PAYLOAD", "Item 2: quantity must be greater than zero"), http.StatusBadRequest, dto.ErrCodeInvalidPayload},
		{"listing not found", trade.ErrListingNotFound, http.StatusBadRequest, dto.ErrCodeListingNotFound},
		{"price changed", trade.ErrPriceChanged, http.StatusConflict, dto.ErrCodePriceChanged},
		{"storage failure", trade.ErrStorageFailure, http.StatusInternalServerError, dto.ErrCodeStorageFailure},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockOrderService)
			h := NewOrderHandler(svc, new(MockSlipService))
			svc.On("PlaceOrder", mock.Anything, mock.Anything, mock.Anything).Return(nil, tc.err)

			c, w := newTestContext(t, http.MethodPost, "/api/v1/orders", cartBody)
			withActor(c, supplier())
			h.PlaceOrder(c)

			assert.Equal(t, tc.status, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tc.code, resp.Error.Code)
			assert.NotContains(t, w.Body.String(), "order_id")
		})
	}
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	orderID := uuid.New()

	t.Run("success", func(t *testing.T) {
		svc := new(MockOrderService)
		h := NewOrderHandler(svc, new(MockSlipService))
		actor := supplier()
		svc.On("UpdateStatus", mock.Anything, actor, orderID, "Accepted").
			Return(&apptrade.OrderStatusResponse{OrderID: orderID, Status: "Accepted", Version: 2}, nil)

		c, w := newTestContext(t, http.MethodPatch, "/api/v1/orders/"+orderID.String()+"/status", UpdateOrderStatusRequest{Status: "Accepted"})
		c.AddParam("id", orderID.String())
		withActor(c, actor)
		h.UpdateStatus(c)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, "Order status updated to Accepted", resp.Message)
		assert.Equal(t, "Accepted", resp.Data.(map[string]any)["status"])
	})

	t.Run("invalid transition", func(t *testing.T) {
		svc := new(MockOrderService)
		h := NewOrderHandler(svc, new(MockSlipService))
		svc.On("UpdateStatus", mock.Anything, mock.Anything, orderID, "Delivered").
			Return(nil, shared.NewDomainError("INVALID_STATE", "Cannot move order from Pending to Delivered"))

		c, w := newTestContext(t, http.MethodPatch, "/", UpdateOrderStatusRequest{Status: "Delivered"})
		c.AddParam("id", orderID.String())
		withActor(c, supplier())
		h.UpdateStatus(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("stranger", func(t *testing.T) {
		svc := new(MockOrderService)
		h := NewOrderHandler(svc, new(MockSlipService))
		svc.On("UpdateStatus", mock.Anything, mock.Anything, orderID, "Cancelled").Return(nil, shared.ErrForbidden)

		c, w := newTestContext(t, http.MethodPatch, "/", UpdateOrderStatusRequest{Status: "Cancelled"})
		c.AddParam("id", orderID.String())
		withActor(c, vendor())
		h.UpdateStatus(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("concurrent update", func(t *testing.T) {
		svc := new(MockOrderService)
		h := NewOrderHandler(svc, new(MockSlipService))
		svc.On("UpdateStatus", mock.Anything, mock.Anything, orderID, "Accepted").Return(nil, shared.ErrConcurrencyConflict)

		c, w := newTestContext(t, http.MethodPatch, "/", UpdateOrderStatusRequest{Status: "Accepted"})
		c.AddParam("id", orderID.String())
		withActor(c, supplier())
		h.UpdateStatus(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		svc := new(MockOrderService)
		h := NewOrderHandler(svc, new(MockSlipService))

		c, w := newTestContext(t, http.MethodPatch, "/", UpdateOrderStatusRequest{Status: "Accepted"})
		c.AddParam("id", "17")
		h.UpdateStatus(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing status", func(t *testing.T) {
		svc := new(MockOrderService)
		h := NewOrderHandler(svc, new(MockSlipService))

		c, w := newTestContext(t, http.MethodPatch, "/", map[string]string{})
		c.AddParam("id", orderID.String())
		h.UpdateStatus(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestOrderHandler_GetSlip(t *testing.T) {
	orderID := uuid.New()

	t.Run("html by default", func(t *testing.T) {
		slips := new(MockSlipService)
		h := NewOrderHandler(new(MockOrderService), slips)
		actor := supplier()
		slips.On("Render", mock.Anything, actor, orderID, apptrade.SlipFormatHTML).Return(&apptrade.SlipResult{
			Filename:    "order-ABC12345.html",
			ContentType: "text/html; charset=utf-8",
			Body:        []byte("<html>slip</html>"),
		}, nil)

		c, w := newTestContext(t, http.MethodGet, "/api/v1/orders/"+orderID.String()+"/slip", nil)
		c.AddParam("id", orderID.String())
		withActor(c, actor)
		h.GetSlip(c)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, `inline; filename="order-ABC12345.html"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, "<html>slip</html>", w.Body.String())
	})

	t.Run("pdf", func(t *testing.T) {
		slips := new(MockSlipService)
		h := NewOrderHandler(new(MockOrderService), slips)
		actor := vendor()
		slips.On("Render", mock.Anything, actor, orderID, apptrade.SlipFormatPDF).Return(&apptrade.SlipResult{
			Filename:    "order-ABC12345.pdf",
			ContentType: "application/pdf",
			Body:        []byte("%PDF-1.4"),
		}, nil)

		c, w := newTestContext(t, http.MethodGet, "/api/v1/orders/"+orderID.String()+"/slip?format=pdf", nil)
		c.AddParam("id", orderID.String())
		withActor(c, actor)
		h.GetSlip(c)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Equal(t, "%PDF-1.4", w.Body.String())
	})

	t.Run("printing disabled", func(t *testing.T) {
		slips := new(MockSlipService)
		h := NewOrderHandler(new(MockOrderService), slips)
		slips.On("Render", mock.Anything, mock.Anything, orderID, apptrade.SlipFormatPDF).Return(nil, apptrade.ErrPrintingDisabled)

		c, w := newTestContext(t, http.MethodGet, "/slip?format=pdf", nil)
		c.AddParam("id", orderID.String())
		withActor(c, vendor())
		h.GetSlip(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, dto.ErrCodePrintingDisabled, decodeResponse(t, w).Error.Code)
	})

	t.Run("not a party", func(t *testing.T) {
		slips := new(MockSlipService)
		h := NewOrderHandler(new(MockOrderService), slips)
		slips.On("Render", mock.Anything, mock.Anything, orderID, apptrade.SlipFormatHTML).Return(nil, shared.ErrForbidden)

		c, w := newTestContext(t, http.MethodGet, "/slip", nil)
		c.AddParam("id", orderID.String())
		withActor(c, identity.NewActor(uuid.New(), "other", identity.RoleVendor))
		h.GetSlip(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("render timeout", func(t *testing.T) {
		slips := new(MockSlipService)
		h := NewOrderHandler(new(MockOrderService), slips)
		slips.On("Render", mock.Anything, mock.Anything, orderID, apptrade.SlipFormatPDF).
			Return(nil, shared.NewDomainError("RENDER_TIMEOUT", "PDF rendering timed out"))

		c, w := newTestContext(t, http.MethodGet, "/slip?format=pdf", nil)
		c.AddParam("id", orderID.String())
		withActor(c, vendor())
		h.GetSlip(c)

		assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	})
}
