package handler

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apptrade "github.com/streetmart/backend/internal/application/trade"
)

// errMalformedOrder is returned when the body is neither an array of lines nor {"items": [...]}
var errMalformedOrder = errors.New("order body must be an array of lines or an object with items")

// CartLineRequest is one line of a submitted cart. Quantities and prices may be
// sent as JSON numbers or strings.
type CartLineRequest struct {
	ProductID    uuid.UUID       `json:"product_id" swaggertype:"string" format:"uuid"`
	SupplierID   uuid.UUID       `json:"supplier_id" swaggertype:"string" format:"uuid"`
	Quantity     decimal.Decimal `json:"quantity" swaggertype:"string" example:"2"`
	PricePerUnit decimal.Decimal `json:"price_per_unit" swaggertype:"string" example:"25.00"`
}

// PlaceOrderRequest accepts the bare array the storefront posts as well as {"items": [...]}
type PlaceOrderRequest struct {
	Items []CartLineRequest `json:"items"`
}

// UnmarshalJSON implements json.Unmarshaler
func (r *PlaceOrderRequest) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0, bytes.Equal(trimmed, []byte("null")):
		r.Items = nil
		return nil
	case trimmed[0] == '[':
		return json.Unmarshal(trimmed, &r.Items)
	case trimmed[0] == '{':
		var wrapped struct {
			Items []CartLineRequest `json:"items"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return err
		}
		r.Items = wrapped.Items
		return nil
	default:
		return errMalformedOrder
	}
}

func (r PlaceOrderRequest) toLines() []apptrade.CartLineRequest {
	lines := make([]apptrade.CartLineRequest, len(r.Items))
	for i, item := range r.Items {
		lines[i] = apptrade.CartLineRequest{
			ProductID:    item.ProductID,
			SupplierID:   item.SupplierID,
			Quantity:     item.Quantity,
			PricePerUnit: item.PricePerUnit,
		}
	}
	return lines
}

// PlaceOrderResponse is the placement outcome. OrderID is repeated at the top
// level for clients of the original storefront.
type PlaceOrderResponse struct {
	Success bool                       `json:"success" example:"true"`
	Message string                     `json:"message" example:"Order placed successfully!"`
	OrderID *uuid.UUID                 `json:"order_id,omitempty" swaggertype:"string" format:"uuid"`
	Data    *apptrade.PlaceOrderResult `json:"data,omitempty"`
}

// UpdateOrderStatusRequest moves an order to a new status
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required" example:"Accepted" enums:"Pending,Accepted,Dispatched,Delivered,Cancelled"`
}
