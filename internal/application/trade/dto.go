package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/streetmart/backend/internal/domain/trade"
)

// MessageOrderPlaced is returned with every successful placement
const MessageOrderPlaced = "Order placed successfully!"

// CartLineRequest is one submitted cart line
type CartLineRequest struct {
	ProductID    uuid.UUID
	SupplierID   uuid.UUID
	Quantity     decimal.Decimal
	PricePerUnit decimal.Decimal
}

// ToCart converts request lines into a domain cart, keeping their order
func ToCart(lines []CartLineRequest) trade.Cart {
	cart := make(trade.Cart, len(lines))
	for i, l := range lines {
		cart[i] = trade.CartLine{
			ProductID:    l.ProductID,
			SupplierID:   l.SupplierID,
			Quantity:     l.Quantity,
			PricePerUnit: l.PricePerUnit,
		}
	}
	return cart
}

// OrderItemResponse is a placed order line
type OrderItemResponse struct {
	LineNo       int             `json:"line_no"`
	ProductID    uuid.UUID       `json:"product_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	PriceAtOrder decimal.Decimal `json:"price_at_order"`
	ItemTotal    decimal.Decimal `json:"item_total"`
}

// PlaceOrderResult is the committed order
type PlaceOrderResult struct {
	OrderID     uuid.UUID           `json:"order_id"`
	SupplierID  uuid.UUID           `json:"supplier_id"`
	Status      string              `json:"status"`
	OrderDate   time.Time           `json:"order_date"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	Items       []OrderItemResponse `json:"items"`
	Message     string              `json:"-"`
}

// OrderStatusResponse is an order after a status change
type OrderStatusResponse struct {
	OrderID uuid.UUID `json:"order_id"`
	Status  string    `json:"status"`
	Version int       `json:"version"`
}

// OrderLineResponse is a line of a dashboard order
type OrderLineResponse struct {
	LineNo       int             `json:"line_no"`
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Unit         string          `json:"unit"`
	Quantity     decimal.Decimal `json:"quantity"`
	PriceAtOrder decimal.Decimal `json:"price_at_order"`
	ItemTotal    decimal.Decimal `json:"item_total"`
}

// SupplierOrderResponse is an order on the supplier dashboard
type SupplierOrderResponse struct {
	OrderID            uuid.UUID           `json:"order_id"`
	OrderDate          time.Time           `json:"order_date"`
	Status             string              `json:"status"`
	TotalAmount        decimal.Decimal     `json:"total_amount"`
	VendorID           uuid.UUID           `json:"vendor_id"`
	VendorName         string              `json:"vendor_name"`
	VendorBusinessName string              `json:"vendor_business_name"`
	VendorLocality     string              `json:"vendor_locality"`
	VendorContact      string              `json:"vendor_contact"`
	ItemsSummary       string              `json:"items_summary"`
	Items              []OrderLineResponse `json:"items"`
}

// VendorOrderResponse is an order on the vendor's "my orders" page
type VendorOrderResponse struct {
	OrderID              uuid.UUID           `json:"order_id"`
	OrderDate            time.Time           `json:"order_date"`
	Status               string              `json:"status"`
	TotalAmount          decimal.Decimal     `json:"total_amount"`
	SupplierID           uuid.UUID           `json:"supplier_id"`
	SupplierName         string              `json:"supplier_name"`
	SupplierBusinessName string              `json:"supplier_business_name"`
	SupplierLocality     string              `json:"supplier_locality"`
	SupplierContact      string              `json:"supplier_contact"`
	ItemsSummary         string              `json:"items_summary"`
	Items                []OrderLineResponse `json:"items"`
}

// SlipFormat selects the slip output
type SlipFormat string

const (
	SlipFormatHTML SlipFormat = "html"
	SlipFormatPDF  SlipFormat = "pdf"
)

// SlipResult is a rendered order slip
type SlipResult struct {
	Filename    string
	ContentType string
	Body        []byte
}

func toPlaceOrderResult(o *trade.Order) *PlaceOrderResult {
	items := make([]OrderItemResponse, len(o.Items))
	for i := range o.Items {
		it := &o.Items[i]
		items[i] = OrderItemResponse{
			LineNo:       it.LineNo,
			ProductID:    it.ProductID,
			Quantity:     it.Quantity,
			PriceAtOrder: it.PriceAtOrder,
			ItemTotal:    it.Total(),
		}
	}
	return &PlaceOrderResult{
		OrderID:     o.ID,
		SupplierID:  o.SupplierID,
		Status:      o.Status.String(),
		OrderDate:   o.OrderDate,
		TotalAmount: o.TotalAmount,
		Items:       items,
		Message:     MessageOrderPlaced,
	}
}

func toLineResponses(lines []trade.OrderLineView) []OrderLineResponse {
	out := make([]OrderLineResponse, len(lines))
	for i, l := range lines {
		out[i] = OrderLineResponse{
			LineNo:       l.LineNo,
			ProductID:    l.ProductID,
			ProductName:  l.ProductName,
			Unit:         l.Unit,
			Quantity:     l.Quantity,
			PriceAtOrder: l.PriceAtOrder,
			ItemTotal:    l.Total(),
		}
	}
	return out
}

func toSupplierOrderResponse(v *trade.OrderView) SupplierOrderResponse {
	return SupplierOrderResponse{
		OrderID:            v.OrderID,
		OrderDate:          v.OrderDate,
		Status:             v.Status.String(),
		TotalAmount:        v.TotalAmount,
		VendorID:           v.VendorID,
		VendorName:         v.VendorName,
		VendorBusinessName: v.VendorBusinessName,
		VendorLocality:     v.VendorLocality,
		VendorContact:      v.VendorContact,
		ItemsSummary:       v.ItemsSummary(false),
		Items:              toLineResponses(v.Lines),
	}
}

func toVendorOrderResponse(v *trade.OrderView) VendorOrderResponse {
	return VendorOrderResponse{
		OrderID:              v.OrderID,
		OrderDate:            v.OrderDate,
		Status:               v.Status.String(),
		TotalAmount:          v.TotalAmount,
		SupplierID:           v.SupplierID,
		SupplierName:         v.SupplierName,
		SupplierBusinessName: v.SupplierBusinessName,
		SupplierLocality:     v.SupplierLocality,
		SupplierContact:      v.SupplierContact,
		ItemsSummary:         v.ItemsSummary(true),
		Items:                toLineResponses(v.Lines),
	}
}
