package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemsSummarySeparator joins the entries of an items summary
const ItemsSummarySeparator = " ||| "

// OrderLineView is an order item joined with its product
type OrderLineView struct {
	LineNo       int
	ProductID    uuid.UUID
	ProductName  string
	Unit         string
	Quantity     decimal.Decimal
	PriceAtOrder decimal.Decimal
}

// Total returns quantity x price_at_order
func (l OrderLineView) Total() decimal.Decimal {
	return l.Quantity.Mul(l.PriceAtOrder)
}

// OrderView is the read model of an order used by dashboards and slips
type OrderView struct {
	OrderID     uuid.UUID
	OrderDate   time.Time
	Status      OrderStatus
	TotalAmount decimal.Decimal

	VendorID             uuid.UUID
	VendorName           string
	VendorBusinessName   string
	VendorLocality       string
	VendorContact        string
	SupplierID           uuid.UUID
	SupplierName         string
	SupplierBusinessName string
	SupplierLocality     string
	SupplierContact      string

	Lines []OrderLineView
}

// ItemsSummary renders the lines as "<name> (<qty> <unit>)" entries, or with
// withPrice as "<name> (<qty> <unit> @Rs.<price>)", joined by ItemsSummarySeparator.
func (v *OrderView) ItemsSummary(withPrice bool) string {
	parts := make([]string, len(v.Lines))
	for i, l := range v.Lines {
		if withPrice {
			parts[i] = fmt.Sprintf("%s (%s %s @Rs.%s)", l.ProductName, l.Quantity.String(), l.Unit, l.PriceAtOrder.StringFixed(2))
		} else {
			parts[i] = fmt.Sprintf("%s (%s %s)", l.ProductName, l.Quantity.String(), l.Unit)
		}
	}
	return strings.Join(parts, ItemsSummarySeparator)
}
