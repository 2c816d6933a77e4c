package printing

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/streetmart/backend/internal/domain/trade"
)

// SlipBuilder renders an order as a printable HTML slip
type SlipBuilder struct {
	tmpl    *template.Template
	title   cases.Caser
	printer *message.Printer
}

// NewSlipBuilder parses the slip template for the given display language
func NewSlipBuilder(tag language.Tag) *SlipBuilder {
	b := &SlipBuilder{
		title:   cases.Title(tag),
		printer: message.NewPrinter(tag),
	}
	b.tmpl = template.Must(template.New("slip").Funcs(template.FuncMap{
		"title": b.Title,
		"money": b.Money,
		"qty":   func(d decimal.Decimal) string { return d.String() },
		"inc":   func(i int) int { return i + 1 },
	}).Parse(slipTemplate))
	return b
}

// Title title-cases names such as "raju chaat corner"
func (b *SlipBuilder) Title(s string) string {
	return b.title.String(strings.TrimSpace(s))
}

// Money formats an amount with digit grouping and two decimals, e.g. "Rs. 12,345.50"
func (b *SlipBuilder) Money(d decimal.Decimal) string {
	return b.printer.Sprintf("Rs. %.2f", d.Round(2).InexactFloat64())
}

// SlipNumber is the short reference printed on the slip
func SlipNumber(v *trade.OrderView) string {
	return strings.ToUpper(v.OrderID.String()[:8])
}

// BuildHTML renders the slip for an order
func (b *SlipBuilder) BuildHTML(v *trade.OrderView) (string, error) {
	var buf bytes.Buffer
	data := struct {
		*trade.OrderView
		Number string
		Date   string
	}{
		OrderView: v,
		Number:    SlipNumber(v),
		Date:      v.OrderDate.Format("02 Jan 2006, 15:04"),
	}
	if err := b.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render slip: %w", err)
	}
	return buf.String(), nil
}

const slipTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Order {{.Number}}</title>
<style>
  body { font-family: sans-serif; font-size: 12px; color: #222; }
  h1 { font-size: 18px; margin-bottom: 4px; }
  .parties { display: flex; justify-content: space-between; margin: 16px 0; }
  .party h2 { font-size: 13px; margin: 0 0 4px; text-transform: uppercase; color: #666; }
  table { width: 100%; border-collapse: collapse; }
  th, td { border-bottom: 1px solid #ddd; padding: 6px 4px; text-align: left; }
  td.num, th.num { text-align: right; }
  tfoot td { font-weight: bold; border-top: 2px solid #222; }
</style>
</head>
<body>
<h1>Order Slip #{{.Number}}</h1>
<div>Date: {{.Date}} &middot; Status: {{.Status}}</div>
<div class="parties">
  <div class="party">
    <h2>Supplier</h2>
    <div>{{title .SupplierBusinessName}}</div>
    <div>{{title .SupplierName}}</div>
    <div>{{title .SupplierLocality}}</div>
    <div>{{.SupplierContact}}</div>
  </div>
  <div class="party">
    <h2>Vendor</h2>
    <div>{{title .VendorBusinessName}}</div>
    <div>{{title .VendorName}}</div>
    <div>{{title .VendorLocality}}</div>
    <div>{{.VendorContact}}</div>
  </div>
</div>
<table>
  <thead>
    <tr><th>#</th><th>Product</th><th class="num">Quantity</th><th class="num">Price</th><th class="num">Amount</th></tr>
  </thead>
  <tbody>
  {{- range .Lines}}
    <tr><td>{{inc .LineNo}}</td><td>{{title .ProductName}}</td><td class="num">{{qty .Quantity}} {{.Unit}}</td><td class="num">{{money .PriceAtOrder}}</td><td class="num">{{money .Total}}</td></tr>
  {{- end}}
  </tbody>
  <tfoot>
    <tr><td colspan="4">Total</td><td class="num">{{money .TotalAmount}}</td></tr>
  </tfoot>
</table>
</body>
</html>
`
