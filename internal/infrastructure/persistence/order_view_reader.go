package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/streetmart/backend/internal/domain/shared"
	"github.com/streetmart/backend/internal/domain/trade"
)

// orderViewSelect is a flat join of orders, both parties and every line.
// Orders without lines still appear thanks to the LEFT JOINs.
const orderViewSelect = `
SELECT
	o.id AS order_id, o.order_date, o.status, o.total_amount,
	o.vendor_id, COALESCE(v.name, '') AS vendor_name, COALESCE(v.shop_business_name, '') AS vendor_business_name,
	COALESCE(v.locality, '') AS vendor_locality, COALESCE(v.contact_number, '') AS vendor_contact,
	o.supplier_id, COALESCE(s.name, '') AS supplier_name, COALESCE(s.shop_business_name, '') AS supplier_business_name,
	COALESCE(s.locality, '') AS supplier_locality, COALESCE(s.contact_number, '') AS supplier_contact,
	oi.line_no, oi.product_id, p.name AS product_name, p.unit, oi.quantity, oi.price_at_order
FROM orders o
JOIN users v ON v.id = o.vendor_id
JOIN users s ON s.id = o.supplier_id
LEFT JOIN order_items oi ON oi.order_id = o.id
LEFT JOIN products p ON p.id = oi.product_id
`

const orderViewOrder = ` ORDER BY o.order_date DESC, o.id DESC, oi.line_no ASC`

type orderViewRow struct {
	OrderID              uuid.UUID       `db:"order_id"`
	OrderDate            time.Time       `db:"order_date"`
	Status               string          `db:"status"`
	TotalAmount          decimal.Decimal `db:"total_amount"`
	VendorID             uuid.UUID       `db:"vendor_id"`
	VendorName           string          `db:"vendor_name"`
	VendorBusinessName   string          `db:"vendor_business_name"`
	VendorLocality       string          `db:"vendor_locality"`
	VendorContact        string          `db:"vendor_contact"`
	SupplierID           uuid.UUID       `db:"supplier_id"`
	SupplierName         string          `db:"supplier_name"`
	SupplierBusinessName string          `db:"supplier_business_name"`
	SupplierLocality     string          `db:"supplier_locality"`
	SupplierContact      string          `db:"supplier_contact"`

	LineNo       sql.NullInt64       `db:"line_no"`
	ProductID    uuid.NullUUID       `db:"product_id"`
	ProductName  sql.NullString      `db:"product_name"`
	Unit         sql.NullString      `db:"unit"`
	Quantity     decimal.NullDecimal `db:"quantity"`
	PriceAtOrder decimal.NullDecimal `db:"price_at_order"`
}

// SqlxOrderViewReader implements trade.OrderViewReader with plain SQL through sqlx.
// The join is grouped in Go so the same query runs on postgres and sqlite.
type SqlxOrderViewReader struct {
	db *sqlx.DB
}

// NewSqlxOrderViewReader creates a new SqlxOrderViewReader
func NewSqlxOrderViewReader(db *sqlx.DB) *SqlxOrderViewReader {
	return &SqlxOrderViewReader{db: db}
}

// ListBySupplier returns every order received by the supplier, newest first
func (r *SqlxOrderViewReader) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]trade.OrderView, error) {
	return r.list(ctx, "WHERE o.supplier_id = ?", supplierID)
}

// ListByVendor returns every order placed by the vendor, newest first
func (r *SqlxOrderViewReader) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]trade.OrderView, error) {
	return r.list(ctx, "WHERE o.vendor_id = ?", vendorID)
}

// FindByID returns a single order view
func (r *SqlxOrderViewReader) FindByID(ctx context.Context, orderID uuid.UUID) (*trade.OrderView, error) {
	views, err := r.list(ctx, "WHERE o.id = ?", orderID)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, shared.ErrNotFound
	}
	return &views[0], nil
}

func (r *SqlxOrderViewReader) list(ctx context.Context, where string, arg any) ([]trade.OrderView, error) {
	query := r.db.Rebind(orderViewSelect + where + orderViewOrder)

	var rows []orderViewRow
	if err := r.db.SelectContext(ctx, &rows, query, arg); err != nil {
		return nil, fmt.Errorf("select order views: %w", err)
	}
	return groupOrderViews(rows), nil
}

// groupOrderViews folds consecutive rows of the same order into one view,
// keeping the query's ordering.
func groupOrderViews(rows []orderViewRow) []trade.OrderView {
	views := make([]trade.OrderView, 0)
	for _, row := range rows {
		if len(views) == 0 || views[len(views)-1].OrderID != row.OrderID {
			views = append(views, trade.OrderView{
				OrderID:              row.OrderID,
				OrderDate:            row.OrderDate,
				Status:               trade.OrderStatus(row.Status),
				TotalAmount:          row.TotalAmount,
				VendorID:             row.VendorID,
				VendorName:           row.VendorName,
				VendorBusinessName:   row.VendorBusinessName,
				VendorLocality:       row.VendorLocality,
				VendorContact:        row.VendorContact,
				SupplierID:           row.SupplierID,
				SupplierName:         row.SupplierName,
				SupplierBusinessName: row.SupplierBusinessName,
				SupplierLocality:     row.SupplierLocality,
				SupplierContact:      row.SupplierContact,
				Lines:                make([]trade.OrderLineView, 0),
			})
		}
		if !row.LineNo.Valid {
			continue
		}
		current := &views[len(views)-1]
		current.Lines = append(current.Lines, trade.OrderLineView{
			LineNo:       int(row.LineNo.Int64),
			ProductID:    row.ProductID.UUID,
			ProductName:  row.ProductName.String,
			Unit:         row.Unit.String,
			Quantity:     row.Quantity.Decimal,
			PriceAtOrder: row.PriceAtOrder.Decimal,
		})
	}
	return views
}
