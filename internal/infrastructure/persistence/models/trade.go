package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/streetmart/backend/internal/domain/trade"
)

// OrderModel is the persistence model for the Order aggregate root.
type OrderModel struct {
	AggregateModel
	VendorID    uuid.UUID         `gorm:"type:uuid;not null;index"`
	SupplierID  uuid.UUID         `gorm:"type:uuid;not null;index"`
	OrderDate   time.Time         `gorm:"not null;index"`
	Status      trade.OrderStatus `gorm:"type:varchar(20);not null;default:'Pending'"`
	TotalAmount decimal.Decimal   `gorm:"type:decimal(24,6);not null"`
	Vendor      *UserModel        `gorm:"foreignKey:VendorID;constraint:OnDelete:RESTRICT"`
	Supplier    *UserModel        `gorm:"foreignKey:SupplierID;constraint:OnDelete:RESTRICT"`
	Items       []OrderItemModel  `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order.
func (m *OrderModel) ToDomain() *trade.Order {
	order := &trade.Order{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		VendorID:          m.VendorID,
		SupplierID:        m.SupplierID,
		OrderDate:         m.OrderDate,
		Status:            m.Status,
		TotalAmount:       m.TotalAmount,
		Items:             make([]trade.OrderItem, len(m.Items)),
	}
	for i := range m.Items {
		order.Items[i] = m.Items[i].ToDomain()
	}
	return order
}

// OrderModelFromDomain creates a header model from a domain Order. Items are not copied.
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{
		VendorID:    o.VendorID,
		SupplierID:  o.SupplierID,
		OrderDate:   o.OrderDate,
		Status:      o.Status,
		TotalAmount: o.TotalAmount,
	}
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	return m
}

// OrderItemModel is the persistence model for an order line.
type OrderItemModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_items_line,priority:1"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	LineNo       int             `gorm:"not null;uniqueIndex:idx_order_items_line,priority:2"`
	Quantity     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PriceAtOrder decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt    time.Time       `gorm:"not null"`
	Product      *ProductModel   `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem.
func (m *OrderItemModel) ToDomain() trade.OrderItem {
	return trade.OrderItem{
		ID:           m.ID,
		OrderID:      m.OrderID,
		ProductID:    m.ProductID,
		LineNo:       m.LineNo,
		Quantity:     m.Quantity,
		PriceAtOrder: m.PriceAtOrder,
		CreatedAt:    m.CreatedAt,
	}
}

// OrderItemModelFromDomain creates a persistence model from a domain OrderItem.
func OrderItemModelFromDomain(i *trade.OrderItem) *OrderItemModel {
	return &OrderItemModel{
		ID:           i.ID,
		OrderID:      i.OrderID,
		ProductID:    i.ProductID,
		LineNo:       i.LineNo,
		Quantity:     i.Quantity,
		PriceAtOrder: i.PriceAtOrder,
		CreatedAt:    i.CreatedAt,
	}
}
