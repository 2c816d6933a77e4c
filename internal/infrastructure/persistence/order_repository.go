package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/streetmart/backend/internal/domain/shared"
	"github.com/streetmart/backend/internal/domain/trade"
	"github.com/streetmart/backend/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements trade.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Place writes the header with a zero total, then each item in line order, then
// the accumulated total, all inside one transaction.
func (r *GormOrderRepository) Place(ctx context.Context, order *trade.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		header := models.OrderModelFromDomain(order)
		header.TotalAmount = decimal.Zero
		if err := tx.Omit(clause.Associations).Create(header).Error; err != nil {
			return fmt.Errorf("insert order header: %w", err)
		}

		total := decimal.Zero
		for i := range order.Items {
			item := &order.Items[i]
			total = total.Add(item.Total())
			if err := tx.Omit(clause.Associations).Create(models.OrderItemModelFromDomain(item)).Error; err != nil {
				return fmt.Errorf("insert order item %d: %w", item.LineNo, err)
			}
		}

		if err := tx.Model(&models.OrderModel{}).
			Where("id = ?", order.ID).
			Updates(map[string]any{"total_amount": total, "updated_at": time.Now()}).Error; err != nil {
			return fmt.Errorf("update order total: %w", err)
		}

		order.TotalAmount = total
		return nil
	})
}

// FindByID finds an order with its items in line order
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_no ASC")
		}).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// UpdateStatus saves a status change guarded by the version read before the transition
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, order *trade.Order) error {
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND version = ?", order.ID, order.Version-1).
		Updates(map[string]any{
			"status":     order.Status,
			"version":    order.Version,
			"updated_at": order.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}
