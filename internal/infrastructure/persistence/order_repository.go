package persistence

import (
	"context"

	"github.com/autoparts/backend/internal/domain/order"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.Repository on gorm
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates an order repository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create inserts the order header and all items in one go
func (r *GormOrderRepository) Create(ctx context.Context, o *order.Order) error {
	return translateError(r.db.WithContext(ctx).Create(o).Error)
}

// Save updates the order header. Items are immutable after placement so
// association saving stays off.
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return translateError(r.db.WithContext(ctx).
		Omit("Items").
		Save(o).Error)
}

// FindByID loads one order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&o, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &o, nil
}

// FindByUser returns the user's orders, newest first, items preloaded
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]order.Order, error) {
	var orders []order.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, translateError(err)
	}
	return orders, nil
}

// List returns paginated orders, optionally filtered by status
func (r *GormOrderRepository) List(ctx context.Context, filter order.ListFilter) ([]order.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&order.Order{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var orders []order.Order
	err := query.
		Preload("Items").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orders).Error
	if err != nil {
		return nil, 0, translateError(err)
	}
	return orders, total, nil
}

// Count returns the total number of orders
func (r *GormOrderRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&order.Order{}).Count(&total).Error
	return total, translateError(err)
}

var _ order.Repository = (*GormOrderRepository)(nil)
