package persistence

import (
	"context"
	"time"

	"github.com/autoparts/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormReportRepository implements report.Repository with raw aggregate
// queries over the orders, order items, products and users tables.
// Aggregates run over all persisted orders regardless of status.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a report repository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// CountUsers returns the number of accounts
func (r *GormReportRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, "users")
}

// CountOrders returns the number of orders
func (r *GormReportRepository) CountOrders(ctx context.Context) (int64, error) {
	return r.count(ctx, "orders")
}

// CountProducts returns the number of catalog products
func (r *GormReportRepository) CountProducts(ctx context.Context) (int64, error) {
	return r.count(ctx, "products")
}

func (r *GormReportRepository) count(ctx context.Context, table string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Table(table).Count(&total).Error
	return total, translateError(err)
}

// SumRevenue returns the sum of all order totals
func (r *GormReportRepository) SumRevenue(ctx context.Context) (decimal.Decimal, error) {
	var row struct {
		Revenue decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Raw("SELECT COALESCE(SUM(total_amount), 0) AS revenue FROM orders").
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, translateError(err)
	}
	return row.Revenue, nil
}

// TopProducts ranks products by quantity sold since the given time
func (r *GormReportRepository) TopProducts(ctx context.Context, since time.Time, limit int) ([]report.TopProduct, error) {
	var rows []report.TopProduct
	err := r.db.WithContext(ctx).
		Raw(`SELECT oi.product_id, oi.product_name, SUM(oi.quantity) AS quantity, SUM(oi.subtotal) AS revenue
			FROM order_items oi
			JOIN orders o ON o.id = oi.order_id
			WHERE o.created_at >= ?
			GROUP BY oi.product_id, oi.product_name
			ORDER BY quantity DESC
			LIMIT ?`, since, limit).
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	return rows, nil
}

// DailyOrderCounts returns order counts grouped by day since the given time
func (r *GormReportRepository) DailyOrderCounts(ctx context.Context, since time.Time) ([]report.DailyCount, error) {
	var rows []report.DailyCount
	err := r.db.WithContext(ctx).
		Raw(`SELECT date_trunc('day', created_at) AS day, COUNT(*) AS count
			FROM orders
			WHERE created_at >= ?
			GROUP BY day
			ORDER BY day`, since).
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	return rows, nil
}

var _ report.Repository = (*GormReportRepository)(nil)
