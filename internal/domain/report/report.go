package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TopProduct is a ranked entry of a best-seller window
type TopProduct struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// Overview aggregates storefront-wide counters and rankings
type Overview struct {
	UserCount    int64           `json:"user_count"`
	OrderCount   int64           `json:"order_count"`
	ProductCount int64           `json:"product_count"`
	Revenue      decimal.Decimal `json:"revenue"`
	Top7Days     []TopProduct    `json:"top_7_days"`
	Top30Days    []TopProduct    `json:"top_30_days"`
}

// DailyCount is one day of order traffic
type DailyCount struct {
	Day   time.Time `json:"day"`
	Count int64     `json:"count"`
}

// Repository defines the read-side aggregation queries
type Repository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountOrders(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
	SumRevenue(ctx context.Context) (decimal.Decimal, error)
	TopProducts(ctx context.Context, since time.Time, limit int) ([]TopProduct, error)
	DailyOrderCounts(ctx context.Context, since time.Time) ([]DailyCount, error)
}
