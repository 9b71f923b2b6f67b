package report

import (
	"context"
	"time"

	"github.com/autoparts/backend/internal/domain/report"
	"go.uber.org/zap"
)

// TopProductLimit is the ranking size of the overview windows
const TopProductLimit = 5

// Service produces the storefront statistics views
type Service struct {
	reports report.Repository
	logger  *zap.Logger
	now     func() time.Time
}

// NewService creates a report service
func NewService(reports report.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{reports: reports, logger: logger, now: time.Now}
}

// Overview returns storefront-wide counters, total revenue and the top-5
// products by quantity over the trailing 7 and 30 day windows
func (s *Service) Overview(ctx context.Context) (*report.Overview, error) {
	users, err := s.reports.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.reports.CountOrders(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.reports.CountProducts(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.reports.SumRevenue(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	top7, err := s.reports.TopProducts(ctx, now.AddDate(0, 0, -7), TopProductLimit)
	if err != nil {
		return nil, err
	}
	top30, err := s.reports.TopProducts(ctx, now.AddDate(0, 0, -30), TopProductLimit)
	if err != nil {
		return nil, err
	}

	return &report.Overview{
		UserCount:    users,
		OrderCount:   orders,
		ProductCount: products,
		Revenue:      revenue,
		Top7Days:     top7,
		Top30Days:    top30,
	}, nil
}

// Traffic returns daily order counts over the trailing 30 days
func (s *Service) Traffic(ctx context.Context) ([]report.DailyCount, error) {
	since := s.now().AddDate(0, 0, -30)
	return s.reports.DailyOrderCounts(ctx, since)
}
