package service

import (
	"time"

	"go-counter-pos/internal/repository"
	"go-counter-pos/pkg/period"
)

// CounterStats is the overview panel for the counter UI.
type CounterStats struct {
	TotalItems   int64  `json:"total_items"`
	SoldOutItems int64  `json:"sold_out_items"`
	TodayRevenue string `json:"today_revenue"`
	TodayOrders  int    `json:"today_orders"`
}

type DashboardService interface {
	GetCounterStats() (*CounterStats, error)
}

type dashboardService struct {
	menuRepo    repository.MenuRepository
	summaryRepo repository.SummaryRepository
}

func NewDashboardService(mRepo repository.MenuRepository, sRepo repository.SummaryRepository) DashboardService {
	return &dashboardService{menuRepo: mRepo, summaryRepo: sRepo}
}

func (s *dashboardService) GetCounterStats() (*CounterStats, error) {
	total, err := s.menuRepo.Count()
	if err != nil {
		return nil, err
	}
	soldOut, err := s.menuRepo.CountSoldOut()
	if err != nil {
		return nil, err
	}

	stats := &CounterStats{
		TotalItems:   total,
		SoldOutItems: soldOut,
		TodayRevenue: "0.00",
	}

	today := time.Now().Format(period.DateLayout)
	daily, err := s.summaryRepo.FindDaily(today)
	if err != nil {
		return nil, err
	}
	if daily != nil {
		stats.TodayRevenue = daily.TotalAmount.StringFixed(2)
		stats.TodayOrders = daily.OrderCount
	}

	return stats, nil
}
