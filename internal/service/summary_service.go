package service

import (
	"context"
	"fmt"
	"time"

	"go-counter-pos/internal/cache"
	"go-counter-pos/internal/model"
	"go-counter-pos/internal/repository"
	"go-counter-pos/internal/ws"
	"go-counter-pos/pkg/period"

	"gorm.io/gorm"
)

const summaryCacheTTL = 5 * time.Minute

type SummaryService interface {
	GetDailySummaries(ctx context.Context, limit int) ([]model.SummaryResponse, error)
	GetWeeklySummaries(ctx context.Context, limit int) ([]model.SummaryResponse, error)
	GetMonthlySummaries(ctx context.Context, limit int) ([]model.SummaryResponse, error)
	RetractDay(date, userID string) error
	RetractWeek(weekStart, userID string) error
	RetractMonth(month, userID string) error
}

type summaryService struct {
	txRepo      repository.TransactionRepository
	summaryRepo repository.SummaryRepository
	db          repository.TxManager
	wsHub       *ws.Hub
	cache       cache.SummaryCache
}

func NewSummaryService(tRepo repository.TransactionRepository, sRepo repository.SummaryRepository, db repository.TxManager, hub *ws.Hub, sc cache.SummaryCache) SummaryService {
	return &summaryService{
		txRepo:      tRepo,
		summaryRepo: sRepo,
		db:          db,
		wsHub:       hub,
		cache:       sc,
	}
}

func (s *summaryService) GetDailySummaries(ctx context.Context, limit int) ([]model.SummaryResponse, error) {
	key := fmt.Sprintf("daily:%d", limit)
	if cached, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		return cached, nil
	}

	summaries, err := s.summaryRepo.ListDaily(limit)
	if err != nil {
		return nil, err
	}
	responses := make([]model.SummaryResponse, len(summaries))
	for i := range summaries {
		responses[i] = summaries[i].ToResponse()
	}
	s.cache.Set(ctx, key, responses, summaryCacheTTL)
	return responses, nil
}

func (s *summaryService) GetWeeklySummaries(ctx context.Context, limit int) ([]model.SummaryResponse, error) {
	key := fmt.Sprintf("weekly:%d", limit)
	if cached, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		return cached, nil
	}

	summaries, err := s.summaryRepo.ListWeekly(limit)
	if err != nil {
		return nil, err
	}
	responses := make([]model.SummaryResponse, len(summaries))
	for i := range summaries {
		responses[i] = summaries[i].ToResponse()
	}
	s.cache.Set(ctx, key, responses, summaryCacheTTL)
	return responses, nil
}

func (s *summaryService) GetMonthlySummaries(ctx context.Context, limit int) ([]model.SummaryResponse, error) {
	key := fmt.Sprintf("monthly:%d", limit)
	if cached, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		return cached, nil
	}

	summaries, err := s.summaryRepo.ListMonthly(limit)
	if err != nil {
		return nil, err
	}
	responses := make([]model.SummaryResponse, len(summaries))
	for i := range summaries {
		responses[i] = summaries[i].ToResponse()
	}
	s.cache.Set(ctx, key, responses, summaryCacheTTL)
	return responses, nil
}

// RetractDay deletes the date's transactions, subtracts the daily
// rollup's totals from its parent weekly and monthly rollups (no
// clamping), and removes the daily row.
func (s *summaryService) RetractDay(date, userID string) error {
	if _, err := period.ParseDate(date); err != nil {
		return fmt.Errorf("%w: %v", repository.ErrInvalidInput, err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.txRepo.DeleteByDate(tx, date); err != nil {
			return err
		}

		daily, err := s.summaryRepo.FindDailyForUpdate(tx, date)
		if err != nil {
			return err
		}
		if daily == nil {
			return nil
		}

		weekStart, _, err := period.WeekRange(date)
		if err != nil {
			return err
		}
		month, err := period.MonthKey(date)
		if err != nil {
			return err
		}

		weekly, err := s.summaryRepo.FindWeeklyForUpdate(tx, weekStart)
		if err != nil {
			return err
		}
		if weekly != nil {
			weekly.TotalAmount = weekly.TotalAmount.Sub(daily.TotalAmount).Round(2)
			weekly.GpayAmount = weekly.GpayAmount.Sub(daily.GpayAmount).Round(2)
			weekly.CashAmount = weekly.CashAmount.Sub(daily.CashAmount).Round(2)
			weekly.OrderCount -= daily.OrderCount
			weekly.UpdatedBy = userID
			if err := s.summaryRepo.SaveWeekly(tx, weekly); err != nil {
				return err
			}
		}

		monthly, err := s.summaryRepo.FindMonthlyForUpdate(tx, month)
		if err != nil {
			return err
		}
		if monthly != nil {
			monthly.TotalAmount = monthly.TotalAmount.Sub(daily.TotalAmount).Round(2)
			monthly.GpayAmount = monthly.GpayAmount.Sub(daily.GpayAmount).Round(2)
			monthly.CashAmount = monthly.CashAmount.Sub(daily.CashAmount).Round(2)
			monthly.OrderCount -= daily.OrderCount
			monthly.UpdatedBy = userID
			if err := s.summaryRepo.SaveMonthly(tx, monthly); err != nil {
				return err
			}
		}

		return s.summaryRepo.DeleteDaily(tx, date)
	})
	if err != nil {
		return err
	}

	s.afterRetract("day_retracted", date)
	return nil
}

// RetractWeek deletes the week's transactions and daily rollups,
// subtracts the weekly totals from the monthly rollup containing
// weekStart, and removes the weekly row.
func (s *summaryService) RetractWeek(weekStart, userID string) error {
	if _, err := period.ParseDate(weekStart); err != nil {
		return fmt.Errorf("%w: %v", repository.ErrInvalidInput, err)
	}
	weekEnd, err := period.AddDays(weekStart, 6)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.txRepo.DeleteByDateRange(tx, weekStart, weekEnd); err != nil {
			return err
		}
		if err := s.summaryRepo.DeleteDailyRange(tx, weekStart, weekEnd); err != nil {
			return err
		}

		weekly, err := s.summaryRepo.FindWeeklyForUpdate(tx, weekStart)
		if err != nil {
			return err
		}
		if weekly == nil {
			return nil
		}

		month, err := period.MonthKey(weekStart)
		if err != nil {
			return err
		}
		monthly, err := s.summaryRepo.FindMonthlyForUpdate(tx, month)
		if err != nil {
			return err
		}
		if monthly != nil {
			monthly.TotalAmount = monthly.TotalAmount.Sub(weekly.TotalAmount).Round(2)
			monthly.GpayAmount = monthly.GpayAmount.Sub(weekly.GpayAmount).Round(2)
			monthly.CashAmount = monthly.CashAmount.Sub(weekly.CashAmount).Round(2)
			monthly.OrderCount -= weekly.OrderCount
			monthly.UpdatedBy = userID
			if err := s.summaryRepo.SaveMonthly(tx, monthly); err != nil {
				return err
			}
		}

		return s.summaryRepo.DeleteWeekly(tx, weekStart)
	})
	if err != nil {
		return err
	}

	s.afterRetract("week_retracted", weekStart)
	return nil
}

// RetractMonth deletes the month's transactions by the naive string
// range [month-01, month-31], removes its daily and weekly rollups, and
// deletes the monthly row. Nothing sits above the monthly level.
func (s *summaryService) RetractMonth(month, userID string) error {
	if !period.ValidMonth(month) {
		return fmt.Errorf("%w: invalid month %q, expected YYYY-MM", repository.ErrInvalidInput, month)
	}
	start, end := period.MonthDateRange(month)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.txRepo.DeleteByDateRange(tx, start, end); err != nil {
			return err
		}
		if err := s.summaryRepo.DeleteDailyRange(tx, start, end); err != nil {
			return err
		}
		if err := s.summaryRepo.DeleteWeeklyRange(tx, start, end); err != nil {
			return err
		}
		return s.summaryRepo.DeleteMonthly(tx, month)
	})
	if err != nil {
		return err
	}

	s.afterRetract("month_retracted", month)
	return nil
}

func (s *summaryService) afterRetract(event, periodKey string) {
	s.cache.Invalidate(context.Background())
	if s.wsHub != nil {
		go s.wsHub.BroadcastEvent(event, map[string]interface{}{"period": periodKey})
	}
}
