package service

import (
	"context"
	"errors"
	"fmt"

	"go-counter-pos/internal/cache"
	"go-counter-pos/internal/model"
	"go-counter-pos/internal/repository"
	"go-counter-pos/internal/ws"
	"go-counter-pos/pkg/period"
	"go-counter-pos/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SalesService interface {
	RecordSale(req *model.Transaction, userID, userName string) (*model.Transaction, error)
	GetAllTransactions() ([]model.Transaction, error)
	GetTransactionByID(id uuid.UUID) (*model.Transaction, error)
	GetTransactionsByDate(date string) ([]model.Transaction, error)
	GetTransactionsByDateRange(start, end string) ([]model.Transaction, error)
	DeleteAllTransactions(userID string) error
	DeleteByItemAndDate(itemID uuid.UUID, date string, userID string) (int, error)
}

type salesService struct {
	menuRepo    repository.MenuRepository
	txRepo      repository.TransactionRepository
	summaryRepo repository.SummaryRepository
	db          repository.TxManager
	wsHub       *ws.Hub
	cache       cache.SummaryCache
}

func NewSalesService(mRepo repository.MenuRepository, tRepo repository.TransactionRepository, sRepo repository.SummaryRepository, db repository.TxManager, hub *ws.Hub, sc cache.SummaryCache) SalesService {
	return &salesService{
		menuRepo:    mRepo,
		txRepo:      tRepo,
		summaryRepo: sRepo,
		db:          db,
		wsHub:       hub,
		cache:       sc,
	}
}

// resolveSplit determines the gpay/cash portions from the payment method:
// the full amount lands on one side unless an explicit split is given.
func resolveSplit(t *model.Transaction) (gpay, cash decimal.Decimal, err error) {
	switch t.PaymentMethod {
	case model.PaymentGpay:
		return t.TotalAmount, decimal.Zero, nil
	case model.PaymentCash:
		return decimal.Zero, t.TotalAmount, nil
	case model.PaymentSplit:
		if t.SplitPayment == nil {
			return decimal.Zero, decimal.Zero, nil
		}
		return t.SplitPayment.GpayAmount.Round(2), t.SplitPayment.CashAmount.Round(2), nil
	default:
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: unknown payment method %q", repository.ErrInvalidInput, t.PaymentMethod)
	}
}

// RecordSale records one sale: stock adjustment, ledger append, and the
// three rollup updates run in a single database transaction. Every line
// item is validated under row locks before any stock is decremented, so
// a failing line never leaves a partial mutation and summaries never
// reflect a failed sale.
func (s *salesService) RecordSale(req *model.Transaction, userID, userName string) (*model.Transaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", repository.ErrInvalidInput, firstErr.FailedField, firstErr.Tag)
	}
	if _, err := period.ParseDate(req.Date); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrInvalidInput, err)
	}

	gpay, cash, err := resolveSplit(req)
	if err != nil {
		return nil, err
	}
	req.TotalAmount = req.TotalAmount.Round(2)
	req.GpayAmount = gpay
	req.CashAmount = cash
	if req.BillerName == "" {
		req.BillerName = userName
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Phase 1: lock and validate every line, in list order. Lines
		// referencing the same item are validated against their summed
		// quantity.
		type lockedItem struct {
			item *model.MenuItem
			qty  int
		}
		locked := map[uuid.UUID]*lockedItem{}
		order := []uuid.UUID{}

		for _, line := range req.Items {
			entry, ok := locked[line.MenuItemID]
			if !ok {
				item, err := s.menuRepo.FindForUpdate(tx, line.MenuItemID)
				if err != nil {
					if errors.Is(err, repository.ErrNotFound) {
						return fmt.Errorf("menu item %s: %w", line.MenuItemID, repository.ErrNotFound)
					}
					return err
				}
				entry = &lockedItem{item: item}
				locked[line.MenuItemID] = entry
				order = append(order, line.MenuItemID)
			}
			entry.qty += line.Quantity
			if entry.qty > entry.item.StockQuantity {
				return &repository.InsufficientStockError{
					ItemName:  entry.item.Name,
					Available: entry.item.StockQuantity,
					Requested: entry.qty,
				}
			}
		}

		// Phase 2: apply all decrements.
		for _, id := range order {
			entry := locked[id]
			if err := s.menuRepo.UpdateStock(tx, id, entry.item.StockQuantity-entry.qty, userID); err != nil {
				return err
			}
		}

		// Phase 3: append to the ledger.
		req.CreatedBy = userID
		req.UpdatedBy = userID
		for i := range req.Items {
			req.Items[i].Position = i
			req.Items[i].CreatedBy = userID
			req.Items[i].UpdatedBy = userID
		}
		if err := s.txRepo.Create(tx, req); err != nil {
			return err
		}

		// Phase 4: roll up into daily/weekly/monthly summaries.
		return applySummaries(tx, s.summaryRepo, req.Date, req.TotalAmount, gpay, cash, 1, userID)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(context.Background())
	if s.wsHub != nil {
		go s.wsHub.BroadcastEvent("sale_recorded", map[string]interface{}{
			"transaction_id": req.ID,
			"date":           req.Date,
			"total_amount":   req.TotalAmount.StringFixed(2),
			"biller_name":    req.BillerName,
		})
	}

	return req, nil
}

func (s *salesService) GetAllTransactions() ([]model.Transaction, error) {
	return s.txRepo.FindAll()
}

func (s *salesService) GetTransactionByID(id uuid.UUID) (*model.Transaction, error) {
	return s.txRepo.FindByID(id)
}

func (s *salesService) GetTransactionsByDate(date string) ([]model.Transaction, error) {
	if _, err := period.ParseDate(date); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrInvalidInput, err)
	}
	return s.txRepo.FindByDate(date)
}

func (s *salesService) GetTransactionsByDateRange(start, end string) ([]model.Transaction, error) {
	if _, err := period.ParseDate(start); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrInvalidInput, err)
	}
	if _, err := period.ParseDate(end); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrInvalidInput, err)
	}
	return s.txRepo.FindByDateRange(start, end)
}

// DeleteAllTransactions wipes the ledger and all three rollup
// collections; the summaries are derived data and would otherwise be
// orphaned.
func (s *salesService) DeleteAllTransactions(userID string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.txRepo.DeleteAll(tx); err != nil {
			return err
		}
		return s.summaryRepo.DeleteAll(tx)
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(context.Background())
	if s.wsHub != nil {
		go s.wsHub.BroadcastEvent("ledger_cleared", map[string]interface{}{"by": userID})
	}
	return nil
}

// DeleteByItemAndDate undoes every transaction on the date that sold the
// given item, subtracting each removed transaction from the rollups.
// Returns the number of transactions removed.
func (s *salesService) DeleteByItemAndDate(itemID uuid.UUID, date string, userID string) (int, error) {
	if _, err := period.ParseDate(date); err != nil {
		return 0, fmt.Errorf("%w: %v", repository.ErrInvalidInput, err)
	}

	removed := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		transactions, err := s.txRepo.FindByItemAndDate(tx, itemID, date)
		if err != nil {
			return err
		}
		if len(transactions) == 0 {
			return nil
		}

		ids := make([]uuid.UUID, len(transactions))
		for i, t := range transactions {
			ids[i] = t.ID
		}
		if err := s.txRepo.DeleteByIDs(tx, ids); err != nil {
			return err
		}

		for _, t := range transactions {
			err := applySummaries(tx, s.summaryRepo, t.Date,
				t.TotalAmount.Neg(), t.GpayAmount.Neg(), t.CashAmount.Neg(), -1, userID)
			if err != nil {
				return err
			}
		}

		removed = len(transactions)
		return nil
	})
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		s.cache.Invalidate(context.Background())
		if s.wsHub != nil {
			go s.wsHub.BroadcastEvent("transactions_deleted", map[string]interface{}{
				"item_id": itemID,
				"date":    date,
				"count":   removed,
			})
		}
	}
	return removed, nil
}

// applySummaries adds (or with negative amounts, subtracts) one
// transaction's totals into the three period rollups. Amounts are
// rounded to two decimals after each add. A missing row is seeded on the
// additive path; on the subtractive path there is nothing to subtract
// from, so the level is skipped. Counts and amounts are not clamped and
// can go negative under repeated retraction.
func applySummaries(tx *gorm.DB, repo repository.SummaryRepository, date string, total, gpay, cash decimal.Decimal, orders int, by string) error {
	weekStart, weekEnd, err := period.WeekRange(date)
	if err != nil {
		return err
	}
	month, err := period.MonthKey(date)
	if err != nil {
		return err
	}

	daily, err := repo.FindDailyForUpdate(tx, date)
	if err != nil {
		return err
	}
	if daily == nil && orders >= 0 {
		daily = &model.DailySummary{Date: date}
		daily.CreatedBy = by
	}
	if daily != nil {
		daily.TotalAmount = daily.TotalAmount.Add(total).Round(2)
		daily.GpayAmount = daily.GpayAmount.Add(gpay).Round(2)
		daily.CashAmount = daily.CashAmount.Add(cash).Round(2)
		daily.OrderCount += orders
		daily.UpdatedBy = by
		if err := repo.SaveDaily(tx, daily); err != nil {
			return err
		}
	}

	weekly, err := repo.FindWeeklyForUpdate(tx, weekStart)
	if err != nil {
		return err
	}
	if weekly == nil && orders >= 0 {
		weekly = &model.WeeklySummary{WeekStart: weekStart, WeekEnd: weekEnd}
		weekly.CreatedBy = by
	}
	if weekly != nil {
		weekly.TotalAmount = weekly.TotalAmount.Add(total).Round(2)
		weekly.GpayAmount = weekly.GpayAmount.Add(gpay).Round(2)
		weekly.CashAmount = weekly.CashAmount.Add(cash).Round(2)
		weekly.OrderCount += orders
		weekly.UpdatedBy = by
		if err := repo.SaveWeekly(tx, weekly); err != nil {
			return err
		}
	}

	monthly, err := repo.FindMonthlyForUpdate(tx, month)
	if err != nil {
		return err
	}
	if monthly == nil && orders >= 0 {
		monthly = &model.MonthlySummary{Month: month}
		monthly.CreatedBy = by
	}
	if monthly != nil {
		monthly.TotalAmount = monthly.TotalAmount.Add(total).Round(2)
		monthly.GpayAmount = monthly.GpayAmount.Add(gpay).Round(2)
		monthly.CashAmount = monthly.CashAmount.Add(cash).Round(2)
		monthly.OrderCount += orders
		monthly.UpdatedBy = by
		if err := repo.SaveMonthly(tx, monthly); err != nil {
			return err
		}
	}

	return nil
}
