package service

import (
	"database/sql"
	"sort"
	"time"

	"go-counter-pos/internal/model"
	"go-counter-pos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// fakeTxManager runs the callback without a real database transaction.
type fakeTxManager struct{}

func (fakeTxManager) Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	return fc(nil)
}

type fakeMenuRepo struct {
	items map[uuid.UUID]*model.MenuItem
}

func newFakeMenuRepo() *fakeMenuRepo {
	return &fakeMenuRepo{items: map[uuid.UUID]*model.MenuItem{}}
}

func (r *fakeMenuRepo) addItem(name string, price string, stock int) *model.MenuItem {
	item := &model.MenuItem{
		Name:          name,
		Available:     stock > 0,
		StockQuantity: stock,
	}
	item.Price = mustDecimal(price)
	item.ID = uuid.New()
	r.items[item.ID] = item
	return item
}

func (r *fakeMenuRepo) Create(item *model.MenuItem) error {
	item.ID = uuid.New()
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeMenuRepo) FindAll() ([]model.MenuItem, error) {
	items := make([]model.MenuItem, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (r *fakeMenuRepo) FindByID(id uuid.UUID) (*model.MenuItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakeMenuRepo) FindForUpdate(tx *gorm.DB, id uuid.UUID) (*model.MenuItem, error) {
	return r.FindByID(id)
}

func (r *fakeMenuRepo) Save(tx *gorm.DB, item *model.MenuItem) error {
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeMenuRepo) UpdateStock(tx *gorm.DB, id uuid.UUID, newStock int, updatedBy string) error {
	item, ok := r.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	item.StockQuantity = newStock
	item.Available = newStock > 0
	item.UpdatedBy = updatedBy
	return nil
}

func (r *fakeMenuRepo) ResetAllStock(updatedBy string) ([]model.MenuItem, error) {
	for _, item := range r.items {
		item.StockQuantity = 0
		item.Available = true
		item.UpdatedBy = updatedBy
	}
	return r.FindAll()
}

func (r *fakeMenuRepo) Count() (int64, error) {
	return int64(len(r.items)), nil
}

func (r *fakeMenuRepo) CountSoldOut() (int64, error) {
	var count int64
	for _, item := range r.items {
		if item.StockQuantity <= 0 {
			count++
		}
	}
	return count, nil
}

type fakeTransactionRepo struct {
	transactions []model.Transaction
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{}
}

func (r *fakeTransactionRepo) Create(tx *gorm.DB, t *model.Transaction) error {
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	for i := range t.Items {
		t.Items[i].ID = uuid.New()
		t.Items[i].TransactionID = t.ID
	}
	r.transactions = append(r.transactions, *t)
	return nil
}

func (r *fakeTransactionRepo) FindAll() ([]model.Transaction, error) {
	out := append([]model.Transaction(nil), r.transactions...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeTransactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	for i := range r.transactions {
		if r.transactions[i].ID == id {
			copied := r.transactions[i]
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeTransactionRepo) FindByDate(date string) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, t := range r.transactions {
		if t.Date == date {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) FindByDateRange(start, end string) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, t := range r.transactions {
		if t.Date >= start && t.Date <= end {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) FindByItemAndDate(tx *gorm.DB, itemID uuid.UUID, date string) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, t := range r.transactions {
		if t.Date != date {
			continue
		}
		for _, line := range t.Items {
			if line.MenuItemID == itemID {
				out = append(out, t)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) DeleteByIDs(tx *gorm.DB, ids []uuid.UUID) error {
	keep := r.transactions[:0]
	for _, t := range r.transactions {
		remove := false
		for _, id := range ids {
			if t.ID == id {
				remove = true
				break
			}
		}
		if !remove {
			keep = append(keep, t)
		}
	}
	r.transactions = keep
	return nil
}

func (r *fakeTransactionRepo) DeleteByDate(tx *gorm.DB, date string) error {
	keep := r.transactions[:0]
	for _, t := range r.transactions {
		if t.Date != date {
			keep = append(keep, t)
		}
	}
	r.transactions = keep
	return nil
}

func (r *fakeTransactionRepo) DeleteByDateRange(tx *gorm.DB, start, end string) error {
	keep := r.transactions[:0]
	for _, t := range r.transactions {
		if t.Date < start || t.Date > end {
			keep = append(keep, t)
		}
	}
	r.transactions = keep
	return nil
}

func (r *fakeTransactionRepo) DeleteAll(tx *gorm.DB) error {
	r.transactions = nil
	return nil
}

type fakeSummaryRepo struct {
	daily   map[string]*model.DailySummary
	weekly  map[string]*model.WeeklySummary
	monthly map[string]*model.MonthlySummary
}

func newFakeSummaryRepo() *fakeSummaryRepo {
	return &fakeSummaryRepo{
		daily:   map[string]*model.DailySummary{},
		weekly:  map[string]*model.WeeklySummary{},
		monthly: map[string]*model.MonthlySummary{},
	}
}

func (r *fakeSummaryRepo) FindDailyForUpdate(tx *gorm.DB, date string) (*model.DailySummary, error) {
	s, ok := r.daily[date]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSummaryRepo) FindWeeklyForUpdate(tx *gorm.DB, weekStart string) (*model.WeeklySummary, error) {
	s, ok := r.weekly[weekStart]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSummaryRepo) FindMonthlyForUpdate(tx *gorm.DB, month string) (*model.MonthlySummary, error) {
	s, ok := r.monthly[month]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSummaryRepo) FindDaily(date string) (*model.DailySummary, error) {
	return r.FindDailyForUpdate(nil, date)
}

func (r *fakeSummaryRepo) SaveDaily(tx *gorm.DB, s *model.DailySummary) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	copied := *s
	r.daily[s.Date] = &copied
	return nil
}

func (r *fakeSummaryRepo) SaveWeekly(tx *gorm.DB, s *model.WeeklySummary) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	copied := *s
	r.weekly[s.WeekStart] = &copied
	return nil
}

func (r *fakeSummaryRepo) SaveMonthly(tx *gorm.DB, s *model.MonthlySummary) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	copied := *s
	r.monthly[s.Month] = &copied
	return nil
}

func (r *fakeSummaryRepo) ListDaily(limit int) ([]model.DailySummary, error) {
	var out []model.DailySummary
	for _, s := range r.daily {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeSummaryRepo) ListWeekly(limit int) ([]model.WeeklySummary, error) {
	var out []model.WeeklySummary
	for _, s := range r.weekly {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekStart > out[j].WeekStart })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeSummaryRepo) ListMonthly(limit int) ([]model.MonthlySummary, error) {
	var out []model.MonthlySummary
	for _, s := range r.monthly {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeSummaryRepo) DeleteDaily(tx *gorm.DB, date string) error {
	delete(r.daily, date)
	return nil
}

func (r *fakeSummaryRepo) DeleteDailyRange(tx *gorm.DB, start, end string) error {
	for date := range r.daily {
		if date >= start && date <= end {
			delete(r.daily, date)
		}
	}
	return nil
}

func (r *fakeSummaryRepo) DeleteWeekly(tx *gorm.DB, weekStart string) error {
	delete(r.weekly, weekStart)
	return nil
}

func (r *fakeSummaryRepo) DeleteWeeklyRange(tx *gorm.DB, start, end string) error {
	for weekStart := range r.weekly {
		if weekStart >= start && weekStart <= end {
			delete(r.weekly, weekStart)
		}
	}
	return nil
}

func (r *fakeSummaryRepo) DeleteMonthly(tx *gorm.DB, month string) error {
	delete(r.monthly, month)
	return nil
}

func (r *fakeSummaryRepo) DeleteAll(tx *gorm.DB) error {
	r.daily = map[string]*model.DailySummary{}
	r.weekly = map[string]*model.WeeklySummary{}
	r.monthly = map[string]*model.MonthlySummary{}
	return nil
}
