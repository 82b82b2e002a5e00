package repository

import (
	"errors"

	"go-counter-pos/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SummaryRepository persists the three revenue rollups. ForUpdate
// finders lock the row inside the caller's transaction and return
// (nil, nil) when the period has no row yet, so callers can decide
// between seed and add.
type SummaryRepository interface {
	FindDailyForUpdate(tx *gorm.DB, date string) (*model.DailySummary, error)
	FindWeeklyForUpdate(tx *gorm.DB, weekStart string) (*model.WeeklySummary, error)
	FindMonthlyForUpdate(tx *gorm.DB, month string) (*model.MonthlySummary, error)
	FindDaily(date string) (*model.DailySummary, error)
	SaveDaily(tx *gorm.DB, s *model.DailySummary) error
	SaveWeekly(tx *gorm.DB, s *model.WeeklySummary) error
	SaveMonthly(tx *gorm.DB, s *model.MonthlySummary) error
	ListDaily(limit int) ([]model.DailySummary, error)
	ListWeekly(limit int) ([]model.WeeklySummary, error)
	ListMonthly(limit int) ([]model.MonthlySummary, error)
	DeleteDaily(tx *gorm.DB, date string) error
	DeleteDailyRange(tx *gorm.DB, start, end string) error
	DeleteWeekly(tx *gorm.DB, weekStart string) error
	DeleteWeeklyRange(tx *gorm.DB, start, end string) error
	DeleteMonthly(tx *gorm.DB, month string) error
	DeleteAll(tx *gorm.DB) error
}

type summaryRepo struct {
	db *gorm.DB
}

func NewSummaryRepo(db *gorm.DB) SummaryRepository {
	return &summaryRepo{db}
}

func (r *summaryRepo) FindDailyForUpdate(tx *gorm.DB, date string) (*model.DailySummary, error) {
	var s model.DailySummary
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&s, "date = ?", date).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *summaryRepo) FindWeeklyForUpdate(tx *gorm.DB, weekStart string) (*model.WeeklySummary, error) {
	var s model.WeeklySummary
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&s, "week_start = ?", weekStart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *summaryRepo) FindMonthlyForUpdate(tx *gorm.DB, month string) (*model.MonthlySummary, error) {
	var s model.MonthlySummary
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&s, "month = ?", month).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// FindDaily is a lock-free read; returns (nil, nil) when the day has no row.
func (r *summaryRepo) FindDaily(date string) (*model.DailySummary, error) {
	var s model.DailySummary
	if err := r.db.First(&s, "date = ?", date).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *summaryRepo) SaveDaily(tx *gorm.DB, s *model.DailySummary) error {
	return tx.Save(s).Error
}

func (r *summaryRepo) SaveWeekly(tx *gorm.DB, s *model.WeeklySummary) error {
	return tx.Save(s).Error
}

func (r *summaryRepo) SaveMonthly(tx *gorm.DB, s *model.MonthlySummary) error {
	return tx.Save(s).Error
}

func withLimit(db *gorm.DB, limit int) *gorm.DB {
	if limit > 0 {
		return db.Limit(limit)
	}
	return db
}

func (r *summaryRepo) ListDaily(limit int) ([]model.DailySummary, error) {
	var summaries []model.DailySummary
	err := withLimit(r.db.Order("date DESC"), limit).Find(&summaries).Error
	return summaries, err
}

func (r *summaryRepo) ListWeekly(limit int) ([]model.WeeklySummary, error) {
	var summaries []model.WeeklySummary
	err := withLimit(r.db.Order("week_start DESC"), limit).Find(&summaries).Error
	return summaries, err
}

func (r *summaryRepo) ListMonthly(limit int) ([]model.MonthlySummary, error) {
	var summaries []model.MonthlySummary
	err := withLimit(r.db.Order("month DESC"), limit).Find(&summaries).Error
	return summaries, err
}

func (r *summaryRepo) DeleteDaily(tx *gorm.DB, date string) error {
	return tx.Where("date = ?", date).Delete(&model.DailySummary{}).Error
}

func (r *summaryRepo) DeleteDailyRange(tx *gorm.DB, start, end string) error {
	return tx.Where("date BETWEEN ? AND ?", start, end).Delete(&model.DailySummary{}).Error
}

func (r *summaryRepo) DeleteWeekly(tx *gorm.DB, weekStart string) error {
	return tx.Where("week_start = ?", weekStart).Delete(&model.WeeklySummary{}).Error
}

func (r *summaryRepo) DeleteWeeklyRange(tx *gorm.DB, start, end string) error {
	return tx.Where("week_start BETWEEN ? AND ?", start, end).Delete(&model.WeeklySummary{}).Error
}

func (r *summaryRepo) DeleteMonthly(tx *gorm.DB, month string) error {
	return tx.Where("month = ?", month).Delete(&model.MonthlySummary{}).Error
}

func (r *summaryRepo) DeleteAll(tx *gorm.DB) error {
	session := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
	if err := session.Delete(&model.DailySummary{}).Error; err != nil {
		return err
	}
	if err := session.Delete(&model.WeeklySummary{}).Error; err != nil {
		return err
	}
	return session.Delete(&model.MonthlySummary{}).Error
}
