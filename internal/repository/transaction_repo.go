package repository

import (
	"database/sql"
	"errors"

	"go-counter-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TxManager runs a function inside a database transaction. *gorm.DB
// satisfies it; tests substitute a fake runner.
type TxManager interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

type TransactionRepository interface {
	Create(tx *gorm.DB, t *model.Transaction) error
	FindAll() ([]model.Transaction, error)
	FindByID(id uuid.UUID) (*model.Transaction, error)
	FindByDate(date string) ([]model.Transaction, error)
	FindByDateRange(start, end string) ([]model.Transaction, error)
	FindByItemAndDate(tx *gorm.DB, itemID uuid.UUID, date string) ([]model.Transaction, error)
	DeleteByIDs(tx *gorm.DB, ids []uuid.UUID) error
	DeleteByDate(tx *gorm.DB, date string) error
	DeleteByDateRange(tx *gorm.DB, start, end string) error
	DeleteAll(tx *gorm.DB) error
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *transactionRepo) Create(tx *gorm.DB, t *model.Transaction) error {
	return tx.Create(t).Error
}

func (r *transactionRepo) FindAll() ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Preload("Items", orderedItems).Order("created_at DESC").Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var t model.Transaction
	if err := r.db.Preload("Items", orderedItems).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *transactionRepo) FindByDate(date string) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Preload("Items", orderedItems).
		Where("date = ?", date).
		Order("created_at DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByDateRange(start, end string) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Preload("Items", orderedItems).
		Where("date BETWEEN ? AND ?", start, end).
		Order("created_at DESC").
		Find(&transactions).Error
	return transactions, err
}

// FindByItemAndDate returns the date's transactions that contain the
// given menu item on at least one line.
func (r *transactionRepo) FindByItemAndDate(tx *gorm.DB, itemID uuid.UUID, date string) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := tx.Preload("Items", orderedItems).
		Where("date = ?", date).
		Where("id IN (?)", tx.Model(&model.TransactionItem{}).
			Select("transaction_id").
			Where("menu_item_id = ?", itemID)).
		Order("created_at DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) DeleteByIDs(tx *gorm.DB, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("transaction_id IN ?", ids).Delete(&model.TransactionItem{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&model.Transaction{}).Error
}

func (r *transactionRepo) DeleteByDate(tx *gorm.DB, date string) error {
	ids, err := r.idsWhere(tx, "date = ?", date)
	if err != nil {
		return err
	}
	return r.DeleteByIDs(tx, ids)
}

func (r *transactionRepo) DeleteByDateRange(tx *gorm.DB, start, end string) error {
	ids, err := r.idsWhere(tx, "date BETWEEN ? AND ?", start, end)
	if err != nil {
		return err
	}
	return r.DeleteByIDs(tx, ids)
}

func (r *transactionRepo) DeleteAll(tx *gorm.DB) error {
	if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.TransactionItem{}).Error; err != nil {
		return err
	}
	return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Transaction{}).Error
}

func (r *transactionRepo) idsWhere(tx *gorm.DB, query string, args ...interface{}) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := tx.Model(&model.Transaction{}).Where(query, args...).Pluck("id", &ids).Error
	return ids, err
}
