package repository

import (
	"errors"

	"go-counter-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MenuRepository interface {
	Create(item *model.MenuItem) error
	FindAll() ([]model.MenuItem, error)
	FindByID(id uuid.UUID) (*model.MenuItem, error)
	FindForUpdate(tx *gorm.DB, id uuid.UUID) (*model.MenuItem, error)
	Save(tx *gorm.DB, item *model.MenuItem) error
	UpdateStock(tx *gorm.DB, id uuid.UUID, newStock int, updatedBy string) error
	ResetAllStock(updatedBy string) ([]model.MenuItem, error)
	Count() (int64, error)
	CountSoldOut() (int64, error)
}

type menuRepo struct {
	db *gorm.DB
}

func NewMenuRepo(db *gorm.DB) MenuRepository {
	return &menuRepo{db}
}

func (r *menuRepo) Create(item *model.MenuItem) error {
	return r.db.Create(item).Error
}

func (r *menuRepo) FindAll() ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := r.db.Order("name ASC").Find(&items).Error
	return items, err
}

func (r *menuRepo) FindByID(id uuid.UUID) (*model.MenuItem, error) {
	var item model.MenuItem
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindForUpdate locks the row for the duration of the surrounding
// transaction (Pessimistic Locking).
func (r *menuRepo) FindForUpdate(tx *gorm.DB, id uuid.UUID) (*model.MenuItem, error) {
	var item model.MenuItem
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Save writes the full row on the caller's tx, keeping the edit inside
// the same transaction as its row lock.
func (r *menuRepo) Save(tx *gorm.DB, item *model.MenuItem) error {
	return tx.Save(item).Error
}

// UpdateStock runs on the caller's tx so the write stays inside the
// sale's transaction. Availability follows the new stock level.
func (r *menuRepo) UpdateStock(tx *gorm.DB, id uuid.UUID, newStock int, updatedBy string) error {
	return tx.Model(&model.MenuItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock_quantity": newStock,
			"available":      newStock > 0,
			"updated_by":     updatedBy,
		}).Error
}

// ResetAllStock zeroes every item's stock and marks all items available,
// then returns the updated catalog.
func (r *menuRepo) ResetAllStock(updatedBy string) ([]model.MenuItem, error) {
	err := r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Model(&model.MenuItem{}).
		Updates(map[string]interface{}{
			"stock_quantity": 0,
			"available":      true,
			"updated_by":     updatedBy,
		}).Error
	if err != nil {
		return nil, err
	}
	return r.FindAll()
}

func (r *menuRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.MenuItem{}).Count(&count).Error
	return count, err
}

func (r *menuRepo) CountSoldOut() (int64, error) {
	var count int64
	err := r.db.Model(&model.MenuItem{}).Where("stock_quantity <= 0").Count(&count).Error
	return count, err
}
