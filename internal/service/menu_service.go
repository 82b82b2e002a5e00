package service

import (
	"fmt"

	"go-counter-pos/internal/model"
	"go-counter-pos/internal/repository"
	"go-counter-pos/internal/ws"
	"go-counter-pos/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MenuService interface {
	CreateItem(req *model.MenuItem, userID string) error
	UpdateItem(id uuid.UUID, req *model.MenuItemUpdateRequest, userID string) (*model.MenuItem, error)
	GetAllItems() ([]model.MenuItem, error)
	GetItem(id uuid.UUID) (*model.MenuItem, error)
	ResetStock(scope model.ResetScope, userID string) ([]model.MenuItem, error)
}

type menuService struct {
	menuRepo repository.MenuRepository
	db       repository.TxManager
	wsHub    *ws.Hub
}

func NewMenuService(mRepo repository.MenuRepository, db repository.TxManager, hub *ws.Hub) MenuService {
	return &menuService{
		menuRepo: mRepo,
		db:       db,
		wsHub:    hub,
	}
}

func (s *menuService) CreateItem(req *model.MenuItem, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("%w: field '%s' failed on tag '%s'", repository.ErrInvalidInput, firstErr.FailedField, firstErr.Tag)
	}

	// Defaults on create: full stock, available for sale.
	if req.StockQuantity == 0 {
		req.StockQuantity = model.DefaultStockQuantity
	}
	req.Available = true
	req.Price = req.Price.Round(2)
	req.CreatedBy = userID
	req.UpdatedBy = userID

	if err := s.menuRepo.Create(req); err != nil {
		return err
	}

	if s.wsHub != nil {
		go s.wsHub.BroadcastEvent("menu_item_created", map[string]interface{}{
			"id":    req.ID,
			"name":  req.Name,
			"stock": req.StockQuantity,
		})
	}
	return nil
}

// UpdateItem applies a partial update under a row lock. Availability is
// only touched when the request sets it; a manual stock edit can
// therefore leave available out of sync with stock, matching the
// catalog's relaxed invariant.
func (s *menuService) UpdateItem(id uuid.UUID, req *model.MenuItemUpdateRequest, userID string) (*model.MenuItem, error) {
	var updated *model.MenuItem

	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.menuRepo.FindForUpdate(tx, id)
		if err != nil {
			return err
		}

		oldStock := existing.StockQuantity

		if req.Name != nil {
			existing.Name = *req.Name
		}
		if req.Description != nil {
			existing.Description = *req.Description
		}
		if req.Price != nil {
			existing.Price = req.Price.Round(2)
		}
		if req.Category != nil {
			existing.Category = *req.Category
		}
		if req.Image != nil {
			existing.Image = *req.Image
		}
		if req.Available != nil {
			existing.Available = *req.Available
		}
		if req.StockQuantity != nil {
			if *req.StockQuantity < 0 {
				return fmt.Errorf("%w: stock quantity cannot be negative", repository.ErrInvalidInput)
			}
			existing.StockQuantity = *req.StockQuantity
		}
		existing.UpdatedBy = userID

		if err := s.menuRepo.Save(tx, existing); err != nil {
			return err
		}

		updated = existing

		if s.wsHub != nil && req.StockQuantity != nil {
			go s.wsHub.BroadcastEvent("stock_update", map[string]interface{}{
				"id":        existing.ID,
				"name":      existing.Name,
				"old_stock": oldStock,
				"new_stock": existing.StockQuantity,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *menuService) GetAllItems() ([]model.MenuItem, error) {
	return s.menuRepo.FindAll()
}

func (s *menuService) GetItem(id uuid.UUID) (*model.MenuItem, error) {
	return s.menuRepo.FindByID(id)
}

// ResetStock zeroes every item's stock and marks the catalog available.
// Both scopes currently produce identical behavior.
func (s *menuService) ResetStock(scope model.ResetScope, userID string) ([]model.MenuItem, error) {
	if !scope.Valid() {
		return nil, fmt.Errorf("%w: invalid reset scope %q, expected today or all", repository.ErrInvalidInput, scope)
	}

	items, err := s.menuRepo.ResetAllStock(userID)
	if err != nil {
		return nil, err
	}

	if s.wsHub != nil {
		go s.wsHub.BroadcastEvent("stock_reset", map[string]interface{}{
			"scope": scope,
			"count": len(items),
		})
	}
	return items, nil
}
