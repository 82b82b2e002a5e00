package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultStockQuantity = 100

type MenuItem struct {
	BaseModel
	Name        string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"price"`
	Category    string          `gorm:"type:varchar(100)" json:"category"`
	Image       string          `gorm:"type:text" json:"image"`
	Available   bool            `gorm:"default:true" json:"available"`
	// Invariant available == (stock_quantity > 0) is maintained by the
	// sales path; manual edits can leave them out of sync.
	StockQuantity int `gorm:"not null;default:100" json:"stock_quantity" validate:"gte=0"`
}

// MenuItemUpdateRequest carries a partial update; nil fields are left untouched.
type MenuItemUpdateRequest struct {
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	Category      *string          `json:"category,omitempty"`
	Image         *string          `json:"image,omitempty"`
	Available     *bool            `json:"available,omitempty"`
	StockQuantity *int             `json:"stock_quantity,omitempty"`
}

// MenuItemResponse for API responses, price rendered to two decimals
type MenuItemResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         string    `json:"price"`
	Category      string    `json:"category"`
	Image         string    `json:"image"`
	Available     bool      `json:"available"`
	StockQuantity int       `json:"stock_quantity"`
}

func (m *MenuItem) ToResponse() MenuItemResponse {
	return MenuItemResponse{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Price:         m.Price.StringFixed(2),
		Category:      m.Category,
		Image:         m.Image,
		Available:     m.Available,
		StockQuantity: m.StockQuantity,
	}
}

// ResetScope for the reset-stock endpoint
type ResetScope string

const (
	ResetScopeToday ResetScope = "today"
	ResetScopeAll   ResetScope = "all"
)

func (s ResetScope) Valid() bool {
	return s == ResetScopeToday || s == ResetScopeAll
}
