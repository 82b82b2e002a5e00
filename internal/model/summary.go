package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Denormalized revenue rollups, maintained incrementally alongside the
// transaction ledger. Derived data: rebuildable from the ledger.

type DailySummary struct {
	BaseModel
	Date        string          `gorm:"type:varchar(10);uniqueIndex;not null" json:"date"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"total_amount"`
	GpayAmount  decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"gpay_amount"`
	CashAmount  decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"cash_amount"`
	OrderCount  int             `gorm:"default:0" json:"order_count"`
}

type WeeklySummary struct {
	BaseModel
	WeekStart   string          `gorm:"type:varchar(10);uniqueIndex;not null" json:"week_start"` // Monday
	WeekEnd     string          `gorm:"type:varchar(10);not null" json:"week_end"`               // Sunday
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"total_amount"`
	GpayAmount  decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"gpay_amount"`
	CashAmount  decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"cash_amount"`
	OrderCount  int             `gorm:"default:0" json:"order_count"`
}

type MonthlySummary struct {
	BaseModel
	Month       string          `gorm:"type:varchar(7);uniqueIndex;not null" json:"month"` // "YYYY-MM"
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"total_amount"`
	GpayAmount  decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"gpay_amount"`
	CashAmount  decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"cash_amount"`
	OrderCount  int             `gorm:"default:0" json:"order_count"`
}

// SummaryResponse is the shared API shape; PeriodEnd is set for weekly rows only.
type SummaryResponse struct {
	ID          uuid.UUID `json:"id"`
	Period      string    `json:"period"`
	PeriodEnd   string    `json:"period_end,omitempty"`
	TotalAmount string    `json:"total_amount"`
	GpayAmount  string    `json:"gpay_amount"`
	CashAmount  string    `json:"cash_amount"`
	OrderCount  int       `json:"order_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func (s *DailySummary) ToResponse() SummaryResponse {
	return SummaryResponse{
		ID:          s.ID,
		Period:      s.Date,
		TotalAmount: s.TotalAmount.StringFixed(2),
		GpayAmount:  s.GpayAmount.StringFixed(2),
		CashAmount:  s.CashAmount.StringFixed(2),
		OrderCount:  s.OrderCount,
		CreatedAt:   s.CreatedAt,
	}
}

func (s *WeeklySummary) ToResponse() SummaryResponse {
	return SummaryResponse{
		ID:          s.ID,
		Period:      s.WeekStart,
		PeriodEnd:   s.WeekEnd,
		TotalAmount: s.TotalAmount.StringFixed(2),
		GpayAmount:  s.GpayAmount.StringFixed(2),
		CashAmount:  s.CashAmount.StringFixed(2),
		OrderCount:  s.OrderCount,
		CreatedAt:   s.CreatedAt,
	}
}

func (s *MonthlySummary) ToResponse() SummaryResponse {
	return SummaryResponse{
		ID:          s.ID,
		Period:      s.Month,
		TotalAmount: s.TotalAmount.StringFixed(2),
		GpayAmount:  s.GpayAmount.StringFixed(2),
		CashAmount:  s.CashAmount.StringFixed(2),
		OrderCount:  s.OrderCount,
		CreatedAt:   s.CreatedAt,
	}
}
