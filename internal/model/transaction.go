package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentGpay  PaymentMethod = "gpay"
	PaymentSplit PaymentMethod = "split"
)

// SplitPayment is the request payload for payment_method "split".
// Missing values default to zero.
type SplitPayment struct {
	GpayAmount decimal.Decimal `json:"gpay_amount"`
	CashAmount decimal.Decimal `json:"cash_amount"`
}

// Transaction is one recorded sale. Immutable once created except for
// bulk/range deletion.
type Transaction struct {
	BaseModel
	Date          string            `gorm:"type:varchar(10);not null;index" json:"date" validate:"required"` // "YYYY-MM-DD"
	Items         []TransactionItem `gorm:"foreignKey:TransactionID" json:"items" validate:"required,min=1,dive"`
	TotalAmount   decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	PaymentMethod PaymentMethod     `gorm:"type:varchar(10);not null" json:"payment_method" validate:"required,oneof=cash gpay split"`
	GpayAmount    decimal.Decimal   `gorm:"type:decimal(12,2);default:0" json:"gpay_amount"`
	CashAmount    decimal.Decimal   `gorm:"type:decimal(12,2);default:0" json:"cash_amount"`
	BillerName    string            `gorm:"type:varchar(255)" json:"biller_name"`
	Creditor      string            `gorm:"type:varchar(255)" json:"creditor,omitempty"`

	// Request-only: resolved into GpayAmount/CashAmount on record.
	SplitPayment *SplitPayment `gorm:"-" json:"split_payment,omitempty"`
}

// TransactionItem is one line item, referencing a MenuItem by id
// (weak reference, not enforced by foreign key).
type TransactionItem struct {
	BaseModel
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index" json:"transaction_id"`
	MenuItemID    uuid.UUID `gorm:"type:uuid;not null;index" json:"item_id" validate:"uuid_required"`
	Quantity      int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Position      int       `gorm:"not null;default:0" json:"position"` // preserves list order
}

type TransactionItemResponse struct {
	MenuItemID uuid.UUID `json:"item_id"`
	Quantity   int       `json:"quantity"`
}

type TransactionResponse struct {
	ID            uuid.UUID                 `json:"id"`
	Date          string                    `json:"date"`
	Items         []TransactionItemResponse `json:"items"`
	TotalAmount   string                    `json:"total_amount"`
	PaymentMethod PaymentMethod             `json:"payment_method"`
	GpayAmount    string                    `json:"gpay_amount"`
	CashAmount    string                    `json:"cash_amount"`
	BillerName    string                    `json:"biller_name"`
	Creditor      string                    `json:"creditor,omitempty"`
	CreatedAt     time.Time                 `json:"created_at"`
}

func (t *Transaction) ToResponse() TransactionResponse {
	items := make([]TransactionItemResponse, len(t.Items))
	for i, line := range t.Items {
		items[i] = TransactionItemResponse{MenuItemID: line.MenuItemID, Quantity: line.Quantity}
	}
	return TransactionResponse{
		ID:            t.ID,
		Date:          t.Date,
		Items:         items,
		TotalAmount:   t.TotalAmount.StringFixed(2),
		PaymentMethod: t.PaymentMethod,
		GpayAmount:    t.GpayAmount.StringFixed(2),
		CashAmount:    t.CashAmount.StringFixed(2),
		BillerName:    t.BillerName,
		Creditor:      t.Creditor,
		CreatedAt:     t.CreatedAt,
	}
}
