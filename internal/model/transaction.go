package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods accepted at the register
const (
	PaymentCash    = "cash"
	PaymentCard    = "card"
	PaymentQris    = "qris"
	PaymentEwallet = "ewallet"
)

// Transaction is a finalized sale. Immutable once created.
type Transaction struct {
	BaseModel
	ShiftID uuid.UUID `gorm:"type:uuid;not null;index" json:"shift_id" validate:"uuid_required"`
	Shift   *Shift    `gorm:"foreignKey:ShiftID" json:"shift,omitempty"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	Subtotal decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Tax      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"tax"`
	Total    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`

	PaymentMethod string `gorm:"type:varchar(20);not null" json:"payment_method" validate:"required,oneof=cash card qris ewallet"`

	Items []TransactionItem `gorm:"foreignKey:TransactionID" json:"items,omitempty"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// TransactionItem is one line of a sale, carrying a name/price snapshot
// so catalog edits and deletions never rewrite history.
type TransactionItem struct {
	BaseModel
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index" json:"transaction_id"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null" json:"product_id" validate:"uuid_required"`

	ProductName string          `gorm:"type:varchar(255);not null" json:"product_name" validate:"required"`
	Quantity    int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Total       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
}

func (TransactionItem) TableName() string {
	return "transaction_items"
}
