package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ShiftStatus string

const (
	ShiftOpen   ShiftStatus = "open"
	ShiftClosed ShiftStatus = "closed"
)

// Shift is a cashier work session. At most one shift per user may be in
// the open state; sale commits accumulate onto TotalSales and
// TransactionCount until the shift is closed. Closed is terminal.
type Shift struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id" validate:"uuid_required"`
	User   *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`

	StartTime time.Time  `gorm:"not null" json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	StartCash decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"start_cash"`
	EndCash   *decimal.Decimal `gorm:"type:decimal(10,2)" json:"end_cash,omitempty"`

	// Aggregates written only by the sale-commit workflow.
	TotalSales       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total_sales"`
	TransactionCount int             `gorm:"not null;default:0" json:"transaction_count"`

	Status ShiftStatus `gorm:"type:varchar(10);not null;default:'open'" json:"status"`
}

func (Shift) TableName() string {
	return "shifts"
}

// IsOpen reports whether the shift can still accept transactions
func (s *Shift) IsOpen() bool {
	return s.Status == ShiftOpen
}
