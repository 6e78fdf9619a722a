package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Name      string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category  string          `gorm:"type:varchar(100);not null" json:"category" validate:"required"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock     int             `gorm:"not null;default:0" json:"stock" validate:"gte=0"`
	Image     *string         `gorm:"type:text" json:"image,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}
