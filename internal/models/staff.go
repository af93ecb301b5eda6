package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Staff struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Name  string `gorm:"size:100;not null;index" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Role  string `gorm:"size:50" json:"role"`

	// Commission em percentual (0-100).
	Commission decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"commission"`
	Active     bool            `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Staff) TableName() string {
	return "staff"
}
