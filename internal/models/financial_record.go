package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type RecordType string

const (
	RecordIncome  RecordType = "income"
	RecordExpense RecordType = "expense"
)

type PaymentMethod string

const (
	PaymentPix  PaymentMethod = "pix"
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// CategoryServices é a categoria usada nos lançamentos gerados por pagamento.
const CategoryServices = "Serviços"

type FinancialRecord struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Type        RecordType      `gorm:"size:10;not null;index" json:"type"`
	Category    string          `gorm:"size:50;not null" json:"category"`
	Description string          `gorm:"size:255" json:"description"`
	Value       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"value"`
	Date        string          `gorm:"size:10;not null;index" json:"date"`

	AppointmentID *string       `gorm:"size:36;index" json:"appointment_id,omitempty"`
	PaymentMethod PaymentMethod `gorm:"size:10" json:"payment_method,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
