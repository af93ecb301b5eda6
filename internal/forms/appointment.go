package forms

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/nail-studio/internal/models"
)

type AppointmentForm struct {
	ClientID   string                    `json:"client_id" validate:"required"`
	StaffID    string                    `json:"staff_id" validate:"required"`
	ServiceIDs []string                  `json:"service_ids" validate:"required,min=1,dive,required"`
	Date       string                    `json:"date" validate:"required,datetime=2006-01-02"`
	Time       string                    `json:"time" validate:"required,halfhour"`
	Status     *models.AppointmentStatus `json:"status" validate:"omitempty,oneof=scheduled confirmed"`
	TotalValue *decimal.Decimal          `json:"total_value" validate:"omitempty,gte=0"`
	Notes      string                    `json:"notes" validate:"max=500"`
}

// AppointmentChanges carrega apenas os campos alterados; nil mantém o valor.
type AppointmentChanges struct {
	ClientID   *string                   `json:"client_id" validate:"omitempty,min=1"`
	StaffID    *string                   `json:"staff_id" validate:"omitempty,min=1"`
	ServiceIDs []string                  `json:"service_ids" validate:"omitempty,min=1,dive,required"`
	Date       *string                   `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time       *string                   `json:"time" validate:"omitempty,halfhour"`
	Status     *models.AppointmentStatus `json:"status" validate:"omitempty,oneof=scheduled confirmed completed cancelled no-show"`
	TotalValue *decimal.Decimal          `json:"total_value" validate:"omitempty,gte=0"`
	Notes      *string                   `json:"notes" validate:"omitempty,max=500"`
}

// OnlyNotes indica uma edição que não mexe em status, horário nem valores.
func (c AppointmentChanges) OnlyNotes() bool {
	return c.ClientID == nil &&
		c.StaffID == nil &&
		len(c.ServiceIDs) == 0 &&
		c.Date == nil &&
		c.Time == nil &&
		c.Status == nil &&
		c.TotalValue == nil
}

type PaymentForm struct {
	Value  decimal.Decimal      `json:"value" validate:"gte=0"`
	Method models.PaymentMethod `json:"method" validate:"required,oneof=pix cash card"`
}
