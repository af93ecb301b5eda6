package forms

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/nail-studio/internal/models"
)

type ServiceForm struct {
	Name           string                 `json:"name" validate:"required,max=100"`
	Price          decimal.Decimal        `json:"price" validate:"gte=0"`
	DurationMin    int                    `json:"duration_min" validate:"required,min=5,max=600"`
	Category       models.ServiceCategory `json:"category" validate:"required,oneof=Manicure Pedicure Alongamento Decoração Spa Outros"`
	Active         *bool                  `json:"active"`
	Color          string                 `json:"color" validate:"omitempty,hexcolor"`
	CommissionRate *decimal.Decimal       `json:"commission_rate" validate:"omitempty,gte=0,lte=100"`
}

func (f ServiceForm) Apply(s *models.Service) {
	s.Name = strings.TrimSpace(f.Name)
	s.Price = f.Price.Round(2)
	s.DurationMin = f.DurationMin
	s.Category = f.Category
	s.Color = f.Color
	s.CommissionRate = f.CommissionRate
	s.Active = true
	if f.Active != nil {
		s.Active = *f.Active
	}
}

type StaffForm struct {
	Name       string          `json:"name" validate:"required,max=100"`
	Phone      string          `json:"phone" validate:"omitempty,min=10,max=13,numeric"`
	Role       string          `json:"role" validate:"max=50"`
	Commission decimal.Decimal `json:"commission" validate:"gte=0,lte=100"`
	Active     *bool           `json:"active"`
}

func (f *StaffForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Phone = onlyDigits(f.Phone)
}

func (f StaffForm) Apply(s *models.Staff) {
	s.Name = f.Name
	s.Phone = f.Phone
	s.Role = f.Role
	s.Commission = f.Commission
	s.Active = true
	if f.Active != nil {
		s.Active = *f.Active
	}
}

type FinancialRecordForm struct {
	Type          models.RecordType    `json:"type" validate:"required,oneof=income expense"`
	Category      string               `json:"category" validate:"required,max=50"`
	Description   string               `json:"description" validate:"max=255"`
	Value         decimal.Decimal      `json:"value" validate:"gt=0"`
	Date          string               `json:"date" validate:"required,datetime=2006-01-02"`
	AppointmentID *string              `json:"appointment_id" validate:"omitempty,uuid"`
	PaymentMethod models.PaymentMethod `json:"payment_method" validate:"omitempty,oneof=pix cash card"`
}

func (f FinancialRecordForm) Apply(r *models.FinancialRecord) {
	r.Type = f.Type
	r.Category = strings.TrimSpace(f.Category)
	r.Description = f.Description
	r.Value = f.Value.Round(2)
	r.Date = f.Date
	r.AppointmentID = f.AppointmentID
	r.PaymentMethod = f.PaymentMethod
}
