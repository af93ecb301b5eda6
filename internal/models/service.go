package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ServiceCategory string

const (
	CategoryManicure    ServiceCategory = "Manicure"
	CategoryPedicure    ServiceCategory = "Pedicure"
	CategoryAlongamento ServiceCategory = "Alongamento"
	CategoryDecoracao   ServiceCategory = "Decoração"
	CategorySpa         ServiceCategory = "Spa"
	CategoryOutros      ServiceCategory = "Outros"
)

func ServiceCategories() []ServiceCategory {
	return []ServiceCategory{
		CategoryManicure,
		CategoryPedicure,
		CategoryAlongamento,
		CategoryDecoracao,
		CategorySpa,
		CategoryOutros,
	}
}

type Service struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Name        string          `gorm:"size:100;not null;index" json:"name"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	DurationMin int             `gorm:"not null" json:"duration_min"`
	Category    ServiceCategory `gorm:"size:30;not null" json:"category"`
	Active      bool            `gorm:"not null" json:"active"`
	Color       string          `gorm:"size:20" json:"color,omitempty"`

	// CommissionRate sobrescreve a comissão da profissional (0-100).
	CommissionRate *decimal.Decimal `gorm:"type:numeric(5,2)" json:"commission_rate,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot copia o serviço para dentro do agendamento. Alterações futuras
// no catálogo não mudam agendamentos antigos.
func (s Service) Snapshot() ServiceSnapshot {
	return ServiceSnapshot{
		ServiceID:      s.ID,
		Name:           s.Name,
		Price:          s.Price,
		DurationMin:    s.DurationMin,
		Category:       s.Category,
		CommissionRate: s.CommissionRate,
	}
}

type ServiceSnapshot struct {
	ServiceID      string           `json:"service_id"`
	Name           string           `json:"name"`
	Price          decimal.Decimal  `json:"price"`
	DurationMin    int              `json:"duration_min"`
	Category       ServiceCategory  `json:"category"`
	CommissionRate *decimal.Decimal `json:"commission_rate,omitempty"`
}
