package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no-show"
)

type Appointment struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	ClientID   string `gorm:"size:36;not null;index" json:"client_id"`
	ClientName string `gorm:"size:120" json:"client_name"`

	StaffID   string `gorm:"size:36;not null;index" json:"staff_id"`
	StaffName string `gorm:"size:100" json:"staff_name"`

	Services []ServiceSnapshot `gorm:"serializer:json;type:jsonb" json:"services"`

	Date        string `gorm:"size:10;not null;index" json:"date"`
	Time        string `gorm:"size:5;not null" json:"time"`
	DurationMin int    `json:"duration_min"`

	Status     AppointmentStatus `gorm:"size:20;not null;default:'scheduled'" json:"status"`
	TotalValue decimal.Decimal   `gorm:"type:numeric(12,2);not null;default:0" json:"total_value"`
	Paid       bool              `gorm:"not null;default:false" json:"paid"`
	Notes      string            `gorm:"size:500" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Counted informa se o agendamento entra no contador de visitas do cliente.
func (a Appointment) Counted() bool {
	return a.Status != StatusCancelled
}
