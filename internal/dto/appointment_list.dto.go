package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/nail-studio/internal/models"
	"github.com/BruksfildServices01/nail-studio/internal/timezone"
)

type AppointmentListDTO struct {
	ID         string          `json:"id"`
	Date       string          `json:"date"`
	StartTime  string          `json:"start_time"`
	EndTime    string          `json:"end_time"`
	Status     string          `json:"status"`
	ClientName string          `json:"client_name"`
	StaffName  string          `json:"staff_name"`
	Services   []string        `json:"services"`
	TotalValue decimal.Decimal `json:"total_value"`
	Paid       bool            `json:"paid"`
}

func NewAppointmentListDTO(ap models.Appointment) AppointmentListDTO {
	out := AppointmentListDTO{
		ID:         ap.ID,
		Date:       ap.Date,
		StartTime:  ap.Time,
		EndTime:    ap.Time,
		Status:     string(ap.Status),
		ClientName: ap.ClientName,
		StaffName:  ap.StaffName,
		Services:   make([]string, 0, len(ap.Services)),
		TotalValue: ap.TotalValue,
		Paid:       ap.Paid,
	}
	for _, s := range ap.Services {
		out.Services = append(out.Services, s.Name)
	}

	if start, err := time.Parse(timezone.TimeLayout, ap.Time); err == nil {
		out.EndTime = start.Add(time.Duration(ap.DurationMin) * time.Minute).Format(timezone.TimeLayout)
	}
	return out
}
