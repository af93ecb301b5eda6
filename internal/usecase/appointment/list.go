package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/nail-studio/internal/domain/appointment"
	"github.com/BruksfildServices01/nail-studio/internal/dto"
	"github.com/BruksfildServices01/nail-studio/internal/forms"
	"github.com/BruksfildServices01/nail-studio/internal/httperr"
	"github.com/BruksfildServices01/nail-studio/internal/models"
	"github.com/BruksfildServices01/nail-studio/internal/timezone"
)

// ListByDate devolve a agenda do dia em ordem de horário. staffID vazio
// lista todas as profissionais.
func (uc *Coordinator) ListByDate(ctx context.Context, date, staffID string) ([]dto.AppointmentListDTO, error) {
	day, err := time.Parse(timezone.DateLayout, date)
	if err != nil {
		return nil, forms.Invalid("date", "datetime")
	}

	appointments, err := uc.store.ListAppointmentsBetween(
		ctx,
		day.Format(timezone.DateLayout),
		day.AddDate(0, 0, 1).Format(timezone.DateLayout),
	)
	if err != nil {
		return nil, err
	}

	return toList(chronological(appointments), staffID), nil
}

// ListByMonth devolve os agendamentos do mês de calendário.
func (uc *Coordinator) ListByMonth(ctx context.Context, year, month int, staffID string) ([]dto.AppointmentListDTO, error) {
	if month < 1 || month > 12 {
		return nil, forms.Invalid("month", "range")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	appointments, err := uc.store.ListAppointmentsBetween(
		ctx,
		start.Format(timezone.DateLayout),
		end.Format(timezone.DateLayout),
	)
	if err != nil {
		return nil, err
	}

	return toList(chronological(appointments), staffID), nil
}

// GetAvailability lista os horários livres da profissional no dia.
func (uc *Coordinator) GetAvailability(ctx context.Context, in domain.AvailabilityInput) ([]domain.TimeSlot, error) {
	if _, err := time.Parse(timezone.DateLayout, in.Date); err != nil {
		return nil, forms.Invalid("date", "datetime")
	}
	if in.StaffID == "" {
		return nil, forms.Invalid("staff_id", "required")
	}

	if _, err := uc.store.GetStaff(ctx, in.StaffID); err != nil {
		return nil, notFoundAs(err, httperr.CodeStaffNotFound)
	}

	day, _ := time.Parse(timezone.DateLayout, in.Date)
	existing, err := uc.store.ListAppointmentsBetween(
		ctx,
		in.Date,
		day.AddDate(0, 0, 1).Format(timezone.DateLayout),
	)
	if err != nil {
		return nil, err
	}

	return domain.FreeSlots(uc.hours, in.Date, in.StaffID, existing)
}

// Os stores entregam a agenda da mais recente para a mais antiga.
func chronological(list []models.Appointment) []models.Appointment {
	out := make([]models.Appointment, len(list))
	for i, ap := range list {
		out[len(list)-1-i] = ap
	}
	return out
}

func toList(list []models.Appointment, staffID string) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(list))
	for _, ap := range list {
		if staffID != "" && ap.StaffID != staffID {
			continue
		}
		out = append(out, dto.NewAppointmentListDTO(ap))
	}
	return out
}
