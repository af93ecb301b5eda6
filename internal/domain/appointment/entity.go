package appointment

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/nail-studio/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Transition(ap *models.Appointment, to Status) error {
	if err := CanTransition(ap.Status, to); err != nil {
		return err
	}
	ap.Status = to
	return nil
}

// MarkPaid conclui o agendamento com o valor efetivamente recebido.
func MarkPaid(ap *models.Appointment, value decimal.Decimal) error {
	if err := CanPay(ap); err != nil {
		return err
	}
	ap.Status = StatusCompleted
	ap.TotalValue = value.Round(2)
	ap.Paid = true
	return nil
}

// ApplyServices troca o snapshot de serviços e recalcula duração e valor.
func ApplyServices(ap *models.Appointment, services []models.Service) {
	ap.Services = make([]models.ServiceSnapshot, 0, len(services))
	ap.DurationMin = 0
	total := decimal.Zero
	for _, s := range services {
		snap := s.Snapshot()
		ap.Services = append(ap.Services, snap)
		ap.DurationMin += snap.DurationMin
		total = total.Add(snap.Price)
	}
	ap.TotalValue = total.Round(2)
}
