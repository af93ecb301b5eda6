package appointment

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/nail-studio/internal/domain/appointment"
	"github.com/BruksfildServices01/nail-studio/internal/forms"
	"github.com/BruksfildServices01/nail-studio/internal/httperr"
	"github.com/BruksfildServices01/nail-studio/internal/models"
	"github.com/BruksfildServices01/nail-studio/internal/timezone"
)

type PaymentResult struct {
	Appointment *models.Appointment     `json:"appointment"`
	Record      *models.FinancialRecord `json:"record"`
}

// ConfirmPayment conclui o agendamento e lança a receita correspondente.
// Um segundo pagamento é rejeitado sem gravar nada.
func (uc *Coordinator) ConfirmPayment(
	ctx context.Context,
	id string,
	form forms.PaymentForm,
) (*PaymentResult, error) {

	if err := forms.Validate(form); err != nil {
		return nil, err
	}

	var res PaymentResult

	err := uc.store.ExecUnderTx(ctx, func(tx domain.Store) error {
		ap, err := tx.GetAppointment(ctx, id)
		if err != nil {
			return notFoundAs(err, httperr.CodeAppointmentNotFound)
		}

		if err := domain.MarkPaid(ap, form.Value); err != nil {
			return err
		}

		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		rec := &models.FinancialRecord{
			Type:          models.RecordIncome,
			Category:      models.CategoryServices,
			Description:   paymentDescription(ap),
			Value:         ap.TotalValue,
			Date:          timezone.Today(uc.now()),
			AppointmentID: &ap.ID,
			PaymentMethod: form.Method,
		}
		if err := tx.CreateFinancialRecord(ctx, rec); err != nil {
			return err
		}

		res = PaymentResult{Appointment: ap, Record: rec}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.dispatch(ctx, "payment_confirmed", res.Appointment, map[string]string{
		"method": string(form.Method),
		"value":  res.Record.Value.StringFixed(2),
	})
	return &res, nil
}

func paymentDescription(ap *models.Appointment) string {
	names := make([]string, 0, len(ap.Services))
	for _, s := range ap.Services {
		names = append(names, s.Name)
	}
	if len(names) == 0 {
		return "Atendimento - " + ap.ClientName
	}
	return strings.Join(names, ", ") + " - " + ap.ClientName
}
