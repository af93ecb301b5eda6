package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/nail-studio/internal/domain/appointment"
	"github.com/BruksfildServices01/nail-studio/internal/forms"
	"github.com/BruksfildServices01/nail-studio/internal/httperr"
	"github.com/BruksfildServices01/nail-studio/internal/models"
)

// CreateAppointment grava o agendamento e atualiza o contador de visitas do
// cliente na mesma transação.
func (uc *Coordinator) CreateAppointment(
	ctx context.Context,
	form forms.AppointmentForm,
) (*models.Appointment, error) {

	if err := forms.Validate(form); err != nil {
		return nil, err
	}

	var ap *models.Appointment

	err := uc.store.ExecUnderTx(ctx, func(tx domain.Store) error {

		// --------------------------------------------------
		// 1️⃣ Cliente / profissional / serviços
		// --------------------------------------------------
		client, err := tx.GetClient(ctx, form.ClientID)
		if err != nil {
			return notFoundAs(err, httperr.CodeClientNotFound)
		}

		staff, err := tx.GetStaff(ctx, form.StaffID)
		if err != nil {
			return notFoundAs(err, httperr.CodeStaffNotFound)
		}

		services, err := resolveServices(ctx, tx, form.ServiceIDs)
		if err != nil {
			return err
		}

		// --------------------------------------------------
		// 2️⃣ Montagem (status centralizado)
		// --------------------------------------------------
		ap = &models.Appointment{
			ClientID:   client.ID,
			ClientName: client.Name,
			StaffID:    staff.ID,
			StaffName:  staff.Name,
			Date:       form.Date,
			Time:       form.Time,
			Status:     domain.InitialStatus(),
			Notes:      form.Notes,
		}
		if form.Status != nil {
			ap.Status = *form.Status
		}
		domain.ApplyServices(ap, services)
		if form.TotalValue != nil {
			ap.TotalValue = form.TotalValue.Round(2)
		}

		// --------------------------------------------------
		// 3️⃣ Conflito de horário
		// --------------------------------------------------
		if err := uc.assertFree(ctx, tx, ap); err != nil {
			return err
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		// --------------------------------------------------
		// 4️⃣ Contador de visitas
		// --------------------------------------------------
		if ap.Counted() {
			return tx.AdjustClientVisits(ctx, client.ID, 1, &ap.Date)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.dispatch(ctx, "appointment_created", ap, nil)
	return ap, nil
}
