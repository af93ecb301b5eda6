package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/nail-studio/internal/domain/appointment"
	"github.com/BruksfildServices01/nail-studio/internal/forms"
	"github.com/BruksfildServices01/nail-studio/internal/httperr"
	"github.com/BruksfildServices01/nail-studio/internal/models"
)

// UpdateAppointment aplica as mudanças parciais. Agendamento pago só aceita
// alteração de observações.
func (uc *Coordinator) UpdateAppointment(
	ctx context.Context,
	id string,
	changes forms.AppointmentChanges,
) (*models.Appointment, error) {

	if err := forms.Validate(changes); err != nil {
		return nil, err
	}

	var next *models.Appointment

	err := uc.store.ExecUnderTx(ctx, func(tx domain.Store) error {
		cur, err := tx.GetAppointment(ctx, id)
		if err != nil {
			return notFoundAs(err, httperr.CodeAppointmentNotFound)
		}

		if cur.Paid && !changes.OnlyNotes() {
			return httperr.ErrBusiness(httperr.CodeAppointmentPaid)
		}

		next, err = uc.apply(ctx, tx, *cur, changes)
		if err != nil {
			return err
		}

		// --------------------------------------------------
		// Conflito: só quando o slot muda ou o agendamento volta a valer
		// --------------------------------------------------
		if next.Counted() && (domain.SlotOf(next) != domain.SlotOf(cur) || !cur.Counted()) {
			if err := uc.assertFree(ctx, tx, next); err != nil {
				return err
			}
		}

		if err := adjustVisits(ctx, tx, cur, next); err != nil {
			return err
		}

		return tx.UpdateAppointment(ctx, next)
	})
	if err != nil {
		return nil, err
	}

	uc.dispatch(ctx, "appointment_updated", next, map[string]string{"status": string(next.Status)})
	return next, nil
}

func (uc *Coordinator) apply(
	ctx context.Context,
	tx domain.Store,
	ap models.Appointment,
	ch forms.AppointmentChanges,
) (*models.Appointment, error) {

	if ch.ClientID != nil && *ch.ClientID != ap.ClientID {
		client, err := tx.GetClient(ctx, *ch.ClientID)
		if err != nil {
			return nil, notFoundAs(err, httperr.CodeClientNotFound)
		}
		ap.ClientID, ap.ClientName = client.ID, client.Name
	}

	if ch.StaffID != nil && *ch.StaffID != ap.StaffID {
		staff, err := tx.GetStaff(ctx, *ch.StaffID)
		if err != nil {
			return nil, notFoundAs(err, httperr.CodeStaffNotFound)
		}
		ap.StaffID, ap.StaffName = staff.ID, staff.Name
	}

	if len(ch.ServiceIDs) > 0 {
		services, err := resolveServices(ctx, tx, ch.ServiceIDs)
		if err != nil {
			return nil, err
		}
		domain.ApplyServices(&ap, services)
	}
	if ch.TotalValue != nil {
		ap.TotalValue = ch.TotalValue.Round(2)
	}

	if ch.Date != nil {
		ap.Date = *ch.Date
	}
	if ch.Time != nil {
		ap.Time = *ch.Time
	}
	if ch.Notes != nil {
		ap.Notes = *ch.Notes
	}

	if ch.Status != nil {
		if err := domain.Transition(&ap, *ch.Status); err != nil {
			return nil, err
		}
	}

	return &ap, nil
}

// adjustVisits mantém o contador igual ao número de agendamentos não
// cancelados de cada cliente envolvido na mudança.
func adjustVisits(ctx context.Context, tx domain.Store, cur, next *models.Appointment) error {
	was, is := cur.Counted(), next.Counted()

	if cur.ClientID != next.ClientID {
		if was {
			if err := tx.AdjustClientVisits(ctx, cur.ClientID, -1, nil); err != nil && !isMissing(err) {
				return err
			}
		}
		if is {
			return tx.AdjustClientVisits(ctx, next.ClientID, 1, &next.Date)
		}
		return nil
	}

	switch {
	case was && !is:
		return ignoreMissing(tx.AdjustClientVisits(ctx, next.ClientID, -1, nil))
	case !was && is:
		return tx.AdjustClientVisits(ctx, next.ClientID, 1, &next.Date)
	}
	return nil
}
