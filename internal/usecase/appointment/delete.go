package appointment

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/nail-studio/internal/domain/appointment"
	"github.com/BruksfildServices01/nail-studio/internal/httperr"
	"github.com/BruksfildServices01/nail-studio/internal/models"
)

// DeleteAppointment remove o agendamento devolvendo a visita do cliente.
func (uc *Coordinator) DeleteAppointment(ctx context.Context, id string) error {
	var removed *models.Appointment

	err := uc.store.ExecUnderTx(ctx, func(tx domain.Store) error {
		ap, err := tx.GetAppointment(ctx, id)
		if err != nil {
			return notFoundAs(err, httperr.CodeAppointmentNotFound)
		}

		if ap.Counted() {
			if err := ignoreMissing(tx.AdjustClientVisits(ctx, ap.ClientID, -1, nil)); err != nil {
				return err
			}
		}

		removed = ap
		return tx.DeleteAppointment(ctx, id)
	})
	if err != nil {
		return err
	}

	uc.dispatch(ctx, "appointment_deleted", removed, nil)
	return nil
}

// O cliente pode já ter sido excluído; sem documento não há contador.
func isMissing(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

func ignoreMissing(err error) error {
	if isMissing(err) {
		return nil
	}
	return err
}
