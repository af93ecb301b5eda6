// Package appointment holds the appointment use cases. The Coordinator keeps
// the multi-document rules: one booking per slot, the denormalized
// visit counters of clients and the payment/ledger pair.
package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/nail-studio/internal/audit"
	domain "github.com/BruksfildServices01/nail-studio/internal/domain/appointment"
	"github.com/BruksfildServices01/nail-studio/internal/httperr"
	"github.com/BruksfildServices01/nail-studio/internal/models"
)

type Coordinator struct {
	store domain.Store
	audit *audit.Dispatcher
	now   func() time.Time
	hours domain.StudioHours
}

func NewCoordinator(
	store domain.Store,
	audit *audit.Dispatcher,
	now func() time.Time,
	hours domain.StudioHours,
) *Coordinator {
	if now == nil {
		now = time.Now
	}
	return &Coordinator{
		store: store,
		audit: audit,
		now:   now,
		hours: hours,
	}
}

func (uc *Coordinator) dispatch(ctx context.Context, action string, ap *models.Appointment, meta any) {
	uc.audit.Dispatch(audit.Event{
		UserID:   audit.UserFrom(ctx),
		Action:   action,
		Entity:   "appointment",
		EntityID: audit.Ptr(ap.ID),
		Metadata: meta,
	})
}

// notFoundAs troca o ErrNotFound do store pelo código de negócio.
func notFoundAs(err error, code string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}

// --------------------------------------------------
// Resolução de referências
// --------------------------------------------------

// resolveServices devolve os serviços na ordem pedida, repetições incluídas.
func resolveServices(ctx context.Context, tx domain.Store, ids []string) ([]models.Service, error) {
	found, err := tx.GetServicesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Service, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	out := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
		}
		out = append(out, s)
	}
	return out, nil
}

func (uc *Coordinator) assertFree(ctx context.Context, tx domain.Store, ap *models.Appointment) error {
	taken, err := tx.HasSlotConflict(ctx, domain.SlotOf(ap), ap.ID)
	if err != nil {
		return err
	}
	if taken {
		return httperr.ErrBusiness(httperr.CodeTimeConflict)
	}
	return nil
}

// CheckConflict indica se outro agendamento não cancelado ocupa o slot.
func (uc *Coordinator) CheckConflict(ctx context.Context, slot domain.Slot, excludingID string) (bool, error) {
	return uc.store.HasSlotConflict(ctx, slot, excludingID)
}
