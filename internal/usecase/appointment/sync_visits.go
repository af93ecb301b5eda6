package appointment

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/nail-studio/internal/audit"
	domain "github.com/BruksfildServices01/nail-studio/internal/domain/appointment"
)

// SyncVisitCounts recalcula o contador de todos os clientes a partir dos
// agendamentos não cancelados e devolve quantos foram corrigidos.
func (uc *Coordinator) SyncVisitCounts(ctx context.Context) (int, error) {
	fixed := 0

	err := uc.store.ExecUnderTx(ctx, func(tx domain.Store) error {
		fixed = 0

		appointments, err := tx.ListAppointments(ctx)
		if err != nil {
			return err
		}

		counts := make(map[string]int)
		for _, ap := range appointments {
			if ap.Counted() {
				counts[ap.ClientID]++
			}
		}

		clients, err := tx.ListClients(ctx)
		if err != nil {
			return err
		}

		for _, c := range clients {
			want := counts[c.ID]
			if c.TotalVisits == want {
				continue
			}
			if err := tx.SetClientVisits(ctx, c.ID, want); err != nil {
				return err
			}
			fixed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Info().Int("fixed", fixed).Msg("visit counts synced")
	uc.audit.Dispatch(audit.Event{
		UserID:   audit.UserFrom(ctx),
		Action:   "visit_counts_synced",
		Entity:   "client",
		Metadata: map[string]int{"fixed": fixed},
	})
	return fixed, nil
}
