package repository

import (
	"context"
	"errors"
	"testing"

	domain "github.com/BruksfildServices01/nail-studio/internal/domain/appointment"
	"github.com/BruksfildServices01/nail-studio/internal/models"
)

func TestMemoryStore(t *testing.T) {
	rec := &recorder{}
	runStoreContract(t, NewMemoryStore(rec), rec)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(nil)
	f := seed(t, s)

	ap := appointmentAt(f, "2025-06-01", "09:00", models.StatusScheduled)
	if err := s.CreateAppointment(ctx, ap); err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}

	got, _ := s.GetAppointment(ctx, ap.ID)
	got.Services[0].Name = "alterado"
	got.Status = models.StatusCancelled

	again, _ := s.GetAppointment(ctx, ap.ID)
	if again.Services[0].Name != "Manicure" || again.Status != models.StatusScheduled {
		t.Errorf("stored appointment was mutated through a returned copy: %+v", again)
	}
}

func TestMemoryStoreNestedTx(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(nil)
	f := seed(t, s)

	err := s.ExecUnderTx(ctx, func(tx domain.Store) error {
		return tx.ExecUnderTx(ctx, func(inner domain.Store) error {
			return inner.AdjustClientVisits(ctx, f.client.ID, 2, nil)
		})
	})
	if err != nil {
		t.Fatalf("ExecUnderTx: %v", err)
	}

	c, _ := s.GetClient(ctx, f.client.ID)
	if c.TotalVisits != 2 {
		t.Errorf("TotalVisits = %d, want 2", c.TotalVisits)
	}

	if err := s.DeleteClient(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("DeleteClient(missing) err = %v, want ErrNotFound", err)
	}
}
