package audit

import (
	"context"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/BruksfildServices01/nail-studio/internal/models"
)

type memRecorder struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func (m *memRecorder) CreateAuditLog(_ context.Context, e *models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *e)
	return nil
}

func TestDispatcherWritesOnClose(t *testing.T) {
	rec := &memRecorder{}
	d := NewDispatcher(New(rec))

	d.Dispatch(Event{
		UserID:   Ptr("u1"),
		Action:   "payment_confirmed",
		Entity:   "appointment",
		EntityID: Ptr("ap1"),
		Metadata: map[string]string{"method": "pix"},
	})
	d.Close()

	want := []models.AuditLog{{
		UserID:   Ptr("u1"),
		Action:   "payment_confirmed",
		Entity:   "appointment",
		EntityID: Ptr("ap1"),
		Metadata: `{"method":"pix"}`,
	}}
	if diff := cmp.Diff(want, rec.entries, cmpopts.IgnoreFields(models.AuditLog{}, "ID", "CreatedAt")); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	// Depois do Close os eventos são descartados sem panic.
	d.Dispatch(Event{Action: "late"})
	d.Close()
}

func TestNilDispatcher(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(Event{Action: "ignored"})
	d.Close()
}

func TestPtr(t *testing.T) {
	if Ptr("") != nil {
		t.Error(`Ptr("") should be nil`)
	}
	if p := Ptr("x"); p == nil || *p != "x" {
		t.Errorf("Ptr(x) = %v", p)
	}
}
