package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/nail-studio/internal/domain/appointment"
	"github.com/BruksfildServices01/nail-studio/internal/feed"
	"github.com/BruksfildServices01/nail-studio/internal/httperr"
	"github.com/BruksfildServices01/nail-studio/internal/models"
)

// studioStore é o conjunto de operações comum aos dois stores.
type studioStore interface {
	domain.Store
	CreateClient(ctx context.Context, c *models.Client) error
	UpdateClient(ctx context.Context, c *models.Client) error
	DeleteClient(ctx context.Context, id string) error
	CreateStaff(ctx context.Context, s *models.Staff) error
	CreateService(ctx context.Context, s *models.Service) error
	ListServices(ctx context.Context) ([]models.Service, error)
	ListFinancialRecords(ctx context.Context) ([]models.FinancialRecord, error)
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateAuditLog(ctx context.Context, entry *models.AuditLog) error
	ListAuditLogs(ctx context.Context, f AuditFilter) ([]models.AuditLog, int64, error)
}

var (
	_ studioStore = (*MemoryStore)(nil)
	_ studioStore = (*StudioGormRepository)(nil)
)

type recorder struct {
	mu     sync.Mutex
	events []feed.Event
}

func (r *recorder) Publish(_ context.Context, ev feed.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) ops() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, string(ev.Collection)+":"+string(ev.Op))
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

type fixture struct {
	client models.Client
	staff  models.Staff
}

func seed(t *testing.T, s studioStore) fixture {
	t.Helper()
	ctx := context.Background()

	c := models.Client{Name: "Maria", Phone: "74988011730"}
	if err := s.CreateClient(ctx, &c); err != nil {
		t.Fatalf("CreateClient: %v", err)
	}
	st := models.Staff{Name: "Ana", Commission: decimal.NewFromInt(40), Active: true}
	if err := s.CreateStaff(ctx, &st); err != nil {
		t.Fatalf("CreateStaff: %v", err)
	}
	return fixture{client: c, staff: st}
}

func appointmentAt(f fixture, date, hm string, status models.AppointmentStatus) *models.Appointment {
	return &models.Appointment{
		ClientID:   f.client.ID,
		ClientName: f.client.Name,
		StaffID:    f.staff.ID,
		StaffName:  f.staff.Name,
		Date:       date,
		Time:       hm,
		Status:     status,
		TotalValue: decimal.RequireFromString("150.00"),
		Services: []models.ServiceSnapshot{
			{ServiceID: "svc-1", Name: "Manicure", Price: decimal.RequireFromString("150.00"), DurationMin: 60, Category: models.CategoryManicure},
		},
	}
}

func runStoreContract(t *testing.T, s studioStore, rec *recorder) {
	ctx := context.Background()

	t.Run("slot conflict", func(t *testing.T) {
		f := seed(t, s)

		first := appointmentAt(f, "2025-06-01", "09:00", models.StatusScheduled)
		if err := s.CreateAppointment(ctx, first); err != nil {
			t.Fatalf("CreateAppointment: %v", err)
		}

		err := s.CreateAppointment(ctx, appointmentAt(f, "2025-06-01", "09:00", models.StatusConfirmed))
		if !httperr.IsBusiness(err, httperr.CodeTimeConflict) {
			t.Fatalf("second booking err = %v, want time_conflict", err)
		}

		taken, err := s.HasSlotConflict(ctx, domain.SlotOf(first), "")
		if err != nil || !taken {
			t.Fatalf("HasSlotConflict = %v, %v; want true", taken, err)
		}
		taken, err = s.HasSlotConflict(ctx, domain.SlotOf(first), first.ID)
		if err != nil || taken {
			t.Fatalf("HasSlotConflict excluding itself = %v, %v; want false", taken, err)
		}

		first.Status = models.StatusCancelled
		if err := s.UpdateAppointment(ctx, first); err != nil {
			t.Fatalf("UpdateAppointment: %v", err)
		}
		if err := s.CreateAppointment(ctx, appointmentAt(f, "2025-06-01", "09:00", models.StatusScheduled)); err != nil {
			t.Fatalf("booking a cancelled slot: %v", err)
		}
	})

	t.Run("visits never negative", func(t *testing.T) {
		f := seed(t, s)
		lv := "2025-06-01"

		if err := s.AdjustClientVisits(ctx, f.client.ID, 1, &lv); err != nil {
			t.Fatalf("AdjustClientVisits: %v", err)
		}
		if err := s.AdjustClientVisits(ctx, f.client.ID, -3, nil); err != nil {
			t.Fatalf("AdjustClientVisits: %v", err)
		}

		got, err := s.GetClient(ctx, f.client.ID)
		if err != nil {
			t.Fatalf("GetClient: %v", err)
		}
		if got.TotalVisits != 0 {
			t.Errorf("TotalVisits = %d, want 0", got.TotalVisits)
		}
		if got.LastVisit == nil || *got.LastVisit != lv {
			t.Errorf("LastVisit = %v, want %s", got.LastVisit, lv)
		}
	})

	t.Run("update client keeps visit counter", func(t *testing.T) {
		f := seed(t, s)
		if err := s.SetClientVisits(ctx, f.client.ID, 4); err != nil {
			t.Fatalf("SetClientVisits: %v", err)
		}

		edit := f.client
		edit.Name = "Maria Souza"
		edit.TotalVisits = 0
		edit.Address.City = "Irecê"
		if err := s.UpdateClient(ctx, &edit); err != nil {
			t.Fatalf("UpdateClient: %v", err)
		}

		got, _ := s.GetClient(ctx, f.client.ID)
		if got.TotalVisits != 4 || got.Name != "Maria Souza" || got.Address.City != "Irecê" {
			t.Errorf("client after update = %+v", got)
		}
	})

	t.Run("rollback publishes nothing", func(t *testing.T) {
		f := seed(t, s)
		rec.reset()

		boom := errors.New("boom")
		var created string
		err := s.ExecUnderTx(ctx, func(tx domain.Store) error {
			ap := appointmentAt(f, "2025-07-01", "10:00", models.StatusScheduled)
			if err := tx.CreateAppointment(ctx, ap); err != nil {
				return err
			}
			created = ap.ID
			if err := tx.AdjustClientVisits(ctx, f.client.ID, 1, nil); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("ExecUnderTx err = %v, want boom", err)
		}

		if _, err := s.GetAppointment(ctx, created); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("GetAppointment after rollback err = %v, want ErrNotFound", err)
		}
		got, _ := s.GetClient(ctx, f.client.ID)
		if got.TotalVisits != 0 {
			t.Errorf("TotalVisits after rollback = %d, want 0", got.TotalVisits)
		}
		if ops := rec.ops(); len(ops) != 0 {
			t.Errorf("events after rollback = %v, want none", ops)
		}
	})

	t.Run("commit publishes in order", func(t *testing.T) {
		f := seed(t, s)
		rec.reset()

		err := s.ExecUnderTx(ctx, func(tx domain.Store) error {
			ap := appointmentAt(f, "2025-07-02", "10:00", models.StatusScheduled)
			if err := tx.CreateAppointment(ctx, ap); err != nil {
				return err
			}
			if err := tx.AdjustClientVisits(ctx, f.client.ID, 1, &ap.Date); err != nil {
				return err
			}
			return tx.CreateFinancialRecord(ctx, &models.FinancialRecord{
				Type:          models.RecordIncome,
				Category:      models.CategoryServices,
				Value:         ap.TotalValue,
				Date:          ap.Date,
				AppointmentID: &ap.ID,
				PaymentMethod: models.PaymentPix,
			})
		})
		if err != nil {
			t.Fatalf("ExecUnderTx: %v", err)
		}

		want := []string{"appointments:create", "clients:update", "financial_records:create"}
		if diff := cmp.Diff(want, rec.ops()); diff != "" {
			t.Errorf("events mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("appointments by range newest first", func(t *testing.T) {
		f := seed(t, s)
		for _, at := range [][2]string{{"2025-08-01", "09:00"}, {"2025-08-01", "14:00"}, {"2025-08-31", "08:00"}, {"2025-09-01", "08:00"}} {
			if err := s.CreateAppointment(ctx, appointmentAt(f, at[0], at[1], models.StatusScheduled)); err != nil {
				t.Fatalf("CreateAppointment: %v", err)
			}
		}

		list, err := s.ListAppointmentsBetween(ctx, "2025-08-01", "2025-09-01")
		if err != nil {
			t.Fatalf("ListAppointmentsBetween: %v", err)
		}
		var got []string
		for _, ap := range list {
			if ap.StaffID == f.staff.ID {
				got = append(got, ap.Date+" "+ap.Time)
			}
		}
		want := []string{"2025-08-31 08:00", "2025-08-01 14:00", "2025-08-01 09:00"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("range mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("services by ids", func(t *testing.T) {
		a := models.Service{Name: "Alongamento em gel", Price: decimal.NewFromInt(180), DurationMin: 120, Category: models.CategoryAlongamento, Active: true}
		b := models.Service{Name: "Banho de gel", Price: decimal.NewFromInt(90), DurationMin: 60, Category: models.CategoryManicure, Active: true}
		for _, svc := range []*models.Service{&a, &b} {
			if err := s.CreateService(ctx, svc); err != nil {
				t.Fatalf("CreateService: %v", err)
			}
		}

		got, err := s.GetServicesByIDs(ctx, []string{a.ID, b.ID, a.ID, "missing"})
		if err != nil {
			t.Fatalf("GetServicesByIDs: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("GetServicesByIDs returned %d services, want 2", len(got))
		}
	})

	t.Run("duplicate user email", func(t *testing.T) {
		u := models.User{Name: "Admin", Email: "admin@studio.local", PasswordHash: "x", Role: models.RoleAdmin, Active: true}
		if err := s.CreateUser(ctx, &u); err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
		dup := models.User{Name: "Outro", Email: "admin@studio.local", PasswordHash: "x", Role: models.RoleEmployee, Active: true}
		if err := s.CreateUser(ctx, &dup); !errors.Is(err, ErrDuplicate) {
			t.Fatalf("duplicate CreateUser err = %v, want ErrDuplicate", err)
		}

		got, err := s.GetUserByEmail(ctx, " Admin@Studio.local ")
		if err != nil || got.ID != u.ID {
			t.Fatalf("GetUserByEmail = %+v, %v", got, err)
		}
	})

	t.Run("audit paging", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			if err := s.CreateAuditLog(ctx, &models.AuditLog{Action: "payment_confirmed", Entity: "appointment"}); err != nil {
				t.Fatalf("CreateAuditLog: %v", err)
			}
		}
		if err := s.CreateAuditLog(ctx, &models.AuditLog{Action: "client_deleted", Entity: "client"}); err != nil {
			t.Fatalf("CreateAuditLog: %v", err)
		}

		logs, total, err := s.ListAuditLogs(ctx, AuditFilter{Action: "payment_confirmed", Limit: 2})
		if err != nil {
			t.Fatalf("ListAuditLogs: %v", err)
		}
		if total != 3 || len(logs) != 2 {
			t.Errorf("ListAuditLogs total=%d len=%d, want 3 and 2", total, len(logs))
		}
	})
}
