// Package repository holds the document store implementations: a gorm
// (PostgreSQL) store and an in-memory store with the same contracts.
package repository

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	domain "github.com/BruksfildServices01/nail-studio/internal/domain/appointment"
	"github.com/BruksfildServices01/nail-studio/internal/feed"
	"github.com/BruksfildServices01/nail-studio/internal/models"
)

// ErrDuplicate indica violação de unicidade (e-mail de usuário).
var ErrDuplicate = errors.New("duplicate document")

type memState struct {
	clients      map[string]models.Client
	services     map[string]models.Service
	staff        map[string]models.Staff
	appointments map[string]models.Appointment
	records      map[string]models.FinancialRecord
	users        map[string]models.User
	audit        []models.AuditLog
}

func newMemState() *memState {
	return &memState{
		clients:      make(map[string]models.Client),
		services:     make(map[string]models.Service),
		staff:        make(map[string]models.Staff),
		appointments: make(map[string]models.Appointment),
		records:      make(map[string]models.FinancialRecord),
		users:        make(map[string]models.User),
	}
}

func cloneMap[T any](m map[string]T, cp func(T) T) map[string]T {
	out := make(map[string]T, len(m))
	for k, v := range m {
		out[k] = cp(v)
	}
	return out
}

func same[T any](v T) T { return v }

func copyAppointment(ap models.Appointment) models.Appointment {
	ap.Services = append([]models.ServiceSnapshot(nil), ap.Services...)
	return ap
}

func (s *memState) clone() *memState {
	return &memState{
		clients:      cloneMap(s.clients, same[models.Client]),
		services:     cloneMap(s.services, same[models.Service]),
		staff:        cloneMap(s.staff, same[models.Staff]),
		appointments: cloneMap(s.appointments, copyAppointment),
		records:      cloneMap(s.records, same[models.FinancialRecord]),
		users:        cloneMap(s.users, same[models.User]),
		audit:        append([]models.AuditLog(nil), s.audit...),
	}
}

// MemoryStore é o document store em memória. Transações trabalham sobre uma
// cópia do estado e só a publicam (com os eventos) no commit.
type MemoryStore struct {
	mu    sync.Mutex
	state *memState
	bus   feed.Publisher
	now   func() time.Time
}

func NewMemoryStore(bus feed.Publisher) *MemoryStore {
	return &MemoryStore{
		state: newMemState(),
		bus:   bus,
		now:   time.Now,
	}
}

func (s *MemoryStore) publish(ctx context.Context, events []feed.Event) {
	if s.bus == nil {
		return
	}
	for _, ev := range events {
		if err := s.bus.Publish(ctx, ev); err != nil {
			log.Warn().Err(err).Str("collection", string(ev.Collection)).Msg("feed publish failed")
		}
	}
}

// do executa fn sobre o estado vivo sob o lock e publica os eventos gerados.
func (s *MemoryStore) do(ctx context.Context, fn func(v *memView) error) error {
	s.mu.Lock()
	var events []feed.Event
	err := fn(&memView{st: s.state, now: s.now, events: &events})
	s.mu.Unlock()

	if err == nil {
		s.publish(ctx, events)
	}
	return err
}

func get[T any](s *MemoryStore, ctx context.Context, fn func(v *memView) (T, error)) (T, error) {
	var out T
	err := s.do(ctx, func(v *memView) error {
		var err error
		out, err = fn(v)
		return err
	})
	return out, err
}

func (s *MemoryStore) ExecUnderTx(ctx context.Context, fn func(tx domain.Store) error) error {
	s.mu.Lock()
	work := s.state.clone()
	var events []feed.Event
	err := fn(&memView{st: work, now: s.now, events: &events})
	if err == nil {
		s.state = work
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.publish(ctx, events)
	return nil
}

// -------- domain.Store --------

func (s *MemoryStore) GetClient(ctx context.Context, id string) (*models.Client, error) {
	return get(s, ctx, func(v *memView) (*models.Client, error) { return v.GetClient(ctx, id) })
}

func (s *MemoryStore) ListClients(ctx context.Context) ([]models.Client, error) {
	return get(s, ctx, func(v *memView) ([]models.Client, error) { return v.ListClients(ctx) })
}

func (s *MemoryStore) AdjustClientVisits(ctx context.Context, id string, delta int, lastVisit *string) error {
	return s.do(ctx, func(v *memView) error { return v.AdjustClientVisits(ctx, id, delta, lastVisit) })
}

func (s *MemoryStore) SetClientVisits(ctx context.Context, id string, total int) error {
	return s.do(ctx, func(v *memView) error { return v.SetClientVisits(ctx, id, total) })
}

func (s *MemoryStore) GetStaff(ctx context.Context, id string) (*models.Staff, error) {
	return get(s, ctx, func(v *memView) (*models.Staff, error) { return v.GetStaff(ctx, id) })
}

func (s *MemoryStore) GetServicesByIDs(ctx context.Context, ids []string) ([]models.Service, error) {
	return get(s, ctx, func(v *memView) ([]models.Service, error) { return v.GetServicesByIDs(ctx, ids) })
}

func (s *MemoryStore) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	return get(s, ctx, func(v *memView) (*models.Appointment, error) { return v.GetAppointment(ctx, id) })
}

func (s *MemoryStore) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	return get(s, ctx, func(v *memView) ([]models.Appointment, error) { return v.ListAppointments(ctx) })
}

func (s *MemoryStore) ListAppointmentsBetween(ctx context.Context, from, to string) ([]models.Appointment, error) {
	return get(s, ctx, func(v *memView) ([]models.Appointment, error) { return v.ListAppointmentsBetween(ctx, from, to) })
}

func (s *MemoryStore) HasSlotConflict(ctx context.Context, slot domain.Slot, excludingID string) (bool, error) {
	return get(s, ctx, func(v *memView) (bool, error) { return v.HasSlotConflict(ctx, slot, excludingID) })
}

func (s *MemoryStore) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	return s.do(ctx, func(v *memView) error { return v.CreateAppointment(ctx, ap) })
}

func (s *MemoryStore) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	return s.do(ctx, func(v *memView) error { return v.UpdateAppointment(ctx, ap) })
}

func (s *MemoryStore) DeleteAppointment(ctx context.Context, id string) error {
	return s.do(ctx, func(v *memView) error { return v.DeleteAppointment(ctx, id) })
}

func (s *MemoryStore) CreateFinancialRecord(ctx context.Context, rec *models.FinancialRecord) error {
	return s.do(ctx, func(v *memView) error { return v.CreateFinancialRecord(ctx, rec) })
}

// -------- Catálogo --------

func (s *MemoryStore) CreateClient(ctx context.Context, c *models.Client) error {
	return s.do(ctx, func(v *memView) error { return v.createClient(c) })
}

func (s *MemoryStore) UpdateClient(ctx context.Context, c *models.Client) error {
	return s.do(ctx, func(v *memView) error { return v.updateClient(c) })
}

func (s *MemoryStore) DeleteClient(ctx context.Context, id string) error {
	return s.do(ctx, func(v *memView) error { return v.deleteClient(id) })
}

func (s *MemoryStore) GetService(ctx context.Context, id string) (*models.Service, error) {
	return get(s, ctx, func(v *memView) (*models.Service, error) { return v.getService(id) })
}

func (s *MemoryStore) ListServices(ctx context.Context) ([]models.Service, error) {
	return get(s, ctx, func(v *memView) ([]models.Service, error) { return v.listServices(), nil })
}

func (s *MemoryStore) CreateService(ctx context.Context, svc *models.Service) error {
	return s.do(ctx, func(v *memView) error { return v.putService(svc, true) })
}

func (s *MemoryStore) UpdateService(ctx context.Context, svc *models.Service) error {
	return s.do(ctx, func(v *memView) error { return v.putService(svc, false) })
}

func (s *MemoryStore) DeleteService(ctx context.Context, id string) error {
	return s.do(ctx, func(v *memView) error { return v.deleteService(id) })
}

func (s *MemoryStore) ListStaff(ctx context.Context) ([]models.Staff, error) {
	return get(s, ctx, func(v *memView) ([]models.Staff, error) { return v.listStaff(), nil })
}

func (s *MemoryStore) CreateStaff(ctx context.Context, st *models.Staff) error {
	return s.do(ctx, func(v *memView) error { return v.putStaff(st, true) })
}

func (s *MemoryStore) UpdateStaff(ctx context.Context, st *models.Staff) error {
	return s.do(ctx, func(v *memView) error { return v.putStaff(st, false) })
}

func (s *MemoryStore) DeleteStaff(ctx context.Context, id string) error {
	return s.do(ctx, func(v *memView) error { return v.deleteStaff(id) })
}

func (s *MemoryStore) GetFinancialRecord(ctx context.Context, id string) (*models.FinancialRecord, error) {
	return get(s, ctx, func(v *memView) (*models.FinancialRecord, error) { return v.getRecord(id) })
}

func (s *MemoryStore) ListFinancialRecords(ctx context.Context) ([]models.FinancialRecord, error) {
	return get(s, ctx, func(v *memView) ([]models.FinancialRecord, error) { return v.listRecords(), nil })
}

func (s *MemoryStore) UpdateFinancialRecord(ctx context.Context, rec *models.FinancialRecord) error {
	return s.do(ctx, func(v *memView) error { return v.updateRecord(rec) })
}

func (s *MemoryStore) DeleteFinancialRecord(ctx context.Context, id string) error {
	return s.do(ctx, func(v *memView) error { return v.deleteRecord(id) })
}

// -------- Usuários --------

func (s *MemoryStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	return get(s, ctx, func(v *memView) (*models.User, error) {
		u, ok := v.st.users[id]
		if !ok {
			return nil, domain.ErrNotFound
		}
		return &u, nil
	})
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return get(s, ctx, func(v *memView) (*models.User, error) {
		email = strings.ToLower(strings.TrimSpace(email))
		for _, u := range v.st.users {
			if u.Email == email {
				return &u, nil
			}
		}
		return nil, domain.ErrNotFound
	})
}

func (s *MemoryStore) CountUsers(ctx context.Context) (int64, error) {
	return get(s, ctx, func(v *memView) (int64, error) { return int64(len(v.st.users)), nil })
}

func (s *MemoryStore) CreateUser(ctx context.Context, u *models.User) error {
	return s.do(ctx, func(v *memView) error {
		for _, existing := range v.st.users {
			if existing.Email == u.Email {
				return ErrDuplicate
			}
		}
		if u.ID == "" {
			u.ID = uuid.NewString()
		}
		u.CreatedAt, u.UpdatedAt = v.now(), v.now()
		v.st.users[u.ID] = *u
		return nil
	})
}

// -------- Auditoria --------

func (s *MemoryStore) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	return s.do(ctx, func(v *memView) error {
		entry.ID = uint(len(v.st.audit) + 1)
		entry.CreatedAt = v.now()
		v.st.audit = append(v.st.audit, *entry)
		return nil
	})
}

func (s *MemoryStore) ListAuditLogs(ctx context.Context, f AuditFilter) ([]models.AuditLog, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []models.AuditLog
	for _, e := range s.state.audit {
		if f.matches(e) {
			matched = append(matched, e)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	start, end := f.window(len(matched))
	return matched[start:end], total, nil
}
