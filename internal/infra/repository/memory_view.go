package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/nail-studio/internal/domain/appointment"
	"github.com/BruksfildServices01/nail-studio/internal/feed"
	"github.com/BruksfildServices01/nail-studio/internal/models"
)

// memView opera sobre um memState sem lock; o MemoryStore é quem serializa.
type memView struct {
	st     *memState
	now    func() time.Time
	events *[]feed.Event
}

var _ domain.Store = (*memView)(nil)

func (v *memView) emit(c feed.Collection, op feed.Op, id string, data, previous any) {
	*v.events = append(*v.events, feed.NewEvent(c, op, id, data, previous))
}

// Transações aninhadas reaproveitam a transação corrente.
func (v *memView) ExecUnderTx(ctx context.Context, fn func(tx domain.Store) error) error {
	return fn(v)
}

// -------- Client --------

func (v *memView) GetClient(ctx context.Context, id string) (*models.Client, error) {
	c, ok := v.st.clients[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (v *memView) ListClients(ctx context.Context) ([]models.Client, error) {
	out := make([]models.Client, 0, len(v.st.clients))
	for _, c := range v.st.clients {
		out = append(out, c)
	}
	sortClients(out)
	return out, nil
}

func (v *memView) AdjustClientVisits(ctx context.Context, id string, delta int, lastVisit *string) error {
	c, ok := v.st.clients[id]
	if !ok {
		return domain.ErrNotFound
	}
	prev := c
	c.TotalVisits += delta
	if c.TotalVisits < 0 {
		c.TotalVisits = 0
	}
	if lastVisit != nil {
		lv := *lastVisit
		c.LastVisit = &lv
	}
	c.UpdatedAt = v.now()
	v.st.clients[id] = c
	v.emit(feed.Clients, feed.OpUpdate, id, c, prev)
	return nil
}

func (v *memView) SetClientVisits(ctx context.Context, id string, total int) error {
	c, ok := v.st.clients[id]
	if !ok {
		return domain.ErrNotFound
	}
	prev := c
	c.TotalVisits = total
	c.UpdatedAt = v.now()
	v.st.clients[id] = c
	v.emit(feed.Clients, feed.OpUpdate, id, c, prev)
	return nil
}

func (v *memView) createClient(c *models.Client) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt, c.UpdatedAt = v.now(), v.now()
	v.st.clients[c.ID] = *c
	v.emit(feed.Clients, feed.OpCreate, c.ID, c, nil)
	return nil
}

func (v *memView) updateClient(c *models.Client) error {
	prev, ok := v.st.clients[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c.CreatedAt = prev.CreatedAt
	c.TotalVisits, c.LastVisit = prev.TotalVisits, prev.LastVisit
	c.UpdatedAt = v.now()
	v.st.clients[c.ID] = *c
	v.emit(feed.Clients, feed.OpUpdate, c.ID, c, prev)
	return nil
}

func (v *memView) deleteClient(id string) error {
	prev, ok := v.st.clients[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(v.st.clients, id)
	v.emit(feed.Clients, feed.OpDelete, id, nil, prev)
	return nil
}

// -------- Staff / Service --------

func (v *memView) GetStaff(ctx context.Context, id string) (*models.Staff, error) {
	s, ok := v.st.staff[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (v *memView) listStaff() []models.Staff {
	out := make([]models.Staff, 0, len(v.st.staff))
	for _, s := range v.st.staff {
		out = append(out, s)
	}
	sortStaff(out)
	return out
}

func (v *memView) putStaff(s *models.Staff, create bool) error {
	prev, exists := v.st.staff[s.ID]
	switch {
	case create:
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		s.CreatedAt = v.now()
	case !exists:
		return domain.ErrNotFound
	default:
		s.CreatedAt = prev.CreatedAt
	}
	s.UpdatedAt = v.now()
	v.st.staff[s.ID] = *s

	if create {
		v.emit(feed.Staff, feed.OpCreate, s.ID, s, nil)
	} else {
		v.emit(feed.Staff, feed.OpUpdate, s.ID, s, prev)
	}
	return nil
}

func (v *memView) deleteStaff(id string) error {
	prev, ok := v.st.staff[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(v.st.staff, id)
	v.emit(feed.Staff, feed.OpDelete, id, nil, prev)
	return nil
}

func (v *memView) getService(id string) (*models.Service, error) {
	s, ok := v.st.services[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (v *memView) GetServicesByIDs(ctx context.Context, ids []string) ([]models.Service, error) {
	seen := make(map[string]bool, len(ids))
	var out []models.Service
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if s, ok := v.st.services[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (v *memView) listServices() []models.Service {
	out := make([]models.Service, 0, len(v.st.services))
	for _, s := range v.st.services {
		out = append(out, s)
	}
	sortServices(out)
	return out
}

func (v *memView) putService(s *models.Service, create bool) error {
	prev, exists := v.st.services[s.ID]
	switch {
	case create:
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		s.CreatedAt = v.now()
	case !exists:
		return domain.ErrNotFound
	default:
		s.CreatedAt = prev.CreatedAt
	}
	s.UpdatedAt = v.now()
	v.st.services[s.ID] = *s

	if create {
		v.emit(feed.Services, feed.OpCreate, s.ID, s, nil)
	} else {
		v.emit(feed.Services, feed.OpUpdate, s.ID, s, prev)
	}
	return nil
}

func (v *memView) deleteService(id string) error {
	prev, ok := v.st.services[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(v.st.services, id)
	v.emit(feed.Services, feed.OpDelete, id, nil, prev)
	return nil
}

// -------- Appointment --------

func (v *memView) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	ap, ok := v.st.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	ap = copyAppointment(ap)
	return &ap, nil
}

func (v *memView) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	out := make([]models.Appointment, 0, len(v.st.appointments))
	for _, ap := range v.st.appointments {
		out = append(out, copyAppointment(ap))
	}
	sortAppointments(out)
	return out, nil
}

// ListAppointmentsBetween filtra o intervalo [from, to) de datas YYYY-MM-DD.
func (v *memView) ListAppointmentsBetween(ctx context.Context, from, to string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range v.st.appointments {
		if ap.Date >= from && ap.Date < to {
			out = append(out, copyAppointment(ap))
		}
	}
	sortAppointments(out)
	return out, nil
}

func (v *memView) HasSlotConflict(ctx context.Context, slot domain.Slot, excludingID string) (bool, error) {
	for _, ap := range v.st.appointments {
		if ap.ID == excludingID || ap.Status == models.StatusCancelled {
			continue
		}
		if ap.Date == slot.Date && ap.Time == slot.Time && ap.StaffID == slot.StaffID {
			return true, nil
		}
	}
	return false, nil
}

func (v *memView) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	if ap.Status != models.StatusCancelled {
		if taken, _ := v.HasSlotConflict(ctx, domain.SlotOf(ap), ap.ID); taken {
			return errSlotTaken
		}
	}
	if ap.ID == "" {
		ap.ID = uuid.NewString()
	}
	ap.CreatedAt, ap.UpdatedAt = v.now(), v.now()
	v.st.appointments[ap.ID] = copyAppointment(*ap)
	v.emit(feed.Appointments, feed.OpCreate, ap.ID, ap, nil)
	return nil
}

func (v *memView) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	prev, ok := v.st.appointments[ap.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if ap.Status != models.StatusCancelled {
		if taken, _ := v.HasSlotConflict(ctx, domain.SlotOf(ap), ap.ID); taken {
			return errSlotTaken
		}
	}
	ap.CreatedAt = prev.CreatedAt
	ap.UpdatedAt = v.now()
	v.st.appointments[ap.ID] = copyAppointment(*ap)
	v.emit(feed.Appointments, feed.OpUpdate, ap.ID, ap, prev)
	return nil
}

func (v *memView) DeleteAppointment(ctx context.Context, id string) error {
	prev, ok := v.st.appointments[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(v.st.appointments, id)
	v.emit(feed.Appointments, feed.OpDelete, id, nil, prev)
	return nil
}

// -------- Financial --------

func (v *memView) CreateFinancialRecord(ctx context.Context, rec *models.FinancialRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.CreatedAt, rec.UpdatedAt = v.now(), v.now()
	v.st.records[rec.ID] = *rec
	v.emit(feed.FinancialRecords, feed.OpCreate, rec.ID, rec, nil)
	return nil
}

func (v *memView) getRecord(id string) (*models.FinancialRecord, error) {
	r, ok := v.st.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

func (v *memView) listRecords() []models.FinancialRecord {
	out := make([]models.FinancialRecord, 0, len(v.st.records))
	for _, r := range v.st.records {
		out = append(out, r)
	}
	sortRecords(out)
	return out
}

func (v *memView) updateRecord(rec *models.FinancialRecord) error {
	prev, ok := v.st.records[rec.ID]
	if !ok {
		return domain.ErrNotFound
	}
	rec.CreatedAt = prev.CreatedAt
	rec.UpdatedAt = v.now()
	v.st.records[rec.ID] = *rec
	v.emit(feed.FinancialRecords, feed.OpUpdate, rec.ID, rec, prev)
	return nil
}

func (v *memView) deleteRecord(id string) error {
	prev, ok := v.st.records[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(v.st.records, id)
	v.emit(feed.FinancialRecords, feed.OpDelete, id, nil, prev)
	return nil
}
