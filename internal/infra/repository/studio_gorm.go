package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/nail-studio/internal/domain/appointment"
	"github.com/BruksfildServices01/nail-studio/internal/feed"
	"github.com/BruksfildServices01/nail-studio/internal/httperr"
	"github.com/BruksfildServices01/nail-studio/internal/models"
)

// StudioGormRepository é o document store sobre Postgres. Dentro de
// ExecUnderTx os eventos ficam pendentes e só são publicados após o commit.
type StudioGormRepository struct {
	db      *gorm.DB
	bus     feed.Publisher
	pending *[]feed.Event
}

func NewStudioGormRepository(db *gorm.DB, bus feed.Publisher) *StudioGormRepository {
	return &StudioGormRepository{db: db, bus: bus}
}

func (r *StudioGormRepository) publish(ctx context.Context, events []feed.Event) {
	if r.bus == nil {
		return
	}
	for _, ev := range events {
		if err := r.bus.Publish(ctx, ev); err != nil {
			log.Warn().Err(err).Str("collection", string(ev.Collection)).Msg("feed publish failed")
		}
	}
}

func (r *StudioGormRepository) emit(ctx context.Context, c feed.Collection, op feed.Op, id string, data, previous any) {
	ev := feed.NewEvent(c, op, id, data, previous)
	if r.pending != nil {
		*r.pending = append(*r.pending, ev)
		return
	}
	r.publish(ctx, []feed.Event{ev})
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

func newID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *StudioGormRepository) ExecUnderTx(ctx context.Context, fn func(tx domain.Store) error) error {
	if r.pending != nil {
		return fn(r)
	}

	var events []feed.Event
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&StudioGormRepository{db: tx, bus: r.bus, pending: &events})
	})
	if err != nil {
		return err
	}

	r.publish(ctx, events)
	return nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *StudioGormRepository) GetClient(ctx context.Context, id string) (*models.Client, error) {
	var c models.Client
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *StudioGormRepository) ListClients(ctx context.Context) ([]models.Client, error) {
	var list []models.Client
	if err := r.db.WithContext(ctx).Order("LOWER(name) ASC, id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *StudioGormRepository) AdjustClientVisits(ctx context.Context, id string, delta int, lastVisit *string) error {
	prev, err := r.GetClient(ctx, id)
	if err != nil {
		return err
	}

	updates := map[string]any{
		"total_visits": gorm.Expr("GREATEST(total_visits + ?, 0)", delta),
	}
	if lastVisit != nil {
		updates["last_visit"] = *lastVisit
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return err
	}

	return r.emitClientUpdate(ctx, prev)
}

func (r *StudioGormRepository) SetClientVisits(ctx context.Context, id string, total int) error {
	prev, err := r.GetClient(ctx, id)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", id).
		Update("total_visits", total).Error; err != nil {
		return err
	}

	return r.emitClientUpdate(ctx, prev)
}

func (r *StudioGormRepository) emitClientUpdate(ctx context.Context, prev *models.Client) error {
	cur, err := r.GetClient(ctx, prev.ID)
	if err != nil {
		return err
	}
	r.emit(ctx, feed.Clients, feed.OpUpdate, cur.ID, cur, prev)
	return nil
}

func (r *StudioGormRepository) CreateClient(ctx context.Context, c *models.Client) error {
	newID(&c.ID)
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return err
	}
	r.emit(ctx, feed.Clients, feed.OpCreate, c.ID, c, nil)
	return nil
}

var clientColumns = []string{
	"name", "phone", "email", "cpf", "cnpj", "notes",
	"address_cep", "address_street", "address_number", "address_complement",
	"address_neighborhood", "address_city", "address_state",
}

// UpdateClient grava os dados cadastrais; o contador de visitas é mantido
// apenas pelo coordenador de agendamentos.
func (r *StudioGormRepository) UpdateClient(ctx context.Context, c *models.Client) error {
	prev, err := r.GetClient(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Client{ID: c.ID}).
		Select(clientColumns).
		Updates(c).Error; err != nil {
		return err
	}
	return r.emitClientUpdate(ctx, prev)
}

func (r *StudioGormRepository) DeleteClient(ctx context.Context, id string) error {
	prev, err := r.GetClient(ctx, id)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Client{}, "id = ?", id).Error; err != nil {
		return err
	}
	r.emit(ctx, feed.Clients, feed.OpDelete, id, nil, prev)
	return nil
}

// --------------------------------------------------
// Staff / Service
// --------------------------------------------------

func (r *StudioGormRepository) GetStaff(ctx context.Context, id string) (*models.Staff, error) {
	var s models.Staff
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *StudioGormRepository) ListStaff(ctx context.Context) ([]models.Staff, error) {
	var list []models.Staff
	if err := r.db.WithContext(ctx).Order("LOWER(name) ASC, id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *StudioGormRepository) CreateStaff(ctx context.Context, s *models.Staff) error {
	newID(&s.ID)
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return err
	}
	r.emit(ctx, feed.Staff, feed.OpCreate, s.ID, s, nil)
	return nil
}

func (r *StudioGormRepository) UpdateStaff(ctx context.Context, s *models.Staff) error {
	prev, err := r.GetStaff(ctx, s.ID)
	if err != nil {
		return err
	}
	s.CreatedAt = prev.CreatedAt
	if err := r.db.WithContext(ctx).Save(s).Error; err != nil {
		return err
	}
	r.emit(ctx, feed.Staff, feed.OpUpdate, s.ID, s, prev)
	return nil
}

func (r *StudioGormRepository) DeleteStaff(ctx context.Context, id string) error {
	prev, err := r.GetStaff(ctx, id)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Staff{}, "id = ?", id).Error; err != nil {
		return err
	}
	r.emit(ctx, feed.Staff, feed.OpDelete, id, nil, prev)
	return nil
}

func (r *StudioGormRepository) GetService(ctx context.Context, id string) (*models.Service, error) {
	var s models.Service
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *StudioGormRepository) GetServicesByIDs(ctx context.Context, ids []string) ([]models.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []models.Service
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *StudioGormRepository) ListServices(ctx context.Context) ([]models.Service, error) {
	var list []models.Service
	if err := r.db.WithContext(ctx).Order("LOWER(name) ASC, id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *StudioGormRepository) CreateService(ctx context.Context, s *models.Service) error {
	newID(&s.ID)
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return err
	}
	r.emit(ctx, feed.Services, feed.OpCreate, s.ID, s, nil)
	return nil
}

func (r *StudioGormRepository) UpdateService(ctx context.Context, s *models.Service) error {
	prev, err := r.GetService(ctx, s.ID)
	if err != nil {
		return err
	}
	s.CreatedAt = prev.CreatedAt
	if err := r.db.WithContext(ctx).Save(s).Error; err != nil {
		return err
	}
	r.emit(ctx, feed.Services, feed.OpUpdate, s.ID, s, prev)
	return nil
}

func (r *StudioGormRepository) DeleteService(ctx context.Context, id string) error {
	prev, err := r.GetService(ctx, id)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Service{}, "id = ?", id).Error; err != nil {
		return err
	}
	r.emit(ctx, feed.Services, feed.OpDelete, id, nil, prev)
	return nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *StudioGormRepository) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	q := r.db.WithContext(ctx)
	if r.pending != nil {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var ap models.Appointment
	if err := q.First(&ap, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &ap, nil
}

func (r *StudioGormRepository) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	var list []models.Appointment
	if err := r.db.WithContext(ctx).
		Order("date DESC, time DESC, id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *StudioGormRepository) ListAppointmentsBetween(ctx context.Context, from, to string) ([]models.Appointment, error) {
	var list []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", from, to).
		Order("date DESC, time DESC, id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *StudioGormRepository) HasSlotConflict(ctx context.Context, slot domain.Slot, excludingID string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("id").
		Where("date = ? AND time = ? AND staff_id = ? AND status <> ?",
			slot.Date, slot.Time, slot.StaffID, models.StatusCancelled,
		)
	if excludingID != "" {
		q = q.Where("id <> ?", excludingID)
	}
	if r.pending != nil {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var ids []string
	if err := q.Limit(1).Find(&ids).Error; err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

func (r *StudioGormRepository) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	newID(&ap.ID)
	if err := r.db.WithContext(ctx).Create(ap).Error; err != nil {
		return slotError(err)
	}
	r.emit(ctx, feed.Appointments, feed.OpCreate, ap.ID, ap, nil)
	return nil
}

func (r *StudioGormRepository) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	prev, err := r.GetAppointment(ctx, ap.ID)
	if err != nil {
		return err
	}
	ap.CreatedAt = prev.CreatedAt
	if err := r.db.WithContext(ctx).Save(ap).Error; err != nil {
		return slotError(err)
	}
	r.emit(ctx, feed.Appointments, feed.OpUpdate, ap.ID, ap, prev)
	return nil
}

func (r *StudioGormRepository) DeleteAppointment(ctx context.Context, id string) error {
	prev, err := r.GetAppointment(ctx, id)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Appointment{}, "id = ?", id).Error; err != nil {
		return err
	}
	r.emit(ctx, feed.Appointments, feed.OpDelete, id, nil, prev)
	return nil
}

func slotError(err error) error {
	if httperr.IsExclusionConflict(err) {
		return fmt.Errorf("%w: %v", httperr.ErrBusiness(httperr.CodeTimeConflict), err)
	}
	return err
}

// --------------------------------------------------
// Financial
// --------------------------------------------------

func (r *StudioGormRepository) CreateFinancialRecord(ctx context.Context, rec *models.FinancialRecord) error {
	newID(&rec.ID)
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return err
	}
	r.emit(ctx, feed.FinancialRecords, feed.OpCreate, rec.ID, rec, nil)
	return nil
}

func (r *StudioGormRepository) GetFinancialRecord(ctx context.Context, id string) (*models.FinancialRecord, error) {
	var rec models.FinancialRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &rec, nil
}

func (r *StudioGormRepository) ListFinancialRecords(ctx context.Context) ([]models.FinancialRecord, error) {
	var list []models.FinancialRecord
	if err := r.db.WithContext(ctx).
		Order("date DESC, created_at DESC, id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *StudioGormRepository) UpdateFinancialRecord(ctx context.Context, rec *models.FinancialRecord) error {
	prev, err := r.GetFinancialRecord(ctx, rec.ID)
	if err != nil {
		return err
	}
	rec.CreatedAt = prev.CreatedAt
	if err := r.db.WithContext(ctx).Save(rec).Error; err != nil {
		return err
	}
	r.emit(ctx, feed.FinancialRecords, feed.OpUpdate, rec.ID, rec, prev)
	return nil
}

func (r *StudioGormRepository) DeleteFinancialRecord(ctx context.Context, id string) error {
	prev, err := r.GetFinancialRecord(ctx, id)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.FinancialRecord{}, "id = ?", id).Error; err != nil {
		return err
	}
	r.emit(ctx, feed.FinancialRecords, feed.OpDelete, id, nil, prev)
	return nil
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *StudioGormRepository) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *StudioGormRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *StudioGormRepository) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, err
}

func (r *StudioGormRepository) CreateUser(ctx context.Context, u *models.User) error {
	newID(&u.ID)
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if httperr.IsExclusionConflict(err) {
			return fmt.Errorf("%w: %v", ErrDuplicate, err)
		}
		return err
	}
	return nil
}

// --------------------------------------------------
// Audit
// --------------------------------------------------

func (r *StudioGormRepository) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *StudioGormRepository) ListAuditLogs(ctx context.Context, f AuditFilter) ([]models.AuditLog, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(f.limit()).
		Offset(f.offset()).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// Compile-time check
var _ domain.Store = (*StudioGormRepository)(nil)
