package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/nail-studio/internal/models"
)

// ErrNotFound é devolvido pelos stores quando o documento não existe.
var ErrNotFound = errors.New("document not found")

// Store é o contrato do documento store usado pelo coordenador.
type Store interface {
	// ExecUnderTx executa fn numa transação. Se fn devolver erro nada é
	// gravado e o erro é repassado; eventos de mudança só saem após o commit.
	ExecUnderTx(ctx context.Context, fn func(tx Store) error) error

	// -------- Client --------
	GetClient(ctx context.Context, id string) (*models.Client, error)
	ListClients(ctx context.Context) ([]models.Client, error)

	// AdjustClientVisits soma delta ao contador (sem ficar negativo) e,
	// quando lastVisit não é nil, grava a última visita.
	AdjustClientVisits(ctx context.Context, id string, delta int, lastVisit *string) error
	SetClientVisits(ctx context.Context, id string, total int) error

	// -------- Staff / Service --------
	GetStaff(ctx context.Context, id string) (*models.Staff, error)
	GetServicesByIDs(ctx context.Context, ids []string) ([]models.Service, error)

	// -------- Appointment --------
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	ListAppointments(ctx context.Context) ([]models.Appointment, error)
	ListAppointmentsBetween(ctx context.Context, from, to string) ([]models.Appointment, error)

	HasSlotConflict(ctx context.Context, slot Slot, excludingID string) (bool, error)

	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error
	DeleteAppointment(ctx context.Context, id string) error

	// -------- Financial --------
	CreateFinancialRecord(ctx context.Context, rec *models.FinancialRecord) error
}
