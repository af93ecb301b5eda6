package appointment

import (
	"github.com/BruksfildServices01/nail-studio/internal/httperr"
	"github.com/BruksfildServices01/nail-studio/internal/models"
)

// ===============================
// Appointment Status
// ===============================

type Status = models.AppointmentStatus

const (
	StatusScheduled = models.StatusScheduled
	StatusConfirmed = models.StatusConfirmed
	StatusCompleted = models.StatusCompleted
	StatusCancelled = models.StatusCancelled
	StatusNoShow    = models.StatusNoShow
)

// scheduled -> confirmed -> completed; cancelled e no-show saem de qualquer
// estado não terminal.
var transitions = map[Status][]Status{
	StatusScheduled: {StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
}

// ===============================
// Validations
// ===============================

func IsValid(s Status) bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

func IsTerminal(s Status) bool {
	_, open := transitions[s]
	return !open
}

// CanTransition valida a mudança de status. Manter o mesmo status é permitido.
func CanTransition(from, to Status) error {
	if !IsValid(to) {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	if from == to {
		return nil
	}
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness(httperr.CodeInvalidState)
}

// CanPay define se o agendamento pode receber pagamento.
func CanPay(ap *models.Appointment) error {
	if ap.Paid {
		return httperr.ErrBusiness(httperr.CodeAlreadyPaid)
	}
	if ap.Status == StatusCancelled || ap.Status == StatusNoShow {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// InitialStatus valida status inicial
func InitialStatus() Status {
	return StatusScheduled
}
