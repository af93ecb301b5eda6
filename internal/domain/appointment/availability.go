package appointment

import (
	"time"

	"github.com/BruksfildServices01/nail-studio/internal/models"
	"github.com/BruksfildServices01/nail-studio/internal/timezone"
)

// SlotStep é a granularidade da agenda.
const SlotStep = 30 * time.Minute

// Slot identifica um horário de uma profissional.
type Slot struct {
	Date    string
	Time    string
	StaffID string
}

func SlotOf(ap *models.Appointment) Slot {
	return Slot{Date: ap.Date, Time: ap.Time, StaffID: ap.StaffID}
}

// Conflicts reporta se outro agendamento não cancelado ocupa o mesmo slot.
func Conflicts(slot Slot, excludingID string, existing []models.Appointment) bool {
	for _, ap := range existing {
		if ap.ID == excludingID || ap.Status == StatusCancelled {
			continue
		}
		if ap.Date == slot.Date && ap.Time == slot.Time && ap.StaffID == slot.StaffID {
			return true
		}
	}
	return false
}

type AvailabilityInput struct {
	StaffID string
	Date    string
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FreeSlots percorre o expediente em passos de 30 minutos e devolve os
// horários sem agendamento não cancelado da profissional.
func FreeSlots(hours StudioHours, date string, staffID string, existing []models.Appointment) ([]TimeSlot, error) {
	day, err := time.Parse(timezone.DateLayout, date)
	if err != nil {
		return nil, err
	}
	open, closeAt, err := hours.Bounds(day)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool)
	for _, ap := range existing {
		if ap.StaffID == staffID && ap.Date == date && ap.Status != StatusCancelled {
			taken[ap.Time] = true
		}
	}

	slots := []TimeSlot{}
	for cur := open; !cur.Add(SlotStep).After(closeAt); cur = cur.Add(SlotStep) {
		start := cur.Format(timezone.TimeLayout)
		if taken[start] {
			continue
		}
		slots = append(slots, TimeSlot{
			Start: start,
			End:   cur.Add(SlotStep).Format(timezone.TimeLayout),
		})
	}
	return slots, nil
}
