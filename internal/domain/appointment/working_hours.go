package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/nail-studio/internal/timezone"
)

// StudioHours é o expediente do estúdio (HH:MM). Domingo fica fechado
// quando ClosedOnSunday estiver ligado.
type StudioHours struct {
	Open           string
	Close          string
	ClosedOnSunday bool
}

// Bounds devolve abertura e fechamento no dia informado.
func (h StudioHours) Bounds(day time.Time) (time.Time, time.Time, error) {
	if h.ClosedOnSunday && day.Weekday() == time.Sunday {
		return day, day, nil
	}

	parseHM := func(hm string) (time.Time, error) {
		t, err := time.Parse(timezone.TimeLayout, hm)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid studio hour %q: %w", hm, err)
		}
		return time.Date(
			day.Year(), day.Month(), day.Day(),
			t.Hour(), t.Minute(), 0, 0,
			day.Location(),
		), nil
	}

	open, err := parseHM(h.Open)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	closeAt, err := parseHM(h.Close)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !closeAt.After(open) {
		return open, open, nil
	}
	return open, closeAt, nil
}
