package stats

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/nail-studio/internal/models"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCompute(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	now := time.Date(2026, time.February, 1, 22, 0, 0, 0, loc)

	clients := []models.Client{{ID: "c1"}, {ID: "c2"}}
	appointments := []models.Appointment{
		{ID: "a1", Date: "2026-02-01", Status: models.StatusScheduled},
		{ID: "a2", Date: "2026-02-01", Status: models.StatusCancelled},
		{ID: "a3", Date: "2026-02-01", Status: models.StatusCompleted},
		{ID: "a4", Date: "2026-02-02", Status: models.StatusScheduled},
	}
	records := []models.FinancialRecord{
		{Type: models.RecordIncome, Value: money("150.00"), Date: "2026-02-01"},
		{Type: models.RecordIncome, Value: money("80.50"), Date: "2026-02-28"},
		{Type: models.RecordExpense, Value: money("40.25"), Date: "2026-02-10"},
		{Type: models.RecordIncome, Value: money("999"), Date: "2026-01-31"},
		{Type: models.RecordExpense, Value: money("10"), Date: "2026-03-01"},
	}

	got := Compute(clients, appointments, records, now)

	if got.TotalClients != 2 {
		t.Errorf("total clients = %d", got.TotalClients)
	}
	if got.TotalAppointments != 4 {
		t.Errorf("total appointments = %d", got.TotalAppointments)
	}
	if got.TodayAppointments != 2 {
		t.Errorf("today appointments = %d want 2", got.TodayAppointments)
	}
	if !got.MonthlyRevenue.Equal(money("230.50")) {
		t.Errorf("revenue = %s", got.MonthlyRevenue)
	}
	if !got.MonthlyExpenses.Equal(money("40.25")) {
		t.Errorf("expenses = %s", got.MonthlyExpenses)
	}
	if !got.MonthlyProfit.Equal(money("190.25")) {
		t.Errorf("profit = %s", got.MonthlyProfit)
	}
}

func TestComputeEmpty(t *testing.T) {
	got := Compute(nil, nil, nil, time.Now())
	if !got.MonthlyProfit.IsZero() || got.TotalClients != 0 || got.TodayAppointments != 0 {
		t.Fatalf("unexpected stats %+v", got)
	}
}
