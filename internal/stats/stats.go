// Package stats derives the dashboard counters from the live collections.
package stats

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/nail-studio/internal/format"
	"github.com/BruksfildServices01/nail-studio/internal/models"
)

type DashboardStats struct {
	TotalClients      int             `json:"total_clients"`
	TotalAppointments int             `json:"total_appointments"`
	TodayAppointments int             `json:"today_appointments"`
	MonthlyRevenue    decimal.Decimal `json:"monthly_revenue"`
	MonthlyExpenses   decimal.Decimal `json:"monthly_expenses"`
	MonthlyProfit     decimal.Decimal `json:"monthly_profit"`
}

// Compute é puro: o mesmo conjunto de coleções e o mesmo now produzem
// sempre o mesmo resultado.
func Compute(
	clients []models.Client,
	appointments []models.Appointment,
	records []models.FinancialRecord,
	now time.Time,
) DashboardStats {
	out := DashboardStats{
		TotalClients:      len(clients),
		TotalAppointments: len(appointments),
		MonthlyRevenue:    decimal.Zero,
		MonthlyExpenses:   decimal.Zero,
	}

	for _, ap := range appointments {
		if ap.Status != models.StatusCancelled && format.IsSameDay(ap.Date, now) {
			out.TodayAppointments++
		}
	}

	for _, r := range records {
		if !format.IsCurrentMonth(r.Date, now) {
			continue
		}
		switch r.Type {
		case models.RecordIncome:
			out.MonthlyRevenue = out.MonthlyRevenue.Add(r.Value)
		case models.RecordExpense:
			out.MonthlyExpenses = out.MonthlyExpenses.Add(r.Value)
		}
	}

	out.MonthlyProfit = out.MonthlyRevenue.Sub(out.MonthlyExpenses)
	return out
}
