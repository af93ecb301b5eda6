package report

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/nail-studio/internal/models"
)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fixture() ([]models.Appointment, []models.FinancialRecord, []models.Staff) {
	rate := d("50")
	staff := []models.Staff{
		{ID: "a", Name: "Ana", Commission: d("40")},
		{ID: "b", Name: "Bia", Commission: d("30")},
	}
	appointments := []models.Appointment{
		{ID: "1", StaffID: "a", Date: "2025-06-01", Status: models.StatusCompleted, Paid: true, Services: []models.ServiceSnapshot{
			{Name: "Manicure", Price: d("50")},
			{Name: "Alongamento", Price: d("100"), CommissionRate: &rate},
		}},
		{ID: "2", StaffID: "b", Date: "2025-06-15", Status: models.StatusCompleted, Paid: true, Services: []models.ServiceSnapshot{
			{Name: "Pedicure", Price: d("45.50")},
		}},
		{ID: "3", StaffID: "a", Date: "2025-06-20", Status: models.StatusScheduled},
		{ID: "4", StaffID: "a", Date: "2025-06-21", Status: models.StatusCancelled},
		{ID: "5", StaffID: "b", Date: "2025-06-22", Status: models.StatusNoShow},
		{ID: "6", StaffID: "a", Date: "2025-07-01", Status: models.StatusCompleted, Paid: true, Services: []models.ServiceSnapshot{{Price: d("999")}}},
	}
	records := []models.FinancialRecord{
		{Type: models.RecordIncome, Category: "Serviços", Value: d("150"), Date: "2025-06-01", PaymentMethod: models.PaymentPix},
		{Type: models.RecordIncome, Category: "Serviços", Value: d("45.50"), Date: "2025-06-15", PaymentMethod: models.PaymentCash},
		{Type: models.RecordExpense, Category: "Produtos", Value: d("80"), Date: "2025-06-10"},
		{Type: models.RecordExpense, Category: "Aluguel", Value: d("1000"), Date: "2025-05-31"},
	}
	return appointments, records, staff
}

func TestBuild(t *testing.T) {
	appointments, records, staff := fixture()

	got, err := Build(2025, 6, appointments, records, staff)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := Monthly{
		Period:   "2025-06",
		Revenue:  d("195.50"),
		Expenses: d("80"),
		Profit:   d("115.50"),
		Appointments: AppointmentCounts{
			Total: 4, Completed: 2, Cancelled: 1, NoShow: 1, Paid: 2,
		},
		Categories: []CategoryTotal{
			{Type: models.RecordIncome, Category: "Serviços", Total: d("195.50")},
			{Type: models.RecordExpense, Category: "Produtos", Total: d("80")},
		},
		Methods: []MethodTotal{
			{Method: models.PaymentCash, Total: d("45.50")},
			{Method: models.PaymentPix, Total: d("150")},
		},
		Commissions: []Commission{
			// 50*40% + 100*50%
			{StaffID: "a", StaffName: "Ana", Appointments: 1, Revenue: d("150"), Commission: d("70")},
			// 45.50*30%
			{StaffID: "b", StaffName: "Bia", Appointments: 1, Revenue: d("45.50"), Commission: d("13.65")},
		},
	}
	if diff := cmp.Diff(want, got, decimalEqual); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildInvalidPeriod(t *testing.T) {
	if _, err := Build(2025, 0, nil, nil, nil); err == nil {
		t.Error("month 0 accepted")
	}
}

func TestCSV(t *testing.T) {
	appointments, records, staff := fixture()
	m, _ := Build(2025, 6, appointments, records, staff)

	b, err := CSV(m)
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}
	out := string(b)

	for _, line := range []string{
		"Relatório mensal;2025-06",
		"Lucro;R$ 115,50",
		"income;Serviços;R$ 195,50",
		"Bia;1;R$ 45,50;R$ 13,65",
	} {
		if !strings.Contains(out, line+"\n") {
			t.Errorf("csv missing line %q:\n%s", line, out)
		}
	}
}
