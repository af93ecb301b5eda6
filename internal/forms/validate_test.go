package forms

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/nail-studio/internal/models"
)

func ptr[T any](v T) *T { return &v }

// fieldsOf devolve os campos inválidos; nil quando o formulário passa.
func fieldsOf(t *testing.T, v any) map[string]string {
	t.Helper()
	err := Validate(v)
	if err == nil {
		return nil
	}
	var fe ValidationError
	if !errors.As(err, &fe) {
		t.Fatalf("Validate returned %T: %v", err, err)
	}
	return fe.Fields()
}

func validAppointment() AppointmentForm {
	return AppointmentForm{
		ClientID:   "c1",
		StaffID:    "s1",
		ServiceIDs: []string{"sv1"},
		Date:       "2025-06-02",
		Time:       "09:00",
	}
}

func TestAppointmentTime(t *testing.T) {
	tests := []struct {
		time string
		want map[string]string
	}{
		{"09:00", nil},
		{"09:30", nil},
		{"00:00", nil},
		{"23:30", nil},
		{"9:00", map[string]string{"time": "halfhour"}},
		{"09:15", map[string]string{"time": "halfhour"}},
		{"09:00:00", map[string]string{"time": "halfhour"}},
		{"25:00", map[string]string{"time": "halfhour"}},
		{"abc", map[string]string{"time": "halfhour"}},
		{"", map[string]string{"time": "required"}},
	}
	for _, tt := range tests {
		t.Run(tt.time, func(t *testing.T) {
			f := validAppointment()
			f.Time = tt.time
			if diff := cmp.Diff(tt.want, fieldsOf(t, f)); diff != "" {
				t.Errorf("fields (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAppointmentFormRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppointmentForm)
		want   map[string]string
	}{
		{"valid", func(*AppointmentForm) {}, nil},
		{"no services", func(f *AppointmentForm) { f.ServiceIDs = nil }, map[string]string{"service_ids": "required"}},
		{"blank service id", func(f *AppointmentForm) { f.ServiceIDs = []string{"sv1", ""} }, map[string]string{"service_ids[1]": "required"}},
		{"bad date", func(f *AppointmentForm) { f.Date = "02/06/2025" }, map[string]string{"date": "datetime"}},
		{"completed on create", func(f *AppointmentForm) { f.Status = ptr(models.StatusCompleted) }, map[string]string{"status": "oneof"}},
		{"negative total", func(f *AppointmentForm) { f.TotalValue = ptr(decimal.RequireFromString("-0.01")) }, map[string]string{"total_value": "gte"}},
		{"zero total", func(f *AppointmentForm) { f.TotalValue = ptr(decimal.Zero) }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validAppointment()
			tt.mutate(&f)
			if diff := cmp.Diff(tt.want, fieldsOf(t, f)); diff != "" {
				t.Errorf("fields (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAppointmentChanges(t *testing.T) {
	tests := []struct {
		name string
		in   AppointmentChanges
		want map[string]string
	}{
		{"empty", AppointmentChanges{}, nil},
		{"time on grid", AppointmentChanges{Time: ptr("10:30")}, nil},
		{"short hour", AppointmentChanges{Time: ptr("9:30")}, map[string]string{"time": "halfhour"}},
		{"no-show", AppointmentChanges{Status: ptr(models.StatusNoShow)}, nil},
		{"unknown status", AppointmentChanges{Status: ptr(models.AppointmentStatus("lost"))}, map[string]string{"status": "oneof"}},
		{"negative total", AppointmentChanges{TotalValue: ptr(decimal.NewFromInt(-1))}, map[string]string{"total_value": "gte"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, fieldsOf(t, tt.in)); diff != "" {
				t.Errorf("fields (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOnlyNotes(t *testing.T) {
	tests := []struct {
		name string
		in   AppointmentChanges
		want bool
	}{
		{"empty", AppointmentChanges{}, true},
		{"notes", AppointmentChanges{Notes: ptr("trazer esmalte")}, true},
		{"notes and time", AppointmentChanges{Notes: ptr("x"), Time: ptr("10:00")}, false},
		{"status", AppointmentChanges{Status: ptr(models.StatusConfirmed)}, false},
		{"services", AppointmentChanges{ServiceIDs: []string{"sv1"}}, false},
		{"total", AppointmentChanges{TotalValue: ptr(decimal.Zero)}, false},
	}
	for _, tt := range tests {
		if got := tt.in.OnlyNotes(); got != tt.want {
			t.Errorf("%s: OnlyNotes() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDecimalBounds(t *testing.T) {
	service := func(rate *decimal.Decimal, price string) ServiceForm {
		return ServiceForm{
			Name:           "Manicure",
			Price:          decimal.RequireFromString(price),
			DurationMin:    45,
			Category:       models.CategoryManicure,
			CommissionRate: rate,
		}
	}
	record := func(value string) FinancialRecordForm {
		return FinancialRecordForm{
			Type:     models.RecordIncome,
			Category: "Serviço",
			Value:    decimal.RequireFromString(value),
			Date:     "2025-06-02",
		}
	}

	tests := []struct {
		name string
		in   any
		want map[string]string
	}{
		{"service ok", service(ptr(decimal.NewFromInt(100)), "50.00"), nil},
		{"service without rate", service(nil, "0"), nil},
		{"service rate above 100", service(ptr(decimal.RequireFromString("100.01")), "50.00"), map[string]string{"commission_rate": "lte"}},
		{"service negative rate", service(ptr(decimal.NewFromInt(-5)), "50.00"), map[string]string{"commission_rate": "gte"}},
		{"service negative price", service(nil, "-1"), map[string]string{"price": "gte"}},
		{"staff commission above 100", StaffForm{Name: "Ana", Commission: decimal.NewFromInt(101)}, map[string]string{"commission": "lte"}},
		{"payment zero", PaymentForm{Value: decimal.Zero, Method: models.PaymentPix}, nil},
		{"payment negative", PaymentForm{Value: decimal.NewFromInt(-10), Method: models.PaymentPix}, map[string]string{"value": "gte"}},
		{"payment method", PaymentForm{Value: decimal.NewFromInt(10), Method: "boleto"}, map[string]string{"method": "oneof"}},
		{"record ok", record("0.01"), nil},
		{"record zero", record("0"), map[string]string{"value": "gt"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, fieldsOf(t, tt.in)); diff != "" {
				t.Errorf("fields (-want +got):\n%s", diff)
			}
		})
	}
}

func TestServiceCategory(t *testing.T) {
	for _, c := range []models.ServiceCategory{"Manicure", "Pedicure", "Alongamento", "Decoração", "Spa", "Outros"} {
		f := ServiceForm{Name: "x", DurationMin: 30, Category: c}
		if got := fieldsOf(t, f); got != nil {
			t.Errorf("category %q rejected: %v", c, got)
		}
	}

	f := ServiceForm{Name: "x", DurationMin: 30, Category: "manicure"}
	if diff := cmp.Diff(map[string]string{"category": "oneof"}, fieldsOf(t, f)); diff != "" {
		t.Errorf("fields (-want +got):\n%s", diff)
	}
}

func TestClientNormalize(t *testing.T) {
	f := ClientForm{
		Name:  "  Luana Prado ",
		Phone: "(74) 98801-1730",
		Email: " Luana@Example.COM ",
		CPF:   "123.456.789-09",
		Address: AddressForm{
			CEP:   "44900-000",
			State: " ba",
		},
	}
	f.Normalize()

	want := ClientForm{
		Name:    "Luana Prado",
		Phone:   "74988011730",
		Email:   "luana@example.com",
		CPF:     "12345678909",
		Address: AddressForm{CEP: "44900000", State: "BA"},
	}
	if diff := cmp.Diff(want, f); diff != "" {
		t.Errorf("normalized form (-want +got):\n%s", diff)
	}
	if got := fieldsOf(t, f); got != nil {
		t.Errorf("normalized form rejected: %v", got)
	}
}
