// Package report builds the monthly financial summary and the staff
// commission statement.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/nail-studio/internal/models"
)

var hundred = decimal.NewFromInt(100)

type CategoryTotal struct {
	Type     models.RecordType `json:"type"`
	Category string            `json:"category"`
	Total    decimal.Decimal   `json:"total"`
}

type MethodTotal struct {
	Method models.PaymentMethod `json:"method"`
	Total  decimal.Decimal      `json:"total"`
}

type Commission struct {
	StaffID      string          `json:"staff_id"`
	StaffName    string          `json:"staff_name"`
	Appointments int             `json:"appointments"`
	Revenue      decimal.Decimal `json:"revenue"`
	Commission   decimal.Decimal `json:"commission"`
}

type AppointmentCounts struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
	NoShow    int `json:"no_show"`
	Paid      int `json:"paid"`
}

type Monthly struct {
	Period       string            `json:"period"`
	Revenue      decimal.Decimal   `json:"revenue"`
	Expenses     decimal.Decimal   `json:"expenses"`
	Profit       decimal.Decimal   `json:"profit"`
	Appointments AppointmentCounts `json:"appointments"`
	Categories   []CategoryTotal   `json:"categories"`
	Methods      []MethodTotal     `json:"methods"`
	Commissions  []Commission      `json:"commissions"`
}

// Period formata ano/mês como YYYY-MM, o prefixo das datas do mês.
func Period(year, month int) (string, error) {
	if month < 1 || month > 12 || year < 1 {
		return "", fmt.Errorf("invalid period %d-%d", year, month)
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01"), nil
}

func inPeriod(date, period string) bool {
	return len(date) >= 7 && date[:7] == period
}

// Build consolida o mês. A comissão de cada serviço pago usa a taxa do
// próprio serviço ou, na falta, a comissão da profissional.
func Build(
	year, month int,
	appointments []models.Appointment,
	records []models.FinancialRecord,
	staff []models.Staff,
) (Monthly, error) {

	period, err := Period(year, month)
	if err != nil {
		return Monthly{}, err
	}

	out := Monthly{
		Period:      period,
		Revenue:     decimal.Zero,
		Expenses:    decimal.Zero,
		Categories:  []CategoryTotal{},
		Methods:     []MethodTotal{},
		Commissions: []Commission{},
	}

	// --------------------------------------------------
	// Lançamentos
	// --------------------------------------------------
	categories := map[[2]string]decimal.Decimal{}
	methods := map[models.PaymentMethod]decimal.Decimal{}

	for _, r := range records {
		if !inPeriod(r.Date, period) {
			continue
		}
		switch r.Type {
		case models.RecordIncome:
			out.Revenue = out.Revenue.Add(r.Value)
			if r.PaymentMethod != "" {
				methods[r.PaymentMethod] = methods[r.PaymentMethod].Add(r.Value)
			}
		case models.RecordExpense:
			out.Expenses = out.Expenses.Add(r.Value)
		default:
			continue
		}
		key := [2]string{string(r.Type), r.Category}
		categories[key] = categories[key].Add(r.Value)
	}
	out.Profit = out.Revenue.Sub(out.Expenses)

	for k, total := range categories {
		out.Categories = append(out.Categories, CategoryTotal{Type: models.RecordType(k[0]), Category: k[1], Total: total})
	}
	sort.Slice(out.Categories, func(i, j int) bool {
		a, b := out.Categories[i], out.Categories[j]
		if a.Type != b.Type {
			return a.Type == models.RecordIncome
		}
		return a.Category < b.Category
	})

	for m, total := range methods {
		out.Methods = append(out.Methods, MethodTotal{Method: m, Total: total})
	}
	sort.Slice(out.Methods, func(i, j int) bool { return out.Methods[i].Method < out.Methods[j].Method })

	// --------------------------------------------------
	// Agenda e comissões
	// --------------------------------------------------
	rates := make(map[string]models.Staff, len(staff))
	for _, s := range staff {
		rates[s.ID] = s
	}
	commissions := map[string]*Commission{}

	for _, ap := range appointments {
		if !inPeriod(ap.Date, period) {
			continue
		}

		switch ap.Status {
		case models.StatusCancelled:
			out.Appointments.Cancelled++
			continue
		case models.StatusNoShow:
			out.Appointments.NoShow++
		case models.StatusCompleted:
			out.Appointments.Completed++
		}
		out.Appointments.Total++

		if !ap.Paid {
			continue
		}
		out.Appointments.Paid++

		c, ok := commissions[ap.StaffID]
		if !ok {
			name := ap.StaffName
			if s, found := rates[ap.StaffID]; found {
				name = s.Name
			}
			c = &Commission{StaffID: ap.StaffID, StaffName: name, Revenue: decimal.Zero, Commission: decimal.Zero}
			commissions[ap.StaffID] = c
		}
		c.Appointments++

		staffRate := rates[ap.StaffID].Commission
		for _, svc := range ap.Services {
			rate := staffRate
			if svc.CommissionRate != nil {
				rate = *svc.CommissionRate
			}
			c.Revenue = c.Revenue.Add(svc.Price)
			c.Commission = c.Commission.Add(svc.Price.Mul(rate).Div(hundred))
		}
	}

	for _, c := range commissions {
		c.Commission = c.Commission.Round(2)
		out.Commissions = append(out.Commissions, *c)
	}
	sort.Slice(out.Commissions, func(i, j int) bool {
		return out.Commissions[i].StaffName < out.Commissions[j].StaffName
	})

	return out, nil
}
