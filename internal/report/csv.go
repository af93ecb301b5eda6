package report

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/BruksfildServices01/nail-studio/internal/format"
)

// CSV usa ponto e vírgula, o separador que planilhas em pt-BR esperam.
func CSV(m Monthly) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	rows := [][]string{
		{"Relatório mensal", m.Period},
		{},
		{"Resumo", "Valor"},
		{"Receitas", format.Currency(m.Revenue)},
		{"Despesas", format.Currency(m.Expenses)},
		{"Lucro", format.Currency(m.Profit)},
		{},
		{"Agendamentos", "Quantidade"},
		{"Total", strconv.Itoa(m.Appointments.Total)},
		{"Concluídos", strconv.Itoa(m.Appointments.Completed)},
		{"Pagos", strconv.Itoa(m.Appointments.Paid)},
		{"Cancelados", strconv.Itoa(m.Appointments.Cancelled)},
		{"Faltas", strconv.Itoa(m.Appointments.NoShow)},
		{},
		{"Tipo", "Categoria", "Total"},
	}
	for _, c := range m.Categories {
		rows = append(rows, []string{string(c.Type), c.Category, format.Currency(c.Total)})
	}

	rows = append(rows, []string{}, []string{"Forma de pagamento", "Total"})
	for _, mt := range m.Methods {
		rows = append(rows, []string{string(mt.Method), format.Currency(mt.Total)})
	}

	rows = append(rows, []string{}, []string{"Profissional", "Atendimentos pagos", "Faturamento", "Comissão"})
	for _, c := range m.Commissions {
		rows = append(rows, []string{
			c.StaffName,
			strconv.Itoa(c.Appointments),
			format.Currency(c.Revenue),
			format.Currency(c.Commission),
		})
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
