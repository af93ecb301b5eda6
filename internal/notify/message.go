package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/BruksfildServices01/nail-studio/internal/format"
	"github.com/BruksfildServices01/nail-studio/internal/models"
)

type Message struct {
	Subject string
	Text    string
	HTML    string
}

var confirmationHTML = template.Must(template.New("confirmation").Parse(`<div style="font-family:sans-serif;color:#333">
  <h2 style="color:#d63384">Agendamento confirmado</h2>
  <p>Olá, {{.Name}}!</p>
  <p>Seu horário está confirmado:</p>
  <ul>
    <li><strong>Data:</strong> {{.Date}}</li>
    <li><strong>Horário:</strong> {{.Time}}</li>
    <li><strong>Profissional:</strong> {{.Staff}}</li>
    <li><strong>Serviços:</strong> {{.Services}}</li>
    <li><strong>Valor:</strong> {{.Total}}</li>
  </ul>
  <p>Até breve!</p>
</div>`))

type confirmationData struct {
	Name     string
	Date     string
	Time     string
	Staff    string
	Services string
	Total    string
}

func serviceNames(ap models.Appointment) string {
	names := make([]string, 0, len(ap.Services))
	for _, s := range ap.Services {
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}

func firstName(name string) string {
	if f := strings.Fields(name); len(f) > 0 {
		return f[0]
	}
	return name
}

// Confirmation monta o e-mail de confirmação do agendamento.
func Confirmation(ap models.Appointment, client models.Client) (Message, error) {
	data := confirmationData{
		Name:     firstName(client.Name),
		Date:     format.DateToBR(ap.Date),
		Time:     ap.Time,
		Staff:    ap.StaffName,
		Services: serviceNames(ap),
		Total:    format.Currency(ap.TotalValue),
	}

	var html bytes.Buffer
	if err := confirmationHTML.Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("render confirmation: %w", err)
	}

	text := fmt.Sprintf(
		"Olá, %s!\n\nSeu horário está confirmado:\nData: %s\nHorário: %s\nProfissional: %s\nServiços: %s\nValor: %s\n\nAté breve!",
		data.Name, data.Date, data.Time, data.Staff, data.Services, data.Total,
	)

	return Message{
		Subject: fmt.Sprintf("Agendamento confirmado - %s às %s", data.Date, data.Time),
		Text:    text,
		HTML:    html.String(),
	}, nil
}

// NormalizePhone converte telefones brasileiros para o formato internacional
// (55 + DDD + número). Números com 12 ou 13 dígitos já prefixados com 55 são
// aceitos como estão.
func NormalizePhone(raw string) (string, bool) {
	d := format.OnlyDigits(raw)
	switch {
	case len(d) == 10 || len(d) == 11:
		return "55" + d, true
	case (len(d) == 12 || len(d) == 13) && strings.HasPrefix(d, "55"):
		return d, true
	}
	return "", false
}
