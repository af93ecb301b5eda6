// Package format holds the Brazilian display formats used across the studio:
// documents, phones, postal codes, dates and currency.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	isoLayout = "2006-01-02"
	brLayout  = "02/01/2006"
)

func OnlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CPF formata 11 dígitos como 000.000.000-00. Outros tamanhos voltam sem máscara.
func CPF(s string) string {
	d := OnlyDigits(s)
	if len(d) != 11 {
		return s
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

// CNPJ formata 14 dígitos como 00.000.000/0000-00.
func CNPJ(s string) string {
	d := OnlyDigits(s)
	if len(d) != 14 {
		return s
	}
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
}

// Phone formata celulares (11 dígitos) e fixos (10 dígitos) com DDD.
func Phone(s string) string {
	d := OnlyDigits(s)
	switch len(d) {
	case 11:
		return "(" + d[0:2] + ") " + d[2:7] + "-" + d[7:11]
	case 10:
		return "(" + d[0:2] + ") " + d[2:6] + "-" + d[6:10]
	}
	return s
}

func CEP(s string) string {
	d := OnlyDigits(s)
	if len(d) != 8 {
		return s
	}
	return d[0:5] + "-" + d[5:8]
}

// DateToISO devolve o dia de calendário de t (no fuso do próprio t).
func DateToISO(t time.Time) string {
	return t.Format(isoLayout)
}

// DateToBR converte YYYY-MM-DD em DD/MM/YYYY sem passar por UTC.
func DateToBR(iso string) string {
	t, err := time.Parse(isoLayout, iso)
	if err != nil {
		return iso
	}
	return t.Format(brLayout)
}

// DateFromBR converte DD/MM/YYYY em YYYY-MM-DD.
func DateFromBR(br string) (string, error) {
	t, err := time.Parse(brLayout, br)
	if err != nil {
		return "", err
	}
	return t.Format(isoLayout), nil
}

// IsCurrentMonth compara ano e mês do dia de calendário com now. A data é
// lida como dia local; nunca como meia-noite UTC.
func IsCurrentMonth(iso string, now time.Time) bool {
	t, err := time.ParseInLocation(isoLayout, iso, now.Location())
	if err != nil {
		return false
	}
	return t.Year() == now.Year() && t.Month() == now.Month()
}

// IsSameDay compara o dia de calendário com o dia local de now.
func IsSameDay(iso string, now time.Time) bool {
	return iso == now.Format(isoLayout)
}

// Currency formata em reais: R$ 1.234,56.
func Currency(v decimal.Decimal) string {
	neg := v.IsNegative()
	s := v.Abs().StringFixed(2)

	intPart, frac := s, "00"
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i+1:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := "R$ " + b.String() + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}
