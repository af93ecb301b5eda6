// Package forms defines the explicit input shapes accepted for each studio
// entity and validates them before any write reaches the store.
package forms

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/nail-studio/internal/timezone"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// decimal.Decimal passa a ser validado como float (gte, lte, gt...).
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("halfhour", isHalfHour)

	return v
}

// isHalfHour aceita só HH:MM canônico na grade de 30 minutos. "9:00" é
// recusado: o horário faz parte da chave do slot.
func isHalfHour(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	t, err := time.Parse(timezone.TimeLayout, s)
	if err != nil || t.Format(timezone.TimeLayout) != s {
		return false
	}
	return t.Minute()%30 == 0
}

// ValidationError lista os campos inválidos (campo json -> regra violada).
type ValidationError struct {
	fields map[string]string
}

func (e ValidationError) Error() string {
	parts := make([]string, 0, len(e.fields))
	for f, tag := range e.fields {
		parts = append(parts, f+":"+tag)
	}
	return "invalid form: " + strings.Join(parts, ", ")
}

func (e ValidationError) Fields() map[string]string {
	return e.fields
}

// Invalid monta um ValidationError para regras verificadas fora das tags.
func Invalid(field, rule string) error {
	return ValidationError{fields: map[string]string{field: rule}}
}

func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return ValidationError{fields: fields}
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
