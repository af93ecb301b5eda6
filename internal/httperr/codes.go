package httperr

import "net/http"

const (
	CodeInvalidRequest      = "invalid_request"
	CodeTimeConflict        = "time_conflict"
	CodeAlreadyPaid         = "already_paid"
	CodeAppointmentPaid     = "appointment_paid"
	CodeInvalidState        = "invalid_state"
	CodeAppointmentNotFound = "appointment_not_found"
	CodeClientNotFound      = "client_not_found"
	CodeStaffNotFound       = "staff_not_found"
	CodeServiceNotFound     = "service_not_found"
	CodeRecordNotFound      = "record_not_found"
	CodeRecordLinked        = "record_linked"
	CodeNotFound            = "not_found"
)

type entry struct {
	status  int
	message string
}

var table = map[string]entry{
	CodeInvalidRequest:      {http.StatusBadRequest, "Dados inválidos."},
	CodeTimeConflict:        {http.StatusConflict, "Já existe um agendamento para esta profissional neste horário."},
	CodeAlreadyPaid:         {http.StatusConflict, "Este agendamento já foi pago."},
	CodeAppointmentPaid:     {http.StatusConflict, "Agendamento pago não pode ser alterado."},
	CodeInvalidState:        {http.StatusBadRequest, "Mudança de status não permitida."},
	CodeAppointmentNotFound: {http.StatusNotFound, "Agendamento não encontrado."},
	CodeClientNotFound:      {http.StatusBadRequest, "Cliente não encontrado."},
	CodeStaffNotFound:       {http.StatusBadRequest, "Profissional não encontrada."},
	CodeServiceNotFound:     {http.StatusBadRequest, "Serviço não encontrado."},
	CodeRecordNotFound:      {http.StatusNotFound, "Registro não encontrado."},
	CodeRecordLinked:        {http.StatusConflict, "Lançamento de agendamento é gerado pela confirmação de pagamento e não pode ser alterado."},
	CodeNotFound:            {http.StatusNotFound, "Registro não encontrado."},
}

// Lookup devolve status HTTP e mensagem para o código de negócio.
func Lookup(code string) (int, string) {
	if e, ok := table[code]; ok {
		return e.status, e.message
	}
	return http.StatusBadRequest, "Operação não permitida."
}
