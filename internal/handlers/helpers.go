package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/nail-studio/internal/audit"
	domain "github.com/BruksfildServices01/nail-studio/internal/domain/appointment"
	"github.com/BruksfildServices01/nail-studio/internal/forms"
	"github.com/BruksfildServices01/nail-studio/internal/httperr"
)

// bindForm lê o JSON, normaliza (quando o formulário sabe) e valida.
// Em caso de erro já responde e devolve false.
func bindForm(c *gin.Context, form any) bool {
	if err := c.ShouldBindJSON(form); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Dados inválidos.")
		return false
	}

	if n, ok := form.(interface{ Normalize() }); ok {
		n.Normalize()
	}

	if err := forms.Validate(form); err != nil {
		httperr.From(c, err, httperr.CodeInvalidRequest)
		return false
	}
	return true
}

// fail responde erros de store: ErrNotFound vira o código informado.
func fail(c *gin.Context, err error, notFoundCode, fallbackCode string) {
	if errors.Is(err, domain.ErrNotFound) {
		status, msg := httperr.Lookup(notFoundCode)
		httperr.Write(c, status, notFoundCode, msg)
		return
	}
	httperr.From(c, err, fallbackCode)
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}

func record(c *gin.Context, d *audit.Dispatcher, action, entity, id string, meta any) {
	d.Dispatch(audit.Event{
		UserID:   audit.UserFrom(c.Request.Context()),
		Action:   action,
		Entity:   entity,
		EntityID: audit.Ptr(id),
		Metadata: meta,
	})
}
