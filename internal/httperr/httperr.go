package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// Validation responde 400 com a lista de campos inválidos.
func Validation(c *gin.Context, details any) {
	c.JSON(http.StatusBadRequest, HTTPError{
		Code:    CodeInvalidRequest,
		Message: "Dados inválidos.",
		Details: details,
	})
}

// From converte erros de negócio no formato padrão. Qualquer outro erro
// vira 500 com o código informado.
func From(c *gin.Context, err error, fallbackCode string) {
	var fe interface{ Fields() map[string]string }
	if errors.As(err, &fe) {
		Validation(c, fe.Fields())
		return
	}

	if code, ok := BusinessCode(err); ok {
		status, msg := Lookup(code)
		Write(c, status, code, msg)
		return
	}

	log.Error().Err(err).Str("path", c.FullPath()).Msg(fallbackCode)
	Internal(c, fallbackCode, "Erro interno.")
}
