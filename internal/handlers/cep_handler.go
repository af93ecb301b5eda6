package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/nail-studio/internal/cep"
	"github.com/BruksfildServices01/nail-studio/internal/httperr"
	"github.com/BruksfildServices01/nail-studio/internal/httpresp"
)

type CEPHandler struct {
	client *cep.Client
}

func NewCEPHandler(client *cep.Client) *CEPHandler {
	return &CEPHandler{client: client}
}

func (h *CEPHandler) Lookup(c *gin.Context) {
	addr, err := h.client.Lookup(c.Request.Context(), c.Param("cep"))
	switch {
	case errors.Is(err, cep.ErrInvalid):
		httperr.BadRequest(c, "invalid_cep", "CEP deve ter 8 dígitos.")
		return
	case errors.Is(err, cep.ErrNotFound):
		httperr.NotFound(c, "cep_not_found", "CEP não encontrado.")
		return
	case err != nil:
		log.Warn().Err(err).Str("cep", c.Param("cep")).Msg("cep lookup failed")
		httperr.Write(c, http.StatusBadGateway, "cep_unavailable", "Serviço de CEP indisponível.")
		return
	}

	httpresp.OK(c, addr)
}
