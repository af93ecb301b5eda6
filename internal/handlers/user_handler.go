package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/nail-studio/internal/httperr"
	"github.com/BruksfildServices01/nail-studio/internal/httpresp"
	"github.com/BruksfildServices01/nail-studio/internal/middleware"
	"github.com/BruksfildServices01/nail-studio/internal/provision"
)

type UserHandler struct {
	provision *provision.Service
}

func NewUserHandler(p *provision.Service) *UserHandler {
	return &UserHandler{provision: p}
}

// Create cadastra uma conta da equipe. Só admins ativos podem chamar.
func (h *UserHandler) Create(c *gin.Context) {
	var form provision.UserForm
	if err := c.ShouldBindJSON(&form); err != nil {
		httperr.BadRequest(c, string(provision.InvalidArgument), "Dados inválidos.")
		return
	}

	user, err := h.provision.CreateUser(c.Request.Context(), middleware.UserID(c), form)
	if err != nil {
		var pe *provision.Error
		if !errors.As(err, &pe) {
			pe = &provision.Error{Kind: provision.Internal, Err: err}
		}
		msg := pe.Message
		if pe.Kind == provision.Internal {
			log.Error().Err(err).Msg("create user failed")
			msg = "Erro interno."
		}
		httperr.Write(c, pe.Status(), string(pe.Kind), msg)
		return
	}

	httpresp.Created(c, user)
}
