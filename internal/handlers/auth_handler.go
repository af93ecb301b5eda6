package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/nail-studio/internal/auth"
	"github.com/BruksfildServices01/nail-studio/internal/httperr"
	"github.com/BruksfildServices01/nail-studio/internal/middleware"
	"github.com/BruksfildServices01/nail-studio/internal/models"
	"github.com/BruksfildServices01/nail-studio/internal/provision"
)

type UserStore interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type AuthHandler struct {
	store  UserStore
	issuer *auth.Issuer
}

func NewAuthHandler(store UserStore, issuer *auth.Issuer) *AuthHandler {
	return &AuthHandler{store: store, issuer: issuer}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Dados inválidos.")
		return
	}

	user, err := provision.Authenticate(c.Request.Context(), h.store, req.Email, req.Password)
	if errors.Is(err, provision.ErrInvalidCredentials) {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
		return
	}
	if err != nil {
		httperr.From(c, err, "login_failed")
		return
	}

	token, err := h.issuer.Issue(user)
	if err != nil {
		httperr.From(c, err, "failed_to_generate_token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}

// Me devolve o perfil do usuário do token.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.store.GetUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err, httperr.CodeNotFound, "failed_to_get_user")
		return
	}
	c.JSON(http.StatusOK, user)
}
