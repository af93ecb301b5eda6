package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/nail-studio/internal/audit"
	"github.com/BruksfildServices01/nail-studio/internal/auth"
	"github.com/BruksfildServices01/nail-studio/internal/httperr"
	"github.com/BruksfildServices01/nail-studio/internal/models"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

func AuthMiddleware(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Autenticação necessária.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Cabeçalho de autorização inválido.")
			c.Abort()
			return
		}

		claims, err := issuer.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Sessão inválida ou expirada.")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)

		// o ator das trilhas de auditoria segue pelo context da requisição
		c.Request = c.Request.WithContext(audit.WithUser(c.Request.Context(), claims.UserID))

		c.Next()
	}
}

// RequireRole barra quem não tem o papel informado no token.
func RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, _ := c.Get(ContextUserRole)
		if r, ok := got.(models.UserRole); !ok || r != role {
			httperr.Forbidden(c, "forbidden", "Acesso restrito.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID devolve o usuário autenticado ("" fora das rotas protegidas).
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// OptionalAuth identifica o usuário quando há token válido e segue adiante
// sem ele; a rota decide o que fazer com chamadas anônimas.
func OptionalAuth(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if claims, err := issuer.Parse(strings.TrimSpace(parts[1])); err == nil {
				c.Set(ContextUserID, claims.UserID)
				c.Set(ContextUserRole, claims.Role)
				c.Request = c.Request.WithContext(audit.WithUser(c.Request.Context(), claims.UserID))
			}
		}
		c.Next()
	}
}
