package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/nail-studio/internal/httperr"
	"github.com/BruksfildServices01/nail-studio/internal/httpresp"
	"github.com/BruksfildServices01/nail-studio/internal/infra/repository"
	"github.com/BruksfildServices01/nail-studio/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditStore interface {
	ListAuditLogs(ctx context.Context, f repository.AuditFilter) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	store AuditStore
}

func NewAuditLogsHandler(store AuditStore) *AuditLogsHandler {
	return &AuditLogsHandler{store: store}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page := queryInt(c, "page", 1)
	if page <= 0 {
		page = 1
	}

	limit := queryInt(c, "limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	// --------------------------------------------------
	// Filtros opcionais
	// --------------------------------------------------

	filter := repository.AuditFilter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}

	if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		filter.From = &from
	}

	if to, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		end := to.Add(24 * time.Hour)
		filter.To = &end
	}

	// --------------------------------------------------
	// Listagem
	// --------------------------------------------------

	logs, total, err := h.store.ListAuditLogs(c.Request.Context(), filter)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	// --------------------------------------------------
	// Response
	// --------------------------------------------------

	httpresp.Page(c, page, limit, total, logs)
}
