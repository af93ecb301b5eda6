package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/nail-studio/internal/feed"
	"github.com/BruksfildServices01/nail-studio/internal/httpresp"
	"github.com/BruksfildServices01/nail-studio/internal/live"
)

type DashboardHandler struct {
	session *live.Session
	now     func() time.Time
}

func NewDashboardHandler(session *live.Session, now func() time.Time) *DashboardHandler {
	return &DashboardHandler{session: session, now: now}
}

// Stats lê a réplica em memória; coleções ainda carregando aparecem em loaded.
func (h *DashboardHandler) Stats(c *gin.Context) {
	loaded := make(map[feed.Collection]bool)
	for _, col := range feed.Collections() {
		loaded[col] = h.session.Loaded(col)
	}

	httpresp.OK(c, gin.H{
		"stats":    h.session.Stats(h.now()),
		"loaded":   loaded,
		"warnings": h.session.Warnings(),
	})
}
