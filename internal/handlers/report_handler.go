package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/nail-studio/internal/audit"
	"github.com/BruksfildServices01/nail-studio/internal/httperr"
	"github.com/BruksfildServices01/nail-studio/internal/httpresp"
	"github.com/BruksfildServices01/nail-studio/internal/models"
	"github.com/BruksfildServices01/nail-studio/internal/report"
	"github.com/BruksfildServices01/nail-studio/internal/storage"
)

type ReportStore interface {
	ListAppointments(ctx context.Context) ([]models.Appointment, error)
	ListFinancialRecords(ctx context.Context) ([]models.FinancialRecord, error)
	ListStaff(ctx context.Context) ([]models.Staff, error)
}

type ReportHandler struct {
	store    ReportStore
	uploader storage.Uploader
	audit    *audit.Dispatcher
	now      func() time.Time
}

func NewReportHandler(
	store ReportStore,
	uploader storage.Uploader,
	audit *audit.Dispatcher,
	now func() time.Time,
) *ReportHandler {
	return &ReportHandler{store: store, uploader: uploader, audit: audit, now: now}
}

// build usa ?year=&month=; sem eles vale o mês corrente.
func (h *ReportHandler) build(c *gin.Context) (report.Monthly, bool) {
	now := h.now()
	year := queryInt(c, "year", now.Year())
	month := queryInt(c, "month", int(now.Month()))

	if _, err := report.Period(year, month); err != nil {
		httperr.BadRequest(c, "invalid_period", "Mês ou ano inválido.")
		return report.Monthly{}, false
	}

	ctx := c.Request.Context()

	appointments, err := h.store.ListAppointments(ctx)
	if err != nil {
		httperr.From(c, err, "failed_to_build_report")
		return report.Monthly{}, false
	}
	records, err := h.store.ListFinancialRecords(ctx)
	if err != nil {
		httperr.From(c, err, "failed_to_build_report")
		return report.Monthly{}, false
	}
	staff, err := h.store.ListStaff(ctx)
	if err != nil {
		httperr.From(c, err, "failed_to_build_report")
		return report.Monthly{}, false
	}

	m, err := report.Build(year, month, appointments, records, staff)
	if err != nil {
		httperr.From(c, err, "failed_to_build_report")
		return report.Monthly{}, false
	}
	return m, true
}

// Monthly: GET /reports/monthly (?format=csv baixa o arquivo)
func (h *ReportHandler) Monthly(c *gin.Context) {
	m, ok := h.build(c)
	if !ok {
		return
	}

	if c.Query("format") != "csv" {
		httpresp.OK(c, m)
		return
	}

	body, err := report.CSV(m)
	if err != nil {
		httperr.From(c, err, "failed_to_render_report")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="relatorio-%s.csv"`, m.Period))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", body)
}

// Export grava o CSV do mês no armazenamento configurado.
func (h *ReportHandler) Export(c *gin.Context) {
	m, ok := h.build(c)
	if !ok {
		return
	}

	body, err := report.CSV(m)
	if err != nil {
		httperr.From(c, err, "failed_to_render_report")
		return
	}

	res, err := h.uploader.Upload(c.Request.Context(), storage.UploadInput{
		Key:         fmt.Sprintf("reports/%s/relatorio-%d.csv", m.Period, h.now().Unix()),
		ContentType: "text/csv",
		Body:        body,
	})
	if errors.Is(err, storage.ErrDisabled) {
		httperr.Write(c, http.StatusServiceUnavailable, "storage_disabled", "Armazenamento de arquivos não configurado.")
		return
	}
	if err != nil {
		httperr.From(c, err, "failed_to_export_report")
		return
	}

	record(c, h.audit, "report_exported", "report", m.Period, gin.H{"key": res.Key})
	httpresp.Created(c, res)
}
