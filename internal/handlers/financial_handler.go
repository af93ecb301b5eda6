package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/nail-studio/internal/audit"
	"github.com/BruksfildServices01/nail-studio/internal/forms"
	"github.com/BruksfildServices01/nail-studio/internal/httperr"
	"github.com/BruksfildServices01/nail-studio/internal/httpresp"
	"github.com/BruksfildServices01/nail-studio/internal/models"
)

type FinancialStore interface {
	GetFinancialRecord(ctx context.Context, id string) (*models.FinancialRecord, error)
	ListFinancialRecords(ctx context.Context) ([]models.FinancialRecord, error)
	CreateFinancialRecord(ctx context.Context, rec *models.FinancialRecord) error
	UpdateFinancialRecord(ctx context.Context, rec *models.FinancialRecord) error
	DeleteFinancialRecord(ctx context.Context, id string) error
}

type FinancialHandler struct {
	store FinancialStore
	audit *audit.Dispatcher
}

func NewFinancialHandler(store FinancialStore, audit *audit.Dispatcher) *FinancialHandler {
	return &FinancialHandler{store: store, audit: audit}
}

// List aceita ?month=YYYY-MM e ?type=income|expense.
func (h *FinancialHandler) List(c *gin.Context) {
	month := c.Query("month")
	kind := models.RecordType(c.Query("type"))

	records, err := h.store.ListFinancialRecords(c.Request.Context())
	if err != nil {
		httperr.From(c, err, "failed_to_list_records")
		return
	}

	filtered := records[:0]
	for _, r := range records {
		if month != "" && (len(r.Date) < 7 || r.Date[:7] != month) {
			continue
		}
		if kind != "" && r.Type != kind {
			continue
		}
		filtered = append(filtered, r)
	}

	httpresp.List(c, filtered)
}

// Lançamentos com appointment_id só nascem em ConfirmPayment e não são
// editados nem removidos por aqui: o agendamento pago depende deles.
func linked(c *gin.Context) {
	status, msg := httperr.Lookup(httperr.CodeRecordLinked)
	httperr.Write(c, status, httperr.CodeRecordLinked, msg)
}

func (h *FinancialHandler) Create(c *gin.Context) {
	var form forms.FinancialRecordForm
	if !bindForm(c, &form) {
		return
	}
	if form.AppointmentID != nil {
		linked(c)
		return
	}

	var rec models.FinancialRecord
	form.Apply(&rec)

	if err := h.store.CreateFinancialRecord(c.Request.Context(), &rec); err != nil {
		httperr.From(c, err, "failed_to_create_record")
		return
	}

	record(c, h.audit, "financial_record_created", "financial_record", rec.ID, gin.H{
		"type":  rec.Type,
		"value": rec.Value,
	})
	httpresp.Created(c, rec)
}

func (h *FinancialHandler) Update(c *gin.Context) {
	var form forms.FinancialRecordForm
	if !bindForm(c, &form) {
		return
	}

	ctx := c.Request.Context()
	rec, err := h.store.GetFinancialRecord(ctx, c.Param("id"))
	if err != nil {
		fail(c, err, httperr.CodeRecordNotFound, "failed_to_get_record")
		return
	}
	if rec.AppointmentID != nil || form.AppointmentID != nil {
		linked(c)
		return
	}

	form.Apply(rec)
	if err := h.store.UpdateFinancialRecord(ctx, rec); err != nil {
		fail(c, err, httperr.CodeRecordNotFound, "failed_to_update_record")
		return
	}

	record(c, h.audit, "financial_record_updated", "financial_record", rec.ID, nil)
	httpresp.OK(c, rec)
}

func (h *FinancialHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	rec, err := h.store.GetFinancialRecord(ctx, id)
	if err != nil {
		fail(c, err, httperr.CodeRecordNotFound, "failed_to_get_record")
		return
	}
	if rec.AppointmentID != nil {
		linked(c)
		return
	}

	if err := h.store.DeleteFinancialRecord(ctx, id); err != nil {
		fail(c, err, httperr.CodeRecordNotFound, "failed_to_delete_record")
		return
	}

	record(c, h.audit, "financial_record_deleted", "financial_record", id, nil)
	httpresp.NoContent(c)
}
