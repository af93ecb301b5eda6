package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/nail-studio/internal/domain/appointment"
	"github.com/BruksfildServices01/nail-studio/internal/forms"
	"github.com/BruksfildServices01/nail-studio/internal/httperr"
	"github.com/BruksfildServices01/nail-studio/internal/httpresp"
	"github.com/BruksfildServices01/nail-studio/internal/models"
	ucAppointment "github.com/BruksfildServices01/nail-studio/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentReader interface {
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
}

type AppointmentHandler struct {
	uc    *ucAppointment.Coordinator
	store AppointmentReader
}

func NewAppointmentHandler(uc *ucAppointment.Coordinator, store AppointmentReader) *AppointmentHandler {
	return &AppointmentHandler{uc: uc, store: store}
}

// ======================================================
// CREATE / UPDATE / DELETE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var form forms.AppointmentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Dados inválidos.")
		return
	}

	ap, err := h.uc.CreateAppointment(c.Request.Context(), form)
	if err != nil {
		httperr.From(c, err, "failed_to_create_appointment")
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	ap, err := h.store.GetAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, httperr.CodeAppointmentNotFound, "failed_to_get_appointment")
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	var changes forms.AppointmentChanges
	if err := c.ShouldBindJSON(&changes); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Dados inválidos.")
		return
	}

	ap, err := h.uc.UpdateAppointment(c.Request.Context(), c.Param("id"), changes)
	if err != nil {
		httperr.From(c, err, "failed_to_update_appointment")
		return
	}

	httpresp.OK(c, ap)
}

// Cancel e Complete são atalhos de Update só com o status.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.setStatus(c, models.StatusCancelled)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.setStatus(c, models.StatusCompleted)
}

func (h *AppointmentHandler) setStatus(c *gin.Context, status models.AppointmentStatus) {
	ap, err := h.uc.UpdateAppointment(
		c.Request.Context(),
		c.Param("id"),
		forms.AppointmentChanges{Status: &status},
	)
	if err != nil {
		httperr.From(c, err, "failed_to_update_appointment")
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteAppointment(c.Request.Context(), c.Param("id")); err != nil {
		httperr.From(c, err, "failed_to_delete_appointment")
		return
	}
	httpresp.NoContent(c)
}

// ======================================================
// PAYMENT
// ======================================================

func (h *AppointmentHandler) ConfirmPayment(c *gin.Context) {
	var form forms.PaymentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Dados inválidos.")
		return
	}

	res, err := h.uc.ConfirmPayment(c.Request.Context(), c.Param("id"), form)
	if err != nil {
		httperr.From(c, err, "failed_to_confirm_payment")
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// LISTAGENS
// ======================================================

// ListByDate: GET /appointments?date=YYYY-MM-DD&staff_id=
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	list, err := h.uc.ListByDate(c.Request.Context(), c.Query("date"), c.Query("staff_id"))
	if err != nil {
		httperr.From(c, err, "failed_to_list_appointments")
		return
	}
	httpresp.List(c, list)
}

// ListByMonth: GET /appointments/month?year=2025&month=6&staff_id=
func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	list, err := h.uc.ListByMonth(
		c.Request.Context(),
		queryInt(c, "year", 0),
		queryInt(c, "month", 0),
		c.Query("staff_id"),
	)
	if err != nil {
		httperr.From(c, err, "failed_to_list_appointments")
		return
	}
	httpresp.List(c, list)
}

func (h *AppointmentHandler) Availability(c *gin.Context) {
	slots, err := h.uc.GetAvailability(c.Request.Context(), domain.AvailabilityInput{
		StaffID: c.Query("staff_id"),
		Date:    c.Query("date"),
	})
	if err != nil {
		httperr.From(c, err, "failed_to_get_availability")
		return
	}
	httpresp.List(c, slots)
}

// CheckConflict: GET /appointments/conflict?date=&time=&staff_id=&exclude=
func (h *AppointmentHandler) CheckConflict(c *gin.Context) {
	slot := domain.Slot{
		Date:    strings.TrimSpace(c.Query("date")),
		Time:    strings.TrimSpace(c.Query("time")),
		StaffID: strings.TrimSpace(c.Query("staff_id")),
	}
	if slot.Date == "" || slot.Time == "" || slot.StaffID == "" {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Informe data, horário e profissional.")
		return
	}

	taken, err := h.uc.CheckConflict(c.Request.Context(), slot, c.Query("exclude"))
	if err != nil {
		httperr.From(c, err, "failed_to_check_conflict")
		return
	}
	httpresp.OK(c, gin.H{"conflict": taken})
}

// ======================================================
// SYNC
// ======================================================

func (h *AppointmentHandler) SyncVisits(c *gin.Context) {
	corrected, err := h.uc.SyncVisitCounts(c.Request.Context())
	if err != nil {
		httperr.From(c, err, "failed_to_sync_visits")
		return
	}
	httpresp.OK(c, gin.H{"corrected": corrected})
}
