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

type CatalogStore interface {
	GetService(ctx context.Context, id string) (*models.Service, error)
	ListServices(ctx context.Context) ([]models.Service, error)
	CreateService(ctx context.Context, svc *models.Service) error
	UpdateService(ctx context.Context, svc *models.Service) error
	DeleteService(ctx context.Context, id string) error

	GetStaff(ctx context.Context, id string) (*models.Staff, error)
	ListStaff(ctx context.Context) ([]models.Staff, error)
	CreateStaff(ctx context.Context, st *models.Staff) error
	UpdateStaff(ctx context.Context, st *models.Staff) error
	DeleteStaff(ctx context.Context, id string) error
}

// CatalogHandler atende serviços e profissionais.
type CatalogHandler struct {
	store CatalogStore
	audit *audit.Dispatcher
}

func NewCatalogHandler(store CatalogStore, audit *audit.Dispatcher) *CatalogHandler {
	return &CatalogHandler{store: store, audit: audit}
}

// ======================================================
// SERVICES
// ======================================================

func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.store.ListServices(c.Request.Context())
	if err != nil {
		httperr.From(c, err, "failed_to_list_services")
		return
	}

	if c.Query("active") == "true" {
		active := services[:0]
		for _, s := range services {
			if s.Active {
				active = append(active, s)
			}
		}
		services = active
	}

	httpresp.List(c, services)
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var form forms.ServiceForm
	if !bindForm(c, &form) {
		return
	}

	var svc models.Service
	form.Apply(&svc)

	if err := h.store.CreateService(c.Request.Context(), &svc); err != nil {
		httperr.From(c, err, "failed_to_create_service")
		return
	}

	record(c, h.audit, "service_created", "service", svc.ID, nil)
	httpresp.Created(c, svc)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	var form forms.ServiceForm
	if !bindForm(c, &form) {
		return
	}

	ctx := c.Request.Context()
	svc, err := h.store.GetService(ctx, c.Param("id"))
	if err != nil {
		fail(c, err, httperr.CodeNotFound, "failed_to_get_service")
		return
	}

	form.Apply(svc)
	if err := h.store.UpdateService(ctx, svc); err != nil {
		fail(c, err, httperr.CodeNotFound, "failed_to_update_service")
		return
	}

	record(c, h.audit, "service_updated", "service", svc.ID, nil)
	httpresp.OK(c, svc)
}

func (h *CatalogHandler) DeleteService(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.DeleteService(c.Request.Context(), id); err != nil {
		fail(c, err, httperr.CodeNotFound, "failed_to_delete_service")
		return
	}

	record(c, h.audit, "service_deleted", "service", id, nil)
	httpresp.NoContent(c)
}

// ======================================================
// STAFF
// ======================================================

func (h *CatalogHandler) ListStaff(c *gin.Context) {
	staff, err := h.store.ListStaff(c.Request.Context())
	if err != nil {
		httperr.From(c, err, "failed_to_list_staff")
		return
	}
	httpresp.List(c, staff)
}

func (h *CatalogHandler) CreateStaff(c *gin.Context) {
	var form forms.StaffForm
	if !bindForm(c, &form) {
		return
	}

	var st models.Staff
	form.Apply(&st)

	if err := h.store.CreateStaff(c.Request.Context(), &st); err != nil {
		httperr.From(c, err, "failed_to_create_staff")
		return
	}

	record(c, h.audit, "staff_created", "staff", st.ID, nil)
	httpresp.Created(c, st)
}

func (h *CatalogHandler) UpdateStaff(c *gin.Context) {
	var form forms.StaffForm
	if !bindForm(c, &form) {
		return
	}

	ctx := c.Request.Context()
	st, err := h.store.GetStaff(ctx, c.Param("id"))
	if err != nil {
		fail(c, err, httperr.CodeNotFound, "failed_to_get_staff")
		return
	}

	form.Apply(st)
	if err := h.store.UpdateStaff(ctx, st); err != nil {
		fail(c, err, httperr.CodeNotFound, "failed_to_update_staff")
		return
	}

	record(c, h.audit, "staff_updated", "staff", st.ID, nil)
	httpresp.OK(c, st)
}

func (h *CatalogHandler) DeleteStaff(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.DeleteStaff(c.Request.Context(), id); err != nil {
		fail(c, err, httperr.CodeNotFound, "failed_to_delete_staff")
		return
	}

	record(c, h.audit, "staff_deleted", "staff", id, nil)
	httpresp.NoContent(c)
}
