package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/nail-studio/internal/audit"
	"github.com/BruksfildServices01/nail-studio/internal/forms"
	"github.com/BruksfildServices01/nail-studio/internal/httperr"
	"github.com/BruksfildServices01/nail-studio/internal/httpresp"
	"github.com/BruksfildServices01/nail-studio/internal/models"
)

type ClientStore interface {
	GetClient(ctx context.Context, id string) (*models.Client, error)
	ListClients(ctx context.Context) ([]models.Client, error)
	CreateClient(ctx context.Context, c *models.Client) error
	UpdateClient(ctx context.Context, c *models.Client) error
	DeleteClient(ctx context.Context, id string) error
}

type ClientHandler struct {
	store ClientStore
	audit *audit.Dispatcher
}

func NewClientHandler(store ClientStore, audit *audit.Dispatcher) *ClientHandler {
	return &ClientHandler{store: store, audit: audit}
}

func matchesClient(cl models.Client, query string) bool {
	return strings.Contains(strings.ToLower(cl.Name), query) ||
		strings.Contains(cl.Phone, query) ||
		strings.Contains(strings.ToLower(cl.Email), query)
}

// ======================================================
// LIST CLIENTS
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	clients, err := h.store.ListClients(c.Request.Context())
	if err != nil {
		httperr.From(c, err, "failed_to_list_clients")
		return
	}

	if query != "" {
		filtered := clients[:0]
		for _, cl := range clients {
			if matchesClient(cl, query) {
				filtered = append(filtered, cl)
			}
		}
		clients = filtered
	}

	httpresp.List(c, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	client, err := h.store.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, httperr.CodeNotFound, "failed_to_get_client")
		return
	}
	httpresp.OK(c, client)
}

// ======================================================
// CREATE / UPDATE / DELETE
// ======================================================
func (h *ClientHandler) Create(c *gin.Context) {
	var form forms.ClientForm
	if !bindForm(c, &form) {
		return
	}

	var client models.Client
	form.Apply(&client)

	if err := h.store.CreateClient(c.Request.Context(), &client); err != nil {
		httperr.From(c, err, "failed_to_create_client")
		return
	}

	record(c, h.audit, "client_created", "client", client.ID, nil)
	httpresp.Created(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	var form forms.ClientForm
	if !bindForm(c, &form) {
		return
	}

	ctx := c.Request.Context()
	client, err := h.store.GetClient(ctx, c.Param("id"))
	if err != nil {
		fail(c, err, httperr.CodeNotFound, "failed_to_get_client")
		return
	}

	form.Apply(client)
	if err := h.store.UpdateClient(ctx, client); err != nil {
		fail(c, err, httperr.CodeNotFound, "failed_to_update_client")
		return
	}

	record(c, h.audit, "client_updated", "client", client.ID, nil)
	httpresp.OK(c, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.DeleteClient(c.Request.Context(), id); err != nil {
		fail(c, err, httperr.CodeNotFound, "failed_to_delete_client")
		return
	}

	record(c, h.audit, "client_deleted", "client", id, nil)
	httpresp.NoContent(c)
}
