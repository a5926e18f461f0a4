package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"faktura/internal/domain"
	"faktura/internal/service"
)

// ClientHandler handles client register endpoints.
type ClientHandler struct {
	clientService service.ClientService
	statsService  service.StatsService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientService service.ClientService, statsService service.StatsService) *ClientHandler {
	return &ClientHandler{clientService: clientService, statsService: statsService}
}

// Create handles POST /api/v1/clients
func (h *ClientHandler) Create(c *gin.Context) {
	var req service.ClientInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "malformed request body")
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, client)
}

// List handles GET /api/v1/clients
func (h *ClientHandler) List(c *gin.Context) {
	filter := &domain.ClientFilter{
		Search:     c.Query("search"),
		ClientType: domain.ClientType(c.Query("client_type")),
	}
	filter.Offset, filter.Limit = parsePagination(c)

	clients, total, err := h.clientService.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, clients, PagMeta{Total: total, Offset: filter.Offset, Limit: filter.Limit})
}

// GetByID handles GET /api/v1/clients/:id
func (h *ClientHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	client, err := h.clientService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, client)
}

// Update handles PUT /api/v1/clients/:id
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req service.ClientInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "malformed request body")
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), id, &req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, client)
}

// Delete handles DELETE /api/v1/clients/:id
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "client deleted"})
}

// Stats handles GET /api/v1/clients/:id/stats
func (h *ClientHandler) Stats(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	stats, err := h.statsService.ClientStats(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}
