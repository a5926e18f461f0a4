package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"faktura/internal/service"
)

// SettingsHandler handles company details, bank accounts, series, and the
// settings store.
type SettingsHandler struct {
	settingsService service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetCompany handles GET /api/v1/company
func (h *SettingsHandler) GetCompany(c *gin.Context) {
	company, err := h.settingsService.GetCompany(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, company)
}

// UpdateCompany handles PUT /api/v1/company
func (h *SettingsHandler) UpdateCompany(c *gin.Context) {
	var req service.CompanyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "malformed request body")
		return
	}

	company, err := h.settingsService.UpdateCompany(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, company)
}

// ListBankAccounts handles GET /api/v1/company/bank-accounts
func (h *SettingsHandler) ListBankAccounts(c *gin.Context) {
	accounts, err := h.settingsService.ListBankAccounts(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, accounts)
}

// CreateBankAccount handles POST /api/v1/company/bank-accounts
func (h *SettingsHandler) CreateBankAccount(c *gin.Context) {
	var req service.BankAccountInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "malformed request body")
		return
	}

	account, err := h.settingsService.CreateBankAccount(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, account)
}

// UpdateBankAccount handles PUT /api/v1/company/bank-accounts/:id
func (h *SettingsHandler) UpdateBankAccount(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req service.BankAccountInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "malformed request body")
		return
	}

	account, err := h.settingsService.UpdateBankAccount(c.Request.Context(), id, &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, account)
}

// SetDefaultBankAccount handles POST /api/v1/company/bank-accounts/:id/default
func (h *SettingsHandler) SetDefaultBankAccount(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.settingsService.SetDefaultBankAccount(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "default bank account updated"})
}

// DeleteBankAccount handles DELETE /api/v1/company/bank-accounts/:id
func (h *SettingsHandler) DeleteBankAccount(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.settingsService.DeleteBankAccount(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "bank account deleted"})
}

// ListSeries handles GET /api/v1/series
func (h *SettingsHandler) ListSeries(c *gin.Context) {
	series, err := h.settingsService.ListSeries(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, series)
}

// CreateSeries handles POST /api/v1/series
// @Summary Create an invoice series
// @Description Registers a numbering series. The counter starts at initial_number so migrated books continue where they left off.
// @Tags series
// @Accept json
// @Produce json
// @Param request body service.SeriesInput true "Series"
// @Success 201 {object} APIResponse{data=domain.InvoiceSeries}
// @Failure 409 {object} APIResponse "Duplicate series code"
// @Router /series [post]
func (h *SettingsHandler) CreateSeries(c *gin.Context) {
	var req service.SeriesInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "malformed request body")
		return
	}

	series, err := h.settingsService.CreateSeries(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, series)
}

// UpdateSeries handles PUT /api/v1/series/:id
func (h *SettingsHandler) UpdateSeries(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req service.SeriesUpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "malformed request body")
		return
	}

	series, err := h.settingsService.UpdateSeries(c.Request.Context(), id, &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, series)
}

// ListSettings handles GET /api/v1/settings
func (h *SettingsHandler) ListSettings(c *gin.Context) {
	settings, err := h.settingsService.ListSettings(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, settings)
}

// SetSetting handles PUT /api/v1/settings/:key
func (h *SettingsHandler) SetSetting(c *gin.Context) {
	var req struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "malformed request body")
		return
	}

	if err := h.settingsService.SetSetting(c.Request.Context(), c.Param("key"), req.Value); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "setting saved"})
}
