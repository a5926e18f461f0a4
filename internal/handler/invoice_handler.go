package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"faktura/internal/domain"
	"faktura/internal/export"
	"faktura/internal/service"
)

// InvoiceHandler handles invoice endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create handles POST /api/v1/invoices
// @Summary Create an invoice
// @Description Creates an invoice, allocating the next number in the chosen series and computing all totals server-side.
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body service.CreateInvoiceInput true "Invoice"
// @Success 201 {object} APIResponse{data=domain.Invoice}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req service.CreateInvoiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "malformed request body")
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, invoice)
}

// List handles GET /api/v1/invoices
// @Summary List invoices
// @Description Returns a filtered, sorted page of invoices together with aggregate totals over the whole filtered set.
// @Tags invoices
// @Produce json
// @Param status query string false "Filter by status"
// @Param client_id query string false "Filter by client"
// @Param series_id query string false "Filter by series"
// @Param date_from query string false "Invoice date lower bound (YYYY-MM-DD)"
// @Param date_to query string false "Invoice date upper bound (YYYY-MM-DD)"
// @Param sort_by query string false "date, number, total, or status"
// @Param order query string false "asc or desc"
// @Success 200 {object} APIResponse{data=service.InvoiceListResult}
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	filter, err := parseInvoiceFilter(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	filter.Offset, filter.Limit = parsePagination(c)

	result, err := h.invoiceService.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, result, PagMeta{Total: result.Total, Offset: filter.Offset, Limit: filter.Limit})
}

// GetByID handles GET /api/v1/invoices/:id
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, invoice)
}

// Update handles PUT /api/v1/invoices/:id
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req service.UpdateInvoiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "malformed request body")
		return
	}

	invoice, err := h.invoiceService.Update(c.Request.Context(), id, &req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, invoice)
}

// Delete handles DELETE /api/v1/invoices/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "invoice deleted"})
}

// ChangeStatus handles POST /api/v1/invoices/:id/status
// @Summary Change invoice status
// @Description Applies one step of the lifecycle: draft to sent, sent to paid, or any unpaid status to overdue. Paid invoices accept no further changes.
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param request body object{status=string} true "Target status"
// @Success 200 {object} APIResponse{data=domain.Invoice}
// @Failure 409 {object} APIResponse "Transition not allowed"
// @Router /invoices/{id}/status [post]
func (h *InvoiceHandler) ChangeStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "status is required")
		return
	}
	status, valid := domain.ParseStatus(req.Status)
	if !valid {
		RespondError(c, http.StatusBadRequest, "INVALID_STATUS", "allowed: draft, sent, paid, overdue")
		return
	}

	invoice, err := h.invoiceService.ChangeStatus(c.Request.Context(), id, status)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, invoice)
}

// Duplicate handles POST /api/v1/invoices/:id/duplicate
func (h *InvoiceHandler) Duplicate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.Duplicate(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, invoice)
}

// PreviewNextNumber handles GET /api/v1/series/:id/next-number
func (h *InvoiceHandler) PreviewNextNumber(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	preview, err := h.invoiceService.PreviewNextNumber(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, preview)
}

// DownloadPDF handles GET /api/v1/invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	pdf, filename, err := h.invoiceService.RenderPDF(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Send handles POST /api/v1/invoices/:id/send
func (h *InvoiceHandler) Send(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.Send(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, invoice)
}

// exportPageSize bounds a register export to one oversized page.
const exportPageSize = 10000

// Export handles GET /api/v1/invoices/export
func (h *InvoiceHandler) Export(c *gin.Context) {
	filter, err := parseInvoiceFilter(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	filter.Limit = exportPageSize

	result, err := h.invoiceService.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	stamp := time.Now().Format("20060102")
	switch c.DefaultQuery("format", "csv") {
	case "xlsx":
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", "attachment; filename=invoices_"+stamp+".xlsx")
		if err := export.WriteXLSX(c.Writer, result.Invoices); err != nil {
			HandleError(c, err)
		}
	case "csv":
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", "attachment; filename=invoices_"+stamp+".csv")
		c.Writer.Write(export.BOM)
		w := export.NewCSVWriter(c.Writer)
		if err := w.WriteHeader(); err != nil {
			HandleError(c, err)
			return
		}
		if err := w.WriteInvoices(result.Invoices); err != nil {
			HandleError(c, err)
			return
		}
		w.Flush()
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "allowed: csv, xlsx")
	}
}

// AmountInWords handles POST /api/v1/tools/amount-in-words
// @Summary Spell out an amount in Lithuanian
// @Tags tools
// @Accept json
// @Produce json
// @Param request body object{amount=number} true "Amount in euro"
// @Success 200 {object} APIResponse
// @Router /tools/amount-in-words [post]
func (h *InvoiceHandler) AmountInWords(c *gin.Context) {
	var req struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "amount is required")
		return
	}

	rendered, err := h.invoiceService.RenderAmountInWords(req.Amount)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"amount": req.Amount, "in_words": rendered})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid ID")
		return uuid.Nil, false
	}
	return id, true
}

func parseInvoiceFilter(c *gin.Context) (*domain.InvoiceFilter, error) {
	f := &domain.InvoiceFilter{
		SortBy:     c.Query("sort_by"),
		Descending: c.DefaultQuery("order", "desc") == "desc",
	}

	if raw := c.Query("status"); raw != "" {
		status, ok := domain.ParseStatus(raw)
		if !ok {
			return nil, domain.Validationf("status", "unknown status %q", raw)
		}
		f.Status = status
	}
	if raw := c.Query("client_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, domain.Validationf("client_id", "invalid client_id")
		}
		f.ClientID = id
	}
	if raw := c.Query("series_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, domain.Validationf("series_id", "invalid series_id")
		}
		f.SeriesID = id
	}
	if raw := c.Query("date_from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, domain.Validationf("date_from", "expected YYYY-MM-DD")
		}
		f.DateFrom = &t
	}
	if raw := c.Query("date_to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, domain.Validationf("date_to", "expected YYYY-MM-DD")
		}
		f.DateTo = &t
	}
	return f, nil
}
