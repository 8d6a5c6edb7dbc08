package handler

import (
	"encoding/json"
	"net/http"

	"github.com/feinwerk/workbench-api/internal/domain"
	"github.com/feinwerk/workbench-api/internal/repository"
	"github.com/feinwerk/workbench-api/internal/service"
	"go.uber.org/zap"
)

type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	logger         *zap.Logger
}

func NewInvoiceHandler(invoiceService *service.InvoiceService, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// List godoc
// @Summary List invoices
// @Description Get paginated list of invoices with optional filters
// @Tags Invoices
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param projectId query int false "Filter by project"
// @Param status query int false "Filter by status" Enums(10, 20, 30, 40, 50)
// @Param ownerId query string false "Filter by owner"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.InvoiceDTO}
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /invoices [get]
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	filters := repository.InvoiceFilters{
		ProjectID: queryUint(r, "projectId"),
		OwnerID:   r.URL.Query().Get("ownerId"),
	}
	if v := queryInt(r, "status"); v != 0 {
		s := domain.InvoiceStatus(v)
		filters.Status = &s
	}

	invoices, total, err := h.invoiceService.List(r.Context(), page, pageSize, filters)
	if err != nil {
		h.logger.Error("failed to list invoices", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, paginated(invoices, total, page, pageSize))
}

// GetByID godoc
// @Summary Get invoice by ID
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} domain.InvoiceDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	invoice, err := h.invoiceService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, invoice)
}

// Create godoc
// @Summary Create invoice
// @Description Create an invoice. A sequential code within the project is assigned on creation. Projects with invoicing disabled cannot be invoiced.
// @Tags Invoices
// @Accept json
// @Produce json
// @Param request body domain.CreateInvoiceRequest true "Invoice data"
// @Success 201 {object} domain.InvoiceDTO
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /invoices [post]
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	invoice, err := h.invoiceService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create invoice", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, invoice)
}

// Update godoc
// @Summary Update invoice
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Param request body domain.UpdateInvoiceRequest true "Invoice data"
// @Success 200 {object} domain.InvoiceDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /invoices/{id} [put]
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req domain.UpdateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	invoice, err := h.invoiceService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, invoice)
}

// UpdateStatus godoc
// @Summary Update invoice status
// @Description Move an invoice through its lifecycle. Sent and later states require an invoice date.
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Param request body domain.UpdateInvoiceStatusRequest true "Status change"
// @Success 200 {object} domain.InvoiceDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /invoices/{id}/status [put]
func (h *InvoiceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req domain.UpdateInvoiceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	invoice, err := h.invoiceService.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, invoice)
}

// Delete godoc
// @Summary Delete invoice
// @Description Delete an invoice. Only invoices still in preparation can be deleted.
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Invoice has left preparation"
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.invoiceService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListRecurring godoc
// @Summary List recurring invoice templates
// @Tags Recurring Invoices
// @Accept json
// @Produce json
// @Param projectId query int false "Filter by project"
// @Success 200 {array} domain.RecurringInvoiceDTO
// @Failure 500 {object} domain.APIError
// @Router /recurring-invoices [get]
func (h *InvoiceHandler) ListRecurring(w http.ResponseWriter, r *http.Request) {
	templates, err := h.invoiceService.ListRecurring(r.Context(), queryUint(r, "projectId"))
	if err != nil {
		h.logger.Error("failed to list recurring invoices", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, templates)
}

// GetRecurringByID godoc
// @Summary Get recurring invoice template by ID
// @Tags Recurring Invoices
// @Accept json
// @Produce json
// @Param id path int true "Template ID"
// @Success 200 {object} domain.RecurringInvoiceDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /recurring-invoices/{id} [get]
func (h *InvoiceHandler) GetRecurringByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	template, err := h.invoiceService.GetRecurringByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, template)
}

// CreateRecurring godoc
// @Summary Create recurring invoice template
// @Tags Recurring Invoices
// @Accept json
// @Produce json
// @Param request body domain.CreateRecurringInvoiceRequest true "Template data"
// @Success 201 {object} domain.RecurringInvoiceDTO
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /recurring-invoices [post]
func (h *InvoiceHandler) CreateRecurring(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateRecurringInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	template, err := h.invoiceService.CreateRecurring(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create recurring invoice", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, template)
}

// UpdateRecurring godoc
// @Summary Update recurring invoice template
// @Tags Recurring Invoices
// @Accept json
// @Produce json
// @Param id path int true "Template ID"
// @Param request body domain.UpdateRecurringInvoiceRequest true "Template data"
// @Success 200 {object} domain.RecurringInvoiceDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /recurring-invoices/{id} [put]
func (h *InvoiceHandler) UpdateRecurring(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req domain.UpdateRecurringInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	template, err := h.invoiceService.UpdateRecurring(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, template)
}

// DeleteRecurring godoc
// @Summary Delete recurring invoice template
// @Tags Recurring Invoices
// @Accept json
// @Produce json
// @Param id path int true "Template ID"
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /recurring-invoices/{id} [delete]
func (h *InvoiceHandler) DeleteRecurring(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.invoiceService.DeleteRecurring(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateDue godoc
// @Summary Materialize due recurring invoices
// @Description Create invoices for every recurring template whose next period has started. Runs the same job the scheduler triggers nightly.
// @Tags Recurring Invoices
// @Accept json
// @Produce json
// @Success 200 {array} domain.InvoiceDTO
// @Failure 500 {object} domain.APIError
// @Router /recurring-invoices/create-due [post]
func (h *InvoiceHandler) CreateDue(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.invoiceService.CreateDueInvoices(r.Context())
	if err != nil {
		h.logger.Error("failed to create due invoices", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, invoices)
}
